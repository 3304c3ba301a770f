// Package model defines the data structures shared by the crawler, the
// dataset writers and the report writers.
//
// This package contains the following main types:
//   - ListCard: the fields read from one result card on a listing page
//   - CaseDetail: the fields derived from one judgment page
//   - CaseRecord: one output row, built from a ListCard and a CaseDetail
//   - Run: statistics and outcome of one crawl invocation
//   - Summary: a flattened view of a Run for report writers
//
// The types carry JSON tags so they can be written as JSON datasets,
// archived, and rendered in reports without further mapping.
package model
