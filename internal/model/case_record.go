package model

import "strconv"

// Field defaults used when a judgment page lacks the block a field is read from.
const (
	// UnknownAuthor is reported when a judgment has neither an author block
	// nor a signature block.
	UnknownAuthor = "Unknown"

	// PartiesNotFound is reported when no counsel or party text could be
	// collected from a judgment.
	PartiesNotFound = "Not found"
)

// Columns is the fixed column order of every tabular dataset.
var Columns = []string{
	"CaseIdentifier",
	"Catchwords",
	"Year",
	"URL",
	"WordCount",
	"ParagraphCount",
	"Author",
	"LegalParties",
}

// ListCard holds the fields read from one result card on a listing page.
type ListCard struct {
	// Identifier is the display citation, e.g. "[2021] SGHC 123".
	Identifier string

	// Catchwords is the joined catchword string, or nil when the card has none.
	Catchwords *string

	// Year is the listing year the card was found under.
	Year int

	// Page is the 1-based listing page the card was found on.
	Page int

	// URL is the judgment page address derived from Identifier.
	URL string
}

// CaseDetail holds the fields derived from one judgment page.
type CaseDetail struct {
	// WordCount is the whitespace token count of all judgment body blocks.
	WordCount int

	// ParagraphCount is the number leading the last judgment body block,
	// or 0 when it cannot be determined.
	ParagraphCount int

	// Author is the normalized judge name or UnknownAuthor.
	Author string

	// LegalParties is the normalized counsel listing or PartiesNotFound.
	LegalParties string
}

// CaseRecord is one row of the output dataset.
// Fields are declared in the order of Columns.
type CaseRecord struct {
	CaseIdentifier string  `json:"CaseIdentifier"`
	Catchwords     *string `json:"Catchwords"`
	Year           int     `json:"Year"`
	URL            string  `json:"URL"`
	WordCount      int     `json:"WordCount"`
	ParagraphCount int     `json:"ParagraphCount"`
	Author         string  `json:"Author"`
	LegalParties   string  `json:"LegalParties"`
}

// NewCaseRecord merges the list-card fields and the detail-page fields of a
// case into a record. A record can only be built once both halves exist.
func NewCaseRecord(card ListCard, detail CaseDetail) CaseRecord {
	return CaseRecord{
		CaseIdentifier: card.Identifier,
		Catchwords:     card.Catchwords,
		Year:           card.Year,
		URL:            card.URL,
		WordCount:      max(detail.WordCount, 0),
		ParagraphCount: max(detail.ParagraphCount, 0),
		Author:         detail.Author,
		LegalParties:   detail.LegalParties,
	}
}

// CatchwordsText returns the catchword string and whether it is present.
func (r CaseRecord) CatchwordsText() (string, bool) {
	if r.Catchwords == nil {
		return "", false
	}
	return *r.Catchwords, true
}

// Row returns the record as string cells in the order of Columns.
// Missing catchwords become an empty cell.
func (r CaseRecord) Row() []string {
	catchwords, _ := r.CatchwordsText()
	return []string{
		r.CaseIdentifier,
		catchwords,
		strconv.Itoa(r.Year),
		r.URL,
		strconv.Itoa(r.WordCount),
		strconv.Itoa(r.ParagraphCount),
		r.Author,
		r.LegalParties,
	}
}
