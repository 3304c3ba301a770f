package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nao1215/casecrawl/internal/model"
)

// cardHTML renders a listing card. An empty identifier omits the span.
func cardHTML(identifier string, catchwords ...string) string {
	var b strings.Builder
	b.WriteString(`<div class="card col-12"><div class="card-body">`)
	if identifier != "" {
		fmt.Fprintf(&b, `<span class="gd-addinfo-text">%s |</span>`, identifier)
	}
	for _, cw := range catchwords {
		fmt.Fprintf(&b, `<a class="gd-cw" href="#">[%s]</a>`, cw)
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

// listingHTML renders a listing page around the given cards.
func listingHTML(cards ...string) string {
	return `<html><body><div id="listview">` + strings.Join(cards, "\n") + `</div></body></html>`
}

// judgmentHTML renders a judgment page with the given author, counsel and
// body paragraphs.
func judgmentHTML(author string, lawyers []string, paragraphs ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div id="divJudgement">`)
	if author != "" {
		fmt.Fprintf(&b, `<div class="Judg-Author">%s</div>`, author)
	}
	for _, l := range lawyers {
		fmt.Fprintf(&b, `<div class="Judg-Lawyers">%s</div>`, l)
	}
	for _, p := range paragraphs {
		fmt.Fprintf(&b, `<div class="Judg-1">%s</div>`, p)
	}
	b.WriteString(`<div class="Judg-EOF"></div></div></body></html>`)
	return b.String()
}

// recordingSink collects appended records.
type recordingSink struct {
	records []model.CaseRecord
	err     error
}

func (s *recordingSink) Append(record model.CaseRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func (s *recordingSink) identifiers() []string {
	ids := make([]string, 0, len(s.records))
	for _, r := range s.records {
		ids = append(ids, r.CaseIdentifier)
	}
	return ids
}

// countingProgress records every notification.
type countingProgress struct {
	mu    sync.Mutex
	calls []PageRef
}

func (p *countingProgress) CaseMerged(year, page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, PageRef{Year: year, Page: page})
}

// mapFetcher serves bodies from a map and fails for unknown URLs.
type mapFetcher struct {
	mu       sync.Mutex
	pages    map[string]string
	requests []string
}

func (f *mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s returned 404", ErrUnexpectedStatus, url)
	}
	return []byte(body), nil
}
