package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nao1215/casecrawl/internal/model"
	"github.com/nao1215/casecrawl/internal/textnorm"
)

// Judgment page selectors and class names.
const (
	selectorBody    = "div.Judg-1"
	selectorAuthor  = "div.Judg-Author"
	selectorSign    = "div.Judg-Sign"
	selectorLawyers = "div.Judg-Lawyers"

	classTerminator = "Judg-EOF"
	classBodyText   = "txt-body"
)

// SiblingKind classifies a node that follows the last counsel block.
type SiblingKind int

const (
	// SiblingOther is skipped.
	SiblingOther SiblingKind = iota

	// SiblingBodyText is a div.txt-body whose text belongs to the counsel listing.
	SiblingBodyText

	// SiblingTerminator is a div.Judg-EOF; the scan stops there.
	SiblingTerminator
)

// String returns the name of the kind.
func (k SiblingKind) String() string {
	switch k {
	case SiblingBodyText:
		return "body-text"
	case SiblingTerminator:
		return "terminator"
	default:
		return "other"
	}
}

// ClassifySibling returns the kind of n. Only div elements can be body text
// or terminators. A div carrying both classes is a terminator.
func ClassifySibling(n *html.Node) SiblingKind {
	if n == nil || n.Type != html.ElementNode || n.Data != "div" {
		return SiblingOther
	}
	var class string
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			class = attr.Val
			break
		}
	}
	switch {
	case hasClass(class, classTerminator):
		return SiblingTerminator
	case hasClass(class, classBodyText):
		return SiblingBodyText
	default:
		return SiblingOther
	}
}

// DetailExtractor fetches judgment pages and derives their detail fields.
type DetailExtractor struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// DetailOption configures a DetailExtractor.
type DetailOption func(*DetailExtractor)

// WithDetailLogger sets the logger used to report dropped pages.
func WithDetailLogger(logger *slog.Logger) DetailOption {
	return func(e *DetailExtractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewDetailExtractor creates a DetailExtractor that reads pages through fetcher.
func NewDetailExtractor(fetcher Fetcher, opts ...DetailOption) *DetailExtractor {
	e := &DetailExtractor{
		fetcher: fetcher,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches the judgment page at caseURL and returns its fields.
// It returns false when the page could not be fetched or parsed; the
// failure is logged and never returned, so callers simply drop the case.
func (e *DetailExtractor) Extract(ctx context.Context, caseURL string) (model.CaseDetail, bool) {
	body, err := e.fetcher.Fetch(ctx, caseURL)
	if err != nil {
		e.logger.Debug("judgment page unavailable", "url", caseURL, "error", err)
		return model.CaseDetail{}, false
	}

	detail, err := ParseDetail(body)
	if err != nil {
		e.logger.Debug("judgment page unreadable", "url", caseURL, "error", err)
		return model.CaseDetail{}, false
	}
	return detail, true
}

// ParseDetail derives the detail fields from the HTML of a judgment page.
// Missing blocks fall back to field defaults; they are never errors.
func ParseDetail(body []byte) (model.CaseDetail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return model.CaseDetail{}, fmt.Errorf("failed to parse judgment page: %w", err)
	}

	blocks := doc.Find(selectorBody)
	return model.CaseDetail{
		WordCount:      wordCount(blocks),
		ParagraphCount: paragraphCount(blocks),
		Author:         author(doc),
		LegalParties:   legalParties(doc),
	}, nil
}

// wordCount counts whitespace separated tokens across all body blocks.
func wordCount(blocks *goquery.Selection) int {
	if blocks.Length() == 0 {
		return 0
	}
	texts := make([]string, 0, blocks.Length())
	blocks.Each(func(_ int, block *goquery.Selection) {
		texts = append(texts, textnorm.FixText(block.Text()))
	})
	return len(strings.Fields(strings.Join(texts, " ")))
}

// paragraphCount reads the paragraph number that opens the last body block.
// The first token must consist of ASCII digits only, so "45." yields 0.
func paragraphCount(blocks *goquery.Selection) int {
	if blocks.Length() == 0 {
		return 0
	}
	last := textnorm.FixText(strings.TrimSpace(blocks.Last().Text()))
	fields := strings.Fields(last)
	if len(fields) == 0 || !isDigits(fields[0]) {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// author returns the cleaned judge name from the author block, or the
// signature block when there is no author block.
func author(doc *goquery.Document) string {
	block, ok := firstMatch(doc, selectorAuthor, selectorSign)
	if !ok {
		return model.UnknownAuthor
	}
	return textnorm.CleanAuthor(block.Text())
}

// legalParties collects every counsel block plus the body text blocks that
// follow the last one, up to the end-of-judgment marker.
func legalParties(doc *goquery.Document) string {
	lawyers := doc.Find(selectorLawyers)
	if lawyers.Length() == 0 {
		return model.PartiesNotFound
	}

	fragments := make([]string, 0, lawyers.Length())
	lawyers.Each(func(_ int, block *goquery.Selection) {
		fragments = append(fragments, block.Text())
	})

	siblings := followingSiblings(lawyers.Nodes[len(lawyers.Nodes)-1])
scan:
	for _, n := range siblings {
		switch ClassifySibling(n) {
		case SiblingTerminator:
			break scan
		case SiblingBodyText:
			fragments = append(fragments, goquery.NewDocumentFromNode(n).Text())
		case SiblingOther:
		}
	}

	if parties := textnorm.CleanParties(fragments); parties != "" {
		return parties
	}
	return model.PartiesNotFound
}

// followingSiblings returns the nodes after n that share its parent.
func followingSiblings(n *html.Node) []*html.Node {
	var siblings []*html.Node
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		siblings = append(siblings, s)
	}
	return siblings
}

// firstMatch returns the first element matching the first selector that
// matches anything.
func firstMatch(doc *goquery.Document, selectors ...string) (*goquery.Selection, bool) {
	for _, sel := range selectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			return found, true
		}
	}
	return nil, false
}
