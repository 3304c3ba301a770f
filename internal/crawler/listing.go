package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/casecrawl/internal/model"
	"github.com/nao1215/casecrawl/internal/textnorm"
)

// Listing page selectors.
const (
	selectorCard       = "div.card.col-12"
	selectorIdentifier = "span.gd-addinfo-text"
	selectorCatchword  = "a.gd-cw"
)

// Endpoints holds the addresses and fixed query values used to build
// listing and judgment URLs.
type Endpoints struct {
	// ListURL is the listing endpoint, without a query string.
	ListURL string

	// CaseURL is the prefix every judgment slug is appended to.
	CaseURL string

	// Filter is the court filter sent with every listing request.
	Filter string

	// SortBy is the sort order sent with every listing request.
	SortBy string
}

// DefaultEndpoints returns the public eLitigation endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		ListURL: "https://www.elitigation.sg/gd/Home/Index",
		CaseURL: "https://www.elitigation.sg/gd/s/",
		Filter:  "SUPCT",
		SortBy:  "Score",
	}
}

// ListPageURL returns the listing URL of ref.
func (e Endpoints) ListPageURL(ref PageRef) string {
	return fmt.Sprintf("%s?Filter=%s&YearOfDecision=%d&SortBy=%s&CurrentPage=%d",
		e.ListURL, url.QueryEscape(e.Filter), ref.Year, url.QueryEscape(e.SortBy), ref.Page)
}

// CasePageURL returns the judgment URL of a cleaned case identifier.
func (e Endpoints) CasePageURL(identifier string) string {
	return e.CaseURL + textnorm.Slug(identifier)
}

// Listing is the parsed content of one listing page.
type Listing struct {
	// Cards holds the usable cards in document order.
	Cards []model.ListCard

	// Total is the number of result cards on the page, usable or not.
	// A page with Total == 0 ends its year.
	Total int

	// Skipped is the number of cards without an identifier.
	Skipped int
}

// ParseListing reads the result cards of a listing page found at ref.
// Cards without an identifier span are counted in Skipped and left out.
func ParseListing(body []byte, ref PageRef, endpoints Endpoints) (*Listing, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page %d of %d: %w", ref.Page, ref.Year, err)
	}

	cards := doc.Find(selectorCard)
	listing := &Listing{
		Cards: make([]model.ListCard, 0, cards.Length()),
		Total: cards.Length(),
	}

	cards.Each(func(_ int, card *goquery.Selection) {
		span := card.Find(selectorIdentifier).First()
		if span.Length() == 0 {
			listing.Skipped++
			return
		}

		identifier := textnorm.CleanIdentifier(span.Text())
		listing.Cards = append(listing.Cards, model.ListCard{
			Identifier: identifier,
			Catchwords: textnorm.JoinCatchwords(catchwords(card)),
			Year:       ref.Year,
			Page:       ref.Page,
			URL:        endpoints.CasePageURL(identifier),
		})
	})

	return listing, nil
}

// catchwords returns the cleaned catchword tags of a card.
func catchwords(card *goquery.Selection) []string {
	links := card.Find(selectorCatchword)
	if links.Length() == 0 {
		return nil
	}
	tags := make([]string, 0, links.Length())
	links.Each(func(_ int, link *goquery.Selection) {
		tags = append(tags, textnorm.CleanCatchword(link.Text()))
	})
	return tags
}

// hasClass reports whether the space separated class attribute value
// contains name.
func hasClass(classAttr, name string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == name {
			return true
		}
	}
	return false
}
