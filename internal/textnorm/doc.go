// Package textnorm cleans text scraped from judgment pages.
//
// Pages on the judgments site are frequently served with UTF-8 bytes that
// were decoded as Windows-1252 somewhere upstream, so punctuation such as
// the em-dash arrives as "â€”" and non-breaking spaces as "Â ". FixText
// reverses that round-trip. The Clean* helpers build on FixText to produce
// the display forms stored in a case record, and Slug derives the path
// segment of a case URL from its identifier.
//
// Every function in this package is pure and idempotent:
//
//	textnorm.FixText(textnorm.FixText(s)) == textnorm.FixText(s)
package textnorm
