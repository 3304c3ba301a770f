package textnorm

import "strings"

// deliveringMarker introduces the role note after a judge's name, as in
// "Sundaresh Menon CJ (delivering the judgment of the court):".
const deliveringMarker = "(delivering"

// corruptedEmDashes are the spellings a mis-decoded em-dash takes in list
// cards. They are rewritten to a plain dash before any other repair.
var corruptedEmDashes = []string{
	"â€”",
	"â€\u0094",
}

var (
	slugReplacer = strings.NewReplacer(
		" ", "_",
		"[", "",
		"]", "",
		"(", "",
		")", "",
	)
	bracketReplacer = strings.NewReplacer("[", "", "]", "")
)

// CleanIdentifier returns the display form of a case identifier taken from a
// list card. The card renders the citation followed by a " |" separator,
// which is removed along with surrounding whitespace. Brackets and
// parentheses are kept.
//
//	CleanIdentifier("[2021] SGHC 123 |") == "[2021] SGHC 123"
func CleanIdentifier(raw string) string {
	return untilStable(raw, func(s string) string {
		s = strings.ReplaceAll(strings.TrimSpace(s), " |", "")
		s = strings.TrimRight(s, " |")
		return strings.TrimSpace(FixText(s))
	})
}

// Slug derives the URL path segment for a case identifier. Every space
// becomes one underscore and square brackets and parentheses are dropped.
//
//	Slug("[2021] SGHC 123") == "2021_SGHC_123"
func Slug(identifier string) string {
	return slugReplacer.Replace(identifier)
}

// CleanCatchword returns the display form of a single catchword tag.
//
//	CleanCatchword("[Contractâ€”Breach]") == "Contract-Breach"
func CleanCatchword(raw string) string {
	return untilStable(raw, func(s string) string {
		for _, dash := range corruptedEmDashes {
			s = strings.ReplaceAll(s, dash, "-")
		}
		return strings.TrimSpace(FixText(bracketReplacer.Replace(s)))
	})
}

// JoinCatchwords joins cleaned catchwords into the single display string
// stored on a record. It returns nil when there are no catchwords so the
// absence survives serialization as a null rather than an empty string.
func JoinCatchwords(catchwords []string) *string {
	if len(catchwords) == 0 {
		return nil
	}
	joined := strings.Join(catchwords, ", ")
	return &joined
}

// CleanAuthor normalizes the raw text of an author or signature block into
// a judge name: stray "Â" and colons are removed, the text is repaired, and
// anything from the "(delivering" note onwards is cut.
//
//	CleanAuthor("Judge Name (delivering the grounds of decision):") == "Judge Name"
func CleanAuthor(raw string) string {
	return untilStable(raw, func(s string) string {
		s = strings.ReplaceAll(s, "Â", "")
		s = strings.ReplaceAll(s, ":", "")
		s = FixText(s)
		if before, _, found := strings.Cut(s, deliveringMarker); found {
			s = before
		}
		return strings.TrimSpace(s)
	})
}

// CleanParties joins the counsel and party fragments collected from a
// judgment page, removing semicolons. Each fragment is repaired and trimmed
// first. The result may be empty.
func CleanParties(fragments []string) string {
	cleaned := make([]string, 0, len(fragments))
	for _, f := range fragments {
		cleaned = append(cleaned, FixText(strings.TrimSpace(f)))
	}
	return untilStable(strings.Join(cleaned, " "), func(s string) string {
		return strings.TrimSpace(FixText(strings.ReplaceAll(s, ";", "")))
	})
}

// untilStable applies clean until the text stops changing. Removing
// characters can join the halves of a mis-decoded sequence, so a single
// pass is not always enough.
func untilStable(s string, clean func(string) string) string {
	for {
		next := clean(s)
		if next == s {
			return s
		}
		s = next
	}
}
