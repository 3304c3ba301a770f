package textnorm

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// quoteReplacer turns typographic quotes into their ASCII forms.
var quoteReplacer = strings.NewReplacer(
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"‚", "'", // single low-9 quotation mark
	"‛", "'", // single high-reversed-9 quotation mark
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"„", `"`, // double low-9 quotation mark
	"‟", `"`, // double high-reversed-9 quotation mark
)

// ligatureReplacer expands Latin ligatures that PDF-to-HTML conversion
// leaves in judgment text.
var ligatureReplacer = strings.NewReplacer(
	"Ĳ", "IJ",
	"ĳ", "ij",
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬆ", "st",
)

// FixText repairs mojibake in s and returns the repaired text.
//
// The repair looks for runs of characters that, when encoded back to
// Windows-1252, form exactly one valid multi-byte UTF-8 sequence, and
// replaces each run with the character it encodes, until no such run is
// left. The repaired text is then tidied: stray C1 controls are read as
// Windows-1252, Latin ligatures are expanded, full-width and half-width
// forms are folded, typographic quotes are flattened to ASCII, control
// characters are dropped and the result is NFC-normalized. Tidying can expose
// new mojibake, so both stages repeat until the text stops changing, which
// makes FixText idempotent.
func FixText(s string) string {
	for {
		fixed := tidy(fixEncoding(s))
		if fixed == s {
			return s
		}
		s = fixed
	}
}

// fixEncoding repeats repairMojibake until it has nothing left to repair.
// Every changing pass shortens the text, so the loop ends.
func fixEncoding(s string) string {
	for {
		fixed := repairMojibake(s)
		if fixed == s {
			return s
		}
		s = fixed
	}
}

func tidy(s string) string {
	if isASCII(s) {
		return removeControlChars(s)
	}
	s = fixC1Controls(s)
	s = ligatureReplacer.Replace(s)
	s = width.Fold.String(s)
	s = quoteReplacer.Replace(s)
	s = removeControlChars(s)
	return norm.NFC.String(s)
}

// fixC1Controls replaces C1 control characters with the character their
// byte stands for in Windows-1252. Bytes Windows-1252 leaves undefined map
// to themselves.
func fixC1Controls(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x80 && r <= 0x9F {
			return charmap.Windows1252.DecodeByte(byte(r))
		}
		return r
	}, s)
}

// removeControlChars drops control and format characters that never carry
// meaning in judgment text. Tab, line feed, form feed and carriage return
// are kept.
func removeControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\f', r == '\r':
			return r
		case r < 0x20, r == 0x7F:
			return -1
		case r == 0xFEFF, r >= 0x206A && r <= 0x206F, r >= 0xFFF9 && r <= 0xFFFB:
			return -1
		}
		return r
	}, s)
}

// repairMojibake performs a single left-to-right repair pass.
func repairMojibake(s string) string {
	if isASCII(s) {
		return s
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		if r, n := decodeMisread(runes[i:]); n > 0 {
			b.WriteRune(r)
			i += n
			continue
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// decodeMisread tries to read one UTF-8 character from the Windows-1252
// bytes of the leading runes. It returns the decoded rune and the number of
// runes consumed, or 0 when the leading runes are not mojibake.
func decodeMisread(runes []rune) (rune, int) {
	lead, ok := sloppyWindows1252(runes[0])
	if !ok {
		return 0, 0
	}

	var size int
	switch {
	case lead >= 0xC2 && lead <= 0xDF:
		size = 2
	case lead >= 0xE0 && lead <= 0xEF:
		size = 3
	case lead >= 0xF0 && lead <= 0xF4:
		size = 4
	default:
		return 0, 0
	}
	if len(runes) < size {
		return 0, 0
	}

	buf := make([]byte, 0, size)
	buf = append(buf, lead)
	for _, r := range runes[1:size] {
		c, ok := sloppyWindows1252(r)
		if !ok || c < 0x80 || c > 0xBF {
			return 0, 0
		}
		buf = append(buf, c)
	}

	r, n := utf8.DecodeRune(buf)
	if r == utf8.RuneError || n != size {
		return 0, 0
	}
	return r, size
}

// sloppyWindows1252 returns the Windows-1252 byte for r. The five code points
// Windows-1252 leaves undefined are decoded by most browsers as the matching
// C1 control character, so C1 controls map straight back to their byte.
func sloppyWindows1252(r rune) (byte, bool) {
	if r < 0x80 {
		return byte(r), true
	}
	if r <= 0x9F {
		return byte(r), true
	}
	return charmap.Windows1252.EncodeRune(r)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
