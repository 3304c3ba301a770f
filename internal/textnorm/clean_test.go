package textnorm

import (
	"strings"
	"testing"
)

func TestCleanIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trailing pipe separator is removed", input: "[2021] SGHC 123 |", want: "[2021] SGHC 123"},
		{name: "surrounding whitespace is removed", input: "  [2020] SGCA 7 |  ", want: "[2020] SGCA 7"},
		{name: "pipe without leading space is removed", input: "[2022] SGHC(A) 4|", want: "[2022] SGHC(A) 4"},
		{name: "identifier without separator is kept", input: "[2023] SGHCR 2", want: "[2023] SGHCR 2"},
		{name: "parentheses are kept in display form", input: "[2022] SGHC(I) 10 |", want: "[2022] SGHC(I) 10"},
		{name: "repeated trailing pipes are all removed", input: "A||", want: "A"},
		{name: "pipes separated by spaces are removed", input: "[2021] SGHC 123 | |", want: "[2021] SGHC 123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CleanIdentifier(tt.input)
			if got != tt.want {
				t.Errorf("CleanIdentifier(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := CleanIdentifier(got); again != got {
				t.Errorf("CleanIdentifier not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	t.Run("citation slug drops brackets and joins with underscores", func(t *testing.T) {
		t.Parallel()

		if got := Slug("[2021] SGHC 123"); got != "2021_SGHC_123" {
			t.Errorf("Slug = %q, want %q", got, "2021_SGHC_123")
		}
	})

	t.Run("parentheses are dropped", func(t *testing.T) {
		t.Parallel()

		if got := Slug("[2022] SGHC(A) 4"); got != "2022_SGHCA_4" {
			t.Errorf("Slug = %q, want %q", got, "2022_SGHCA_4")
		}
	})

	t.Run("slug never contains spaces brackets or parentheses", func(t *testing.T) {
		t.Parallel()

		identifiers := []string{
			"[2021] SGHC 123",
			"[2022] SGHC(I) 10",
			"(([[  ]]))",
			"Tan  Ah  Kow  (trading as [X])",
			"",
		}
		for _, id := range identifiers {
			slug := Slug(id)
			if strings.ContainsAny(slug, " []()") {
				t.Errorf("Slug(%q) = %q contains a forbidden character", id, slug)
			}
			if spaces, underscores := strings.Count(id, " "), strings.Count(slug, "_"); spaces != underscores-strings.Count(id, "_") {
				t.Errorf("Slug(%q) = %q: %d spaces became %d underscores", id, slug, spaces, underscores)
			}
		}
	})
}

func TestCleanCatchword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "corrupted em-dash becomes a plain dash", input: "[Contractâ€”Breach]", want: "Contract-Breach"},
		{name: "brackets are stripped", input: "[Civil Procedure]", want: "Civil Procedure"},
		{name: "whitespace is trimmed", input: "  [Tort — Negligence]  ", want: "Tort — Negligence"},
		{name: "other mojibake is repaired", input: "[Companiesâ€™ Act]", want: "Companies' Act"},
		{name: "whitespace inside brackets is trimmed", input: "[Tort ]", want: "Tort"},
		{name: "em-dash inside padded brackets is kept", input: "[ Contract — Breach ]", want: "Contract — Breach"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CleanCatchword(tt.input)
			if got != tt.want {
				t.Errorf("CleanCatchword(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := CleanCatchword(got); again != got {
				t.Errorf("CleanCatchword not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestJoinCatchwords(t *testing.T) {
	t.Parallel()

	t.Run("no catchwords yields nil", func(t *testing.T) {
		t.Parallel()

		if got := JoinCatchwords(nil); got != nil {
			t.Errorf("expected nil, got %q", *got)
		}
		if got := JoinCatchwords([]string{}); got != nil {
			t.Errorf("expected nil, got %q", *got)
		}
	})

	t.Run("catchwords are joined with comma and space", func(t *testing.T) {
		t.Parallel()

		got := JoinCatchwords([]string{"Contract-Breach", "Damages"})
		if got == nil {
			t.Fatal("expected non-nil catchwords")
		}
		if *got != "Contract-Breach, Damages" {
			t.Errorf("got %q", *got)
		}
	})
}

func TestCleanAuthor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "delivering note and colon are removed",
			input: "Judge Name (delivering the grounds of decision):",
			want:  "Judge Name",
		},
		{
			name:  "bare name with trailing colon",
			input: "  Vinodh Coomaraswamy J:\n",
			want:  "Vinodh Coomaraswamy J",
		},
		{
			name:  "stray A-circumflex is removed",
			input: "See Kee OonÂ J:",
			want:  "See Kee Oon J",
		},
		{
			name:  "removing a colon does not leave mojibake behind",
			input: "Ã:€",
			want:  "À",
		},
		{
			name:  "colons between mis-decoded bytes are removed first",
			input: ":Ã”:\u0094â©",
			want:  `Ô"â©`,
		},
		{
			name:  "no delivering note keeps the whole name",
			input: "Sundaresh Menon CJ",
			want:  "Sundaresh Menon CJ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CleanAuthor(tt.input)
			if got != tt.want {
				t.Errorf("CleanAuthor(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := CleanAuthor(got); again != got {
				t.Errorf("CleanAuthor not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCleanParties(t *testing.T) {
	t.Parallel()

	t.Run("fragments are joined and semicolons removed", func(t *testing.T) {
		t.Parallel()

		got := CleanParties([]string{
			"  Tan Ah Kow (Tan & Co) for the appellant;\n",
			"Lim Bee Lian (Lim LLC) for the respondent.",
		})
		want := "Tan Ah Kow (Tan & Co) for the appellant Lim Bee Lian (Lim LLC) for the respondent."
		if got != want {
			t.Errorf("CleanParties = %q, want %q", got, want)
		}
	})

	t.Run("empty fragments produce an empty result", func(t *testing.T) {
		t.Parallel()

		if got := CleanParties([]string{" ", ";", ""}); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})

	t.Run("removing a semicolon does not leave mojibake behind", func(t *testing.T) {
		t.Parallel()

		got := CleanParties([]string{"CafÃ;©"})
		if got != "Café" {
			t.Errorf("CleanParties = %q, want %q", got, "Café")
		}
		if again := CleanParties([]string{got}); again != got {
			t.Errorf("CleanParties not idempotent: %q -> %q", got, again)
		}
	})

	t.Run("no fragments produce an empty result", func(t *testing.T) {
		t.Parallel()

		if got := CleanParties(nil); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})
}

// cleanerSeeds are inputs that once needed a second pass to settle.
var cleanerSeeds = []string{
	"[Tort ]",
	"[ Contract — Breach ]",
	"A||",
	":Ã”:\u0094â©",
	"Ã:€",
	"[Contractâ€”Breach]",
	"[2021] SGHC 123 |",
	"Judge Name (delivering the grounds of decision):",
}

func fuzzIdempotent(f *testing.F, name string, clean func(string) string) {
	f.Helper()

	for _, seed := range cleanerSeeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		once := clean(input)
		if twice := clean(once); twice != once {
			t.Errorf("%s not idempotent: %q -> %q -> %q", name, input, once, twice)
		}
	})
}

func FuzzCleanCatchword(f *testing.F) {
	fuzzIdempotent(f, "CleanCatchword", CleanCatchword)
}

func FuzzCleanIdentifier(f *testing.F) {
	fuzzIdempotent(f, "CleanIdentifier", CleanIdentifier)
}

func FuzzCleanAuthor(f *testing.F) {
	fuzzIdempotent(f, "CleanAuthor", CleanAuthor)
}

func FuzzCleanParties(f *testing.F) {
	fuzzIdempotent(f, "CleanParties", func(s string) string {
		return CleanParties([]string{s})
	})
}
