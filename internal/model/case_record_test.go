package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewCaseRecord(t *testing.T) {
	t.Parallel()

	catchwords := "Contract-Breach, Damages"
	card := ListCard{
		Identifier: "[2021] SGHC 123",
		Catchwords: &catchwords,
		Year:       2021,
		Page:       3,
		URL:        "https://www.elitigation.sg/gd/s/2021_SGHC_123",
	}
	detail := CaseDetail{
		WordCount:      1532,
		ParagraphCount: 45,
		Author:         "Judge Name",
		LegalParties:   "Tan Ah Kow for the appellant",
	}

	t.Run("merges card and detail fields", func(t *testing.T) {
		t.Parallel()

		want := CaseRecord{
			CaseIdentifier: "[2021] SGHC 123",
			Catchwords:     &catchwords,
			Year:           2021,
			URL:            "https://www.elitigation.sg/gd/s/2021_SGHC_123",
			WordCount:      1532,
			ParagraphCount: 45,
			Author:         "Judge Name",
			LegalParties:   "Tan Ah Kow for the appellant",
		}
		if diff := cmp.Diff(want, NewCaseRecord(card, detail)); diff != "" {
			t.Errorf("NewCaseRecord mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("negative counts are clamped to zero", func(t *testing.T) {
		t.Parallel()

		got := NewCaseRecord(card, CaseDetail{WordCount: -1, ParagraphCount: -5})
		if got.WordCount != 0 || got.ParagraphCount != 0 {
			t.Errorf("got WordCount=%d ParagraphCount=%d, want 0 and 0", got.WordCount, got.ParagraphCount)
		}
	})
}

func TestCaseRecordRow(t *testing.T) {
	t.Parallel()

	t.Run("cells follow the column order", func(t *testing.T) {
		t.Parallel()

		catchwords := "Tort"
		record := CaseRecord{
			CaseIdentifier: "[2020] SGCA 7",
			Catchwords:     &catchwords,
			Year:           2020,
			URL:            "https://www.elitigation.sg/gd/s/2020_SGCA_7",
			WordCount:      10,
			ParagraphCount: 2,
			Author:         UnknownAuthor,
			LegalParties:   PartiesNotFound,
		}
		want := []string{
			"[2020] SGCA 7", "Tort", "2020", "https://www.elitigation.sg/gd/s/2020_SGCA_7",
			"10", "2", "Unknown", "Not found",
		}
		got := record.Row()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Row mismatch (-want +got):\n%s", diff)
		}
		if len(got) != len(Columns) {
			t.Errorf("row has %d cells, columns has %d", len(got), len(Columns))
		}
	})

	t.Run("missing catchwords become an empty cell", func(t *testing.T) {
		t.Parallel()

		record := CaseRecord{CaseIdentifier: "[2020] SGCA 8", Year: 2020}
		if got := record.Row()[1]; got != "" {
			t.Errorf("catchwords cell = %q, want empty", got)
		}
		if _, ok := record.CatchwordsText(); ok {
			t.Error("expected CatchwordsText to report absence")
		}
	})
}

func TestCaseRecordJSON(t *testing.T) {
	t.Parallel()

	t.Run("missing catchwords serialize as null", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(CaseRecord{CaseIdentifier: "[2020] SGCA 8"})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		value, ok := fields["Catchwords"]
		if !ok {
			t.Fatal("expected Catchwords key to be present")
		}
		if value != nil {
			t.Errorf("Catchwords = %v, want null", value)
		}
	})
}
