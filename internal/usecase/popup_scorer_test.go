package usecase

import (
	"reflect"
	"testing"

	"github.com/avant-atelier/backend/internal/domain"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Linen Shirt", "linen shirt"},
		{"Áo", "ao"},
		{"Đầm", "đam"}, // đ has no combining mark to strip
		{"café CRÈME", "cafe creme"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPopupScorerScore(t *testing.T) {
	scorer := NewPopupScorer()

	catalog := []domain.ProductRecord{
		{ID: "1", Name: "Linen Shirt", Description: "Breathable summer staple"},
		{ID: "2", Name: "Silk Shirt", Description: "Evening wear"},
		{ID: "3", Name: "Wide Trousers", Description: "Pairs well with any shirt"},
		{ID: "4", Name: "Tote Bag", Details: []string{"canvas", "shirt-friendly size"}},
	}

	t.Run("blank query yields nothing", func(t *testing.T) {
		if got := scorer.Score("", catalog); got != nil {
			t.Errorf("Score(\"\") = %v, want nil", got)
		}
		if got := scorer.Score("   \t ", catalog); got != nil {
			t.Errorf("whitespace query = %v, want nil", got)
		}
	})

	t.Run("name match at position zero scores 0", func(t *testing.T) {
		results := scorer.Score("linen", catalog)
		if len(results) == 0 {
			t.Fatal("no results")
		}
		if results[0].Record.ID != "1" || results[0].Score != 0 {
			t.Errorf("best = %+v, want record 1 with score 0", results[0])
		}
	})

	t.Run("name beats description beats metadata", func(t *testing.T) {
		results := scorer.Score("shirt", catalog)
		if len(results) != 4 {
			t.Fatalf("len = %d, want 4", len(results))
		}
		// "Silk Shirt" and "Linen Shirt" match in the name band, then the
		// description band (record 3), then metadata (record 4).
		if results[0].Record.ID != "2" {
			t.Errorf("first = %s, want 2 (earliest name offset)", results[0].Record.ID)
		}
		if results[1].Record.ID != "1" {
			t.Errorf("second = %s, want 1", results[1].Record.ID)
		}
		if results[2].Record.ID != "3" {
			t.Errorf("third = %s, want 3 (description band)", results[2].Record.ID)
		}
		if results[3].Record.ID != "4" {
			t.Errorf("fourth = %s, want 4 (metadata band)", results[3].Record.ID)
		}
		if results[2].Score < descBandOffset || results[2].Score >= metaBandOffset {
			t.Errorf("description score = %d, want within description band", results[2].Score)
		}
	})

	t.Run("only the best field counts per record", func(t *testing.T) {
		// "shirt" appears in both name and description of this record;
		// the description must not add anything.
		one := []domain.ProductRecord{{ID: "x", Name: "Shirt", Description: "A shirt that says shirt"}}
		results := scorer.Score("shirt", one)
		if len(results) != 1 || results[0].Score != 0 {
			t.Errorf("results = %+v, want single score 0", results)
		}
	})

	t.Run("diacritic insensitive both directions", func(t *testing.T) {
		viCatalog := []domain.ProductRecord{{ID: "vn1", Name: "Áo sơ mi"}}

		if results := scorer.Score("ao", viCatalog); len(results) != 1 {
			t.Errorf("plain query vs accented name: %d results, want 1", len(results))
		}
		if results := scorer.Score("áo", viCatalog); len(results) != 1 {
			t.Errorf("accented query vs accented name: %d results, want 1", len(results))
		}

		plainCatalog := []domain.ProductRecord{{ID: "p1", Name: "ao dai"}}
		if results := scorer.Score("áo", plainCatalog); len(results) != 1 {
			t.Errorf("accented query vs plain name: %d results, want 1", len(results))
		}
	})

	t.Run("offsets count characters, not bytes", func(t *testing.T) {
		// "Đen Shirt" normalizes to "đen shirt"; đ stays two bytes, so a
		// byte offset would score the match at 5 instead of 4.
		viCatalog := []domain.ProductRecord{{ID: "vn2", Name: "Đen Shirt"}}

		results := scorer.Score("shirt", viCatalog)
		if len(results) != 1 {
			t.Fatalf("len = %d, want 1", len(results))
		}
		if results[0].Score != nameBandOffset+4 {
			t.Errorf("score = %d, want %d", results[0].Score, nameBandOffset+4)
		}
	})

	t.Run("id participates in metadata haystack", func(t *testing.T) {
		results := scorer.Score("4", catalog)
		if len(results) != 1 || results[0].Record.ID != "4" {
			t.Errorf("results = %+v, want record 4 via id", results)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		first := scorer.Score("shirt", catalog)
		second := scorer.Score("shirt", catalog)
		if !reflect.DeepEqual(first, second) {
			t.Error("same query and catalog produced different output")
		}
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		twins := []domain.ProductRecord{
			{ID: "a", Name: "Denim Jacket"},
			{ID: "b", Name: "Denim Jeans"},
		}
		results := scorer.Score("denim", twins)
		if len(results) != 2 || results[0].Record.ID != "a" || results[1].Record.ID != "b" {
			t.Errorf("results = %+v, want catalog order preserved", results)
		}
	})

	t.Run("exact full-name query ranks that record best", func(t *testing.T) {
		results := scorer.Score("wide trousers", catalog)
		if len(results) == 0 || results[0].Record.ID != "3" {
			t.Errorf("results = %+v, want record 3 first", results)
		}
	})
}
