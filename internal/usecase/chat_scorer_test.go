package usecase

import (
	"reflect"
	"strings"
	"testing"

	"github.com/avant-atelier/backend/internal/domain"
)

func TestChatScorerScore(t *testing.T) {
	scorer := NewChatScorer(FieldsExtended)

	catalog := []domain.ProductRecord{
		{ID: "t1", Name: "Linen Shirt", Description: "Breathable summer shirt", Category: "top"},
		{ID: "b1", Name: "Wide Trousers", Description: "High waist", Category: "bottom"},
		{ID: "a1", Name: "Canvas Tote", Description: "Everyday bag", Category: "accessory", Colors: []string{"Olive"}},
	}

	t.Run("blank query yields nothing", func(t *testing.T) {
		if got := scorer.Score("", catalog); got != nil {
			t.Errorf("Score(\"\") = %v, want nil", got)
		}
		if got := scorer.Score("  !!! ", catalog); got != nil {
			t.Errorf("punctuation-only query = %v, want nil", got)
		}
	})

	t.Run("token weight depends on length", func(t *testing.T) {
		// "hat" (len 3) scores 1, "shirt" (len 5) scores 2. The record name
		// is not a substring of the query, so no name bonus applies.
		one := []domain.ProductRecord{{ID: "x", Name: "Bucket hat shirt combo", Category: "misc"}}
		results := scorer.Score("shirt hat", one)
		if len(results) != 1 {
			t.Fatalf("len = %d, want 1", len(results))
		}
		if results[0].Score != weightLongToken+weightShortToken {
			t.Errorf("score = %d, want %d", results[0].Score, weightLongToken+weightShortToken)
		}
	})

	t.Run("zero scores are excluded", func(t *testing.T) {
		results := scorer.Score("spaceship", catalog)
		if len(results) != 0 {
			t.Errorf("results = %+v, want none", results)
		}
	})

	t.Run("query containing full name gets bonus", func(t *testing.T) {
		results := scorer.Score("how much is the linen shirt", catalog)
		if len(results) == 0 || results[0].Record.ID != "t1" {
			t.Fatalf("results = %+v, want t1 first", results)
		}
		// tokens "linen"(2) + "shirt"(2) + "the"(0) ... plus name bonus 3
		// and tops category bonus 2
		want := weightLongToken*2 + bonusNameInQuery + bonusCategory
		if results[0].Score != want {
			t.Errorf("score = %d, want %d", results[0].Score, want)
		}
	})

	t.Run("category keyword bonus", func(t *testing.T) {
		results := scorer.Score("any jeans or trousers?", catalog)
		if len(results) == 0 || results[0].Record.ID != "b1" {
			t.Fatalf("results = %+v, want b1 first", results)
		}
		// "trousers"(2) matched in name, plus bottoms category bonus
		if results[0].Score != weightLongToken+bonusCategory {
			t.Errorf("score = %d, want %d", results[0].Score, weightLongToken+bonusCategory)
		}
	})

	t.Run("color mention bonus", func(t *testing.T) {
		withColor := scorer.Score("olive bag", catalog)
		if len(withColor) == 0 || withColor[0].Record.ID != "a1" {
			t.Fatalf("results = %+v, want a1 first", withColor)
		}
		without := scorer.Score("bag", catalog)
		if len(without) == 0 {
			t.Fatal("no results for plain query")
		}
		if withColor[0].Score <= without[0].Score {
			t.Errorf("color mention did not raise score: %d vs %d", withColor[0].Score, without[0].Score)
		}
	})

	t.Run("extended haystack sees status, basic does not", func(t *testing.T) {
		soldOut := []domain.ProductRecord{{ID: "s1", Name: "Scarf", Category: "accessory", Status: "sold-out"}}

		extended := NewChatScorer(FieldsExtended).Score("sold", soldOut)
		if len(extended) != 1 {
			t.Errorf("extended results = %+v, want 1", extended)
		}

		basic := NewChatScorer(FieldsBasic).Score("sold", soldOut)
		if len(basic) != 0 {
			t.Errorf("basic results = %+v, want none", basic)
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
			{ID: "a", Name: "Denim Jacket", Category: "misc"},
			{ID: "b", Name: "Denim Shift", Category: "misc"},
		}
		results := scorer.Score("denim", twins)
		if len(results) != 2 || results[0].Record.ID != "a" {
			t.Errorf("results = %+v, want catalog order preserved", results)
		}
	})
}

func TestTopMatches(t *testing.T) {
	scorer := NewChatScorer(FieldsExtended)

	var catalog []domain.ProductRecord
	for i := 0; i < 40; i++ {
		catalog = append(catalog, domain.ProductRecord{
			ID: string(rune('a' + i%26)), Name: "Linen Shirt", Category: "top",
		})
	}

	t.Run("caps at requested size", func(t *testing.T) {
		if got := scorer.TopMatches("linen shirt", catalog, 8); len(got) != 8 {
			t.Errorf("len = %d, want 8", len(got))
		}
	})

	t.Run("hard ceiling", func(t *testing.T) {
		if got := scorer.TopMatches("linen shirt", catalog, 100); len(got) != maxChatResults {
			t.Errorf("len = %d, want %d", len(got), maxChatResults)
		}
	})

	t.Run("non-positive max uses ceiling", func(t *testing.T) {
		if got := scorer.TopMatches("linen shirt", catalog, 0); len(got) != maxChatResults {
			t.Errorf("len = %d, want %d", len(got), maxChatResults)
		}
	})
}

func TestFormatContext(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := FormatContext(nil); got != "No matching items found in the catalog." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("blocks", func(t *testing.T) {
		records := []domain.ProductRecord{
			{ID: "t1", Name: "Linen Shirt", Description: "Breathable", Category: "top", Price: price(49.5)},
			{Name: "Mystery Item", Category: "new"},
		}

		got := FormatContext(records)

		wantFirst := "#1 [top] Linen Shirt — $49.50\nID: t1\nBreathable\n"
		if !strings.HasPrefix(got, wantFirst) {
			t.Errorf("first block = %q, want prefix %q", got, wantFirst)
		}
		if !strings.Contains(got, "#2 [new] Mystery Item — N/A\nID: n/a\n(no description)\n") {
			t.Errorf("second block missing fallbacks: %q", got)
		}
		if !strings.Contains(got, "\n\n#2") {
			t.Errorf("blocks not blank-line separated: %q", got)
		}
	})
}
