package usecase

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/avant-atelier/backend/internal/domain"
)

// Popup scorer field bases. Lower is better; the offset of the keyword
// within the matched field is added on top, so earlier occurrences rank
// ahead within a band.
const (
	nameBandOffset = 100 // name match not at position 0
	descBandOffset = 300 // description match
	metaBandOffset = 600 // details/colors/id match
)

// PopupScorer ranks catalog records for the search-as-you-type popup.
// Matching is diacritic-insensitive whole-keyword substring search, and
// only the single best field counts per record: name first, then
// description, then the joined details/colors/id metadata.
type PopupScorer struct{}

// NewPopupScorer creates a popup scorer
func NewPopupScorer() *PopupScorer {
	return &PopupScorer{}
}

// NormalizeText lowercases s and strips diacritics via NFD decomposition,
// so accented queries match unaccented catalog text and vice versa.
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	lowered := strings.ToLower(s)

	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(chain, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}

// Score returns every record matching the query, best first. Lower scores
// are better; ties keep catalog order. A blank or
// whitespace-only query yields no results.
func (s *PopupScorer) Score(query string, catalog []domain.ProductRecord) []domain.ScoredMatch {
	keyword := NormalizeText(strings.TrimSpace(query))
	if keyword == "" {
		return nil
	}

	var results []domain.ScoredMatch
	for _, record := range catalog {
		score, ok := s.scoreRecord(keyword, record)
		if !ok {
			continue
		}
		results = append(results, domain.ScoredMatch{Record: record, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	return results
}

// scoreRecord evaluates one record; first matching field wins
func (s *PopupScorer) scoreRecord(keyword string, record domain.ProductRecord) (int, bool) {
	name := NormalizeText(record.Name)
	if idx := runeIndex(name, keyword); idx >= 0 {
		if idx == 0 {
			return 0, true
		}
		return nameBandOffset + idx, true
	}

	description := NormalizeText(record.Description)
	if idx := runeIndex(description, keyword); idx >= 0 {
		return descBandOffset + idx, true
	}

	meta := NormalizeText(metaHaystack(record))
	if idx := runeIndex(meta, keyword); idx >= 0 {
		return metaBandOffset + idx, true
	}

	return 0, false
}

// runeIndex is strings.Index measured in runes, so characters that stay
// multibyte after normalization (đ and the like) do not inflate the
// offset added to a band.
func runeIndex(s, substr string) int {
	idx := strings.Index(s, substr)
	if idx <= 0 {
		return idx
	}
	return utf8.RuneCountInString(s[:idx])
}

// metaHaystack folds details, colors and the record ID into one searchable
// string. The ID participating in text relevance is inherited behavior,
// kept as-is pending product review.
func metaHaystack(record domain.ProductRecord) string {
	parts := []string{
		strings.Join(record.Details, " "),
		strings.Join(record.Colors, " "),
		record.ID,
	}
	return strings.Join(parts, " ")
}
