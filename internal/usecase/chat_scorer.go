package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/avant-atelier/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var tokenSplitRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Token weights and bonuses for chat-context scoring
const (
	weightLongToken  = 2 // tokens longer than 3 characters
	weightShortToken = 1 // everything else
	bonusNameInQuery = 3 // whole query contains the record's name
	bonusCategory    = 2 // query and category share a domain keyword group
	bonusColor       = 1 // one of the record's colors appears in the query

	// Hard ceiling on chat-context results regardless of caller's cap
	maxChatResults = 25
)

// categoryKeywordGroups pair a query pattern with a category pattern; when
// both sides match, the record gets a category bonus.
var categoryKeywordGroups = []struct {
	query    *regexp.Regexp
	category *regexp.Regexp
}{
	{
		query:    regexp.MustCompile(`\btop(s)?\b|shirt|tee|sweater|hoodie|jacket`),
		category: regexp.MustCompile(`top|shirt|tee|sweater|hoodie|jacket`),
	},
	{
		query:    regexp.MustCompile(`\bbottom(s)?\b|trouser|pant|short|jean|denim`),
		category: regexp.MustCompile(`bottom|trouser|pant|short|jean|denim`),
	},
	{
		query:    regexp.MustCompile(`accessor(y|ies)|bag|glass|sunglass`),
		category: regexp.MustCompile(`accessor|bag|glass`),
	},
}

// HaystackFields selects which record fields the chat scorer searches.
type HaystackFields int

const (
	// FieldsBasic searches name, description and category.
	FieldsBasic HaystackFields = iota
	// FieldsExtended additionally searches colors, sizes and status.
	FieldsExtended
)

// ChatScorer ranks catalog records to build grounding context for the
// chat assistant. Scoring is additive across independent signals, unlike
// the popup scorer's first-match-wins rule; the two are intentionally
// kept separate.
type ChatScorer struct {
	fields HaystackFields
}

// NewChatScorer creates a chat scorer over the given field set
func NewChatScorer(fields HaystackFields) *ChatScorer {
	return &ChatScorer{fields: fields}
}

// Score returns every record with a positive score, best first. Higher
// scores are better; ties keep catalog order. A blank query yields no
// results.
func (s *ChatScorer) Score(query string, catalog []domain.ProductRecord) []domain.ScoredMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	tokens := tokenizeQuery(q)
	if len(tokens) == 0 {
		return nil
	}

	var results []domain.ScoredMatch
	for _, record := range catalog {
		score := s.scoreRecord(q, tokens, record)
		if score <= 0 {
			continue
		}
		results = append(results, domain.ScoredMatch{Record: record, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// TopMatches returns the records of the best max results (capped at 25)
func (s *ChatScorer) TopMatches(query string, catalog []domain.ProductRecord, max int) []domain.ProductRecord {
	results := s.Score(query, catalog)

	limit := max
	if limit <= 0 || limit > maxChatResults {
		limit = maxChatResults
	}
	if limit > len(results) {
		limit = len(results)
	}

	records := make([]domain.ProductRecord, 0, limit)
	for _, match := range results[:limit] {
		records = append(records, match.Record)
	}
	return records
}

// scoreRecord sums the independent signals for one record
func (s *ChatScorer) scoreRecord(q string, tokens []string, record domain.ProductRecord) int {
	haystack := s.haystack(record)

	score := 0
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			continue
		}
		if len(token) > 3 {
			score += weightLongToken
		} else {
			score += weightShortToken
		}
	}

	name := strings.ToLower(record.Name)
	if q != "" && name != "" && strings.Contains(q, name) {
		score += bonusNameInQuery
	}

	category := strings.ToLower(record.Category)
	for _, group := range categoryKeywordGroups {
		if group.query.MatchString(q) && group.category.MatchString(category) {
			score += bonusCategory
		}
	}

	for _, color := range record.Colors {
		if color != "" && strings.Contains(q, strings.ToLower(color)) {
			score += bonusColor
			break
		}
	}

	return score
}

// haystack joins the searchable fields of a record, lowercased
func (s *ChatScorer) haystack(record domain.ProductRecord) string {
	fields := []string{
		record.Name,
		record.Description,
		record.Category,
	}
	if s.fields == FieldsExtended {
		fields = append(fields,
			strings.Join(record.Colors, " "),
			strings.Join(record.Sizes, " "),
			record.Status,
		)
	}
	return strings.ToLower(strings.Join(fields, "\n"))
}

// tokenizeQuery splits a lowercased query on runs of non-alphanumeric
// characters, discarding empty tokens
func tokenizeQuery(q string) []string {
	var tokens []string
	for _, token := range tokenSplitRegex.Split(q, -1) {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// FormatContext renders ranked records as the grounding block handed to
// the generative API: one block per record, blank-line separated.
func FormatContext(records []domain.ProductRecord) string {
	if len(records) == 0 {
		return "No matching items found in the catalog."
	}

	blocks := make([]string, 0, len(records))
	for i, record := range records {
		id := record.ID
		if id == "" {
			id = "n/a"
		}
		description := record.Description
		if description == "" {
			description = "(no description)"
		}
		blocks = append(blocks, fmt.Sprintf("#%d [%s] %s — %s\nID: %s\n%s\n",
			i+1, record.Category, record.Name, renderPrice(record.Price), id, description))
	}

	return strings.Join(blocks, "\n")
}

// renderPrice formats an optional price for context and fallback answers
func renderPrice(price *float64) string {
	if price == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *price)
}
