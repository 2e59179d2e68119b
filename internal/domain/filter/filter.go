// Package filter is the single implementation of the listing predicates.
// The in-memory path calls Apply directly; the store-backed path pushes
// StoreSide down as query predicates and runs ClientSide over the rows that
// come back.
package filter

import (
	"errors"
	"strconv"
	"strings"

	"recipe_journal/internal/domain/models"
)

// All is the sentinel a client sends for "no filter".
const All = "all"

var ErrInvalidMaxCookTime = errors.New("maxCookTime must be a non-negative integer or \"all\"")

// Spec is a set of conjunctive predicates. Zero values are inactive.
type Spec struct {
	Search       string
	Category     string
	Difficulty   string
	MaxTotalTime *int
}

// ParseSpec builds a Spec from raw query parameters.
func ParseSpec(search, category, difficulty, maxCookTime string) (Spec, error) {
	spec := Spec{
		Search:     unsetAll(search),
		Category:   unsetAll(category),
		Difficulty: unsetAll(difficulty),
	}

	raw := strings.TrimSpace(maxCookTime)
	if raw == "" || raw == All {
		return spec, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return Spec{}, ErrInvalidMaxCookTime
	}
	spec.MaxTotalTime = &n

	return spec, nil
}

func unsetAll(v string) string {
	if v == All {
		return ""
	}
	return v
}

func (s Spec) IsZero() bool {
	return s.Search == "" && s.Category == "" && s.Difficulty == "" && s.MaxTotalTime == nil
}

// StoreSide keeps only the predicates a store can evaluate on stored columns.
func (s Spec) StoreSide() Spec {
	s.MaxTotalTime = nil
	return s
}

// ClientSide keeps only the predicates over derived fields. They must run in
// memory whatever the store already did.
func (s Spec) ClientSide() Spec {
	return Spec{MaxTotalTime: s.MaxTotalTime}
}

// Match reports whether item passes every active predicate.
func (s Spec) Match(item models.Listing) bool {
	base := item.Base()

	if s.Search != "" && !matchSearch(base, strings.ToLower(s.Search)) {
		return false
	}

	if s.Category != "" && !strings.Contains(strings.ToLower(base.Category), strings.ToLower(s.Category)) {
		return false
	}

	// difficulty is exact and case-sensitive, unlike category
	if s.Difficulty != "" && string(item.Level()) != s.Difficulty {
		return false
	}

	if s.MaxTotalTime != nil && item.TotalTime() > *s.MaxTotalTime {
		return false
	}

	return true
}

func matchSearch(item models.ContentItem, term string) bool {
	if strings.Contains(strings.ToLower(item.Title), term) ||
		strings.Contains(strings.ToLower(item.Description), term) ||
		strings.Contains(strings.ToLower(item.Category), term) {
		return true
	}

	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}

	return false
}

// Apply returns the items matching spec in their original order.
func Apply[T models.Listing](items []T, spec Spec) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if spec.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// UniqueCategories lists each non-empty category once, in order of first
// appearance. Case is preserved.
func UniqueCategories[T models.Listing](items []T) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0)

	for _, item := range items {
		category := item.Base().Category
		if category == "" {
			continue
		}
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}

	return out
}
