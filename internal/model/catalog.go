package model

import "sort"

// Catalog maps a catalog id (app or package id) to its display name.
// It is populated once per run and read-only afterwards.
type Catalog map[int]string

// IDs returns the catalog ids in ascending order.
func (c Catalog) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// MatchResult is the outcome of looking a title up in the catalog.
type MatchResult struct {
	Score     int
	CatalogID *int
}

// Matched reports whether the title was matched to a catalog entry.
func (m MatchResult) Matched() bool {
	return m.CatalogID != nil
}
