package model

import "strings"

// MatchList is the ordered list of tokens found for one category.
// Duplicates are kept; order is the order of appearance in the source.
type MatchList []string

// Content renders the list the way it is persisted: entries joined by a
// single newline, no trailing newline.
func (m MatchList) Content() string {
	return strings.Join(m, "\n")
}

// SplitResult holds the per-category matches of one input
type SplitResult struct {
	Categories []Category           `json:"categories"`
	Matches    map[string]MatchList `json:"matches"`
}

// Get returns the matches for a category (empty if unknown)
func (r *SplitResult) Get(name string) MatchList {
	if r == nil {
		return MatchList{}
	}
	if m, ok := r.Matches[name]; ok {
		return m
	}
	return MatchList{}
}

// Total returns the number of tokens across all categories
func (r *SplitResult) Total() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, m := range r.Matches {
		total += len(m)
	}
	return total
}

// Artifact is one persisted output file
type Artifact struct {
	Category string `json:"category"`
	Date     string `json:"date"`
	Path     string `json:"path"`
	Entries  int    `json:"entries"`
}
