package extract

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ppiankov/benchsplit/internal/model"
)

// tokenBody matches a run of non-whitespace characters. Besides the ASCII
// set (tab, newline, vertical tab, form feed, carriage return, space) the
// information separators U+001C-U+001F, NEL and every Unicode separator
// also end a token.
const tokenBody = `[^\t\n\v\f\r \x{1c}-\x{1f}\x{85}\p{Z}]+`

var (
	// ErrNoCategories is returned when a splitter is built without categories
	ErrNoCategories = errors.New("no categories configured")
	// ErrInvalidCategory is returned for a category with an empty name or prefix
	ErrInvalidCategory = errors.New("invalid category")
	// ErrDuplicateCategory is returned when two categories share a name
	ErrDuplicateCategory = errors.New("duplicate category")
)

// Splitter classifies benchmark tokens by category prefix
type Splitter struct {
	categories []model.Category
	patterns   []*regexp.Regexp
}

// NewSplitter compiles one pattern per category
func NewSplitter(categories []model.Category) (*Splitter, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	seen := make(map[string]bool, len(categories))
	patterns := make([]*regexp.Regexp, 0, len(categories))

	for _, c := range categories {
		if c.Name == "" || c.Prefix == "" {
			return nil, fmt.Errorf("%w: name=%q prefix=%q", ErrInvalidCategory, c.Name, c.Prefix)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, c.Name)
		}
		seen[c.Name] = true

		re, err := regexp.Compile(regexp.QuoteMeta(c.Prefix) + tokenBody)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for %s: %w", c.Name, err)
		}
		patterns = append(patterns, re)
	}

	cats := make([]model.Category, len(categories))
	copy(cats, categories)

	return &Splitter{
		categories: cats,
		patterns:   patterns,
	}, nil
}

// Categories returns the categories in output order
func (s *Splitter) Categories() []model.Category {
	cats := make([]model.Category, len(s.categories))
	copy(cats, s.categories)
	return cats
}

// Split scans content once per category. Each scan runs against the
// original text, so tokens matched by one category never hide tokens from
// another.
func (s *Splitter) Split(content string) *model.SplitResult {
	result := &model.SplitResult{
		Categories: s.Categories(),
		Matches:    make(map[string]model.MatchList, len(s.categories)),
	}

	for i, c := range s.categories {
		found := s.patterns[i].FindAllString(content, -1)
		matches := make(model.MatchList, 0, len(found))
		matches = append(matches, found...)
		result.Matches[c.Name] = matches
	}

	return result
}
