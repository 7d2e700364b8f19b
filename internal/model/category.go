package model

// Category pairs a benchmark class name with the literal token prefix that
// marks its benchmarks in the log (e.g. "BM_access_").
type Category struct {
	Name   string `yaml:"name" json:"name"`
	Prefix string `yaml:"prefix" json:"prefix"`
}

// Benchmark category names
const (
	CategoryAccess       = "access"
	CategoryConstruction = "construction"
	CategoryFind         = "find"
	CategoryInsert       = "insert"
	CategoryReserve      = "reserve"
)

// DefaultPrefix precedes the category name in Google Benchmark function names
const DefaultPrefix = "BM_"

// DefaultCategories returns the five fixed benchmark categories in output order
func DefaultCategories() []Category {
	names := []string{
		CategoryAccess,
		CategoryConstruction,
		CategoryFind,
		CategoryInsert,
		CategoryReserve,
	}

	categories := make([]Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, NewCategory(name))
	}
	return categories
}

// NewCategory builds a category whose prefix is BM_<name>_
func NewCategory(name string) Category {
	return Category{
		Name:   name,
		Prefix: DefaultPrefix + name + "_",
	}
}
