package extract

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/ppiankov/benchsplit/internal/model"
)

func newDefaultSplitter(t *testing.T) *Splitter {
	t.Helper()
	s, err := NewSplitter(model.DefaultCategories())
	if err != nil {
		t.Fatalf("NewSplitter failed: %v", err)
	}
	return s
}

func TestSplitter_BasicExample(t *testing.T) {
	s := newDefaultSplitter(t)

	result := s.Split("BM_access_foo BM_insert_bar BM_access_baz")

	access := result.Get(model.CategoryAccess)
	if !reflect.DeepEqual([]string(access), []string{"BM_access_foo", "BM_access_baz"}) {
		t.Errorf("unexpected access matches: %v", access)
	}

	insert := result.Get(model.CategoryInsert)
	if !reflect.DeepEqual([]string(insert), []string{"BM_insert_bar"}) {
		t.Errorf("unexpected insert matches: %v", insert)
	}

	for _, name := range []string{model.CategoryConstruction, model.CategoryFind, model.CategoryReserve} {
		if got := result.Get(name); len(got) != 0 {
			t.Errorf("expected no %s matches, got %v", name, got)
		}
	}
}

func TestSplitter_GoogleBenchmarkOutput(t *testing.T) {
	s := newDefaultSplitter(t)

	content := `Running ./benchmark_main
Run on (8 X 3600 MHz CPU s)
-------------------------------------------------------------------------
Benchmark                               Time             CPU   Iterations
-------------------------------------------------------------------------
BM_access_buffer/1                   1.23 ns         1.23 ns    569876543
BM_access_buffer/1000                 312 ns          312 ns      2245112
BM_access_vector/1                   0.98 ns         0.98 ns    712345678
BM_construction_default_buffer        45.1 ns         45.1 ns     15512345
BM_find_if_not_vector/512             201 ns          201 ns      3481234
BM_reserve_buffer/64                 88.2 ns         88.2 ns      7923456
`

	result := s.Split(content)

	expected := map[string][]string{
		model.CategoryAccess:       {"BM_access_buffer/1", "BM_access_buffer/1000", "BM_access_vector/1"},
		model.CategoryConstruction: {"BM_construction_default_buffer"},
		model.CategoryFind:         {"BM_find_if_not_vector/512"},
		model.CategoryInsert:       {},
		model.CategoryReserve:      {"BM_reserve_buffer/64"},
	}

	for name, want := range expected {
		got := []string(result.Get(name))
		if len(got) == 0 && len(want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func TestSplitter_EmptyInput(t *testing.T) {
	s := newDefaultSplitter(t)

	result := s.Split("")

	if len(result.Matches) != 5 {
		t.Fatalf("expected 5 categories in result, got %d", len(result.Matches))
	}
	for name, matches := range result.Matches {
		if matches == nil {
			t.Errorf("expected non-nil empty list for %s", name)
		}
		if len(matches) != 0 {
			t.Errorf("expected no matches for %s, got %v", name, matches)
		}
	}
	if result.Total() != 0 {
		t.Errorf("expected total 0, got %d", result.Total())
	}
}

func TestSplitter_WhitespaceTerminatesTokens(t *testing.T) {
	s := newDefaultSplitter(t)

	separators := map[string]string{
		"tab":             "\t",
		"newline":         "\n",
		"space":           " ",
		"carriage return": "\r",
		"form feed":       "\f",
		"vertical tab":    "\v",
		"no-break space":  "\u00a0",
		"line separator":  "\u2028",
		"unit separator":  "\x1f",
	}

	for label, sep := range separators {
		result := s.Split("BM_access_1" + sep + "BM_access_2")
		got := []string(result.Get(model.CategoryAccess))
		want := []string{"BM_access_1", "BM_access_2"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: expected %v, got %v", label, want, got)
		}
	}
}

func TestSplitter_PrefixNeedsBody(t *testing.T) {
	s := newDefaultSplitter(t)

	result := s.Split("BM_access_ BM_access_\tBM_access_x")

	got := []string(result.Get(model.CategoryAccess))
	if !reflect.DeepEqual(got, []string{"BM_access_x"}) {
		t.Errorf("expected only BM_access_x, got %v", got)
	}
}

func TestSplitter_DuplicatesPreserved(t *testing.T) {
	s := newDefaultSplitter(t)

	result := s.Split("BM_find_a BM_find_a\nBM_find_a")

	got := result.Get(model.CategoryFind)
	if len(got) != 3 {
		t.Errorf("expected 3 duplicate matches, got %d (%v)", len(got), got)
	}
}

func TestSplitter_GreedyTokenSwallowsLaterPrefix(t *testing.T) {
	s := newDefaultSplitter(t)

	// A token is a maximal non-whitespace run, so a second prefix glued to
	// the first token belongs to it.
	result := s.Split("BM_access_aBM_access_b")

	got := []string(result.Get(model.CategoryAccess))
	if !reflect.DeepEqual(got, []string{"BM_access_aBM_access_b"}) {
		t.Errorf("expected a single greedy token, got %v", got)
	}
}

func TestSplitter_NoCrossSuppression(t *testing.T) {
	s := newDefaultSplitter(t)

	// The access token contains the insert prefix; both scans see it.
	result := s.Split("BM_access_xBM_insert_y")

	access := []string(result.Get(model.CategoryAccess))
	if !reflect.DeepEqual(access, []string{"BM_access_xBM_insert_y"}) {
		t.Errorf("unexpected access matches: %v", access)
	}

	insert := []string(result.Get(model.CategoryInsert))
	if !reflect.DeepEqual(insert, []string{"BM_insert_y"}) {
		t.Errorf("unexpected insert matches: %v", insert)
	}
}

func TestSplitter_MatchesAnywhere(t *testing.T) {
	s := newDefaultSplitter(t)

	result := s.Split("xxBM_reserve_vector,yy (BM_reserve_buffer)")

	got := []string(result.Get(model.CategoryReserve))
	want := []string{"BM_reserve_vector,yy", "BM_reserve_buffer)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplitter_PrefixIsLiteral(t *testing.T) {
	s, err := NewSplitter([]model.Category{{Name: "dot", Prefix: "a.b_"}})
	if err != nil {
		t.Fatalf("NewSplitter failed: %v", err)
	}

	result := s.Split("aXb_1 a.b_2")

	got := []string(result.Get("dot"))
	if !reflect.DeepEqual(got, []string{"a.b_2"}) {
		t.Errorf("expected prefix to be matched literally, got %v", got)
	}
}

// Every category's matches equal what an independent scan for that prefix
// finds, so the union over categories is the partitioned set of all matches.
func TestSplitter_UnionMatchesIndependentScans(t *testing.T) {
	s := newDefaultSplitter(t)

	content := strings.Join([]string{
		"BM_insert_middle/8 BM_find_buffer",
		"noise BM_reserve_vector\tBM_access_vector/16",
		"BM_construction_value_vector BM_push_buffer BM_insert_middle/8",
		"BM_access_bufferBM_find_x",
	}, "\n")

	result := s.Split(content)

	var fromSplit, fromScan []string
	for _, c := range model.DefaultCategories() {
		fromSplit = append(fromSplit, result.Get(c.Name)...)

		re := regexp.MustCompile(regexp.QuoteMeta(c.Prefix) + `\S+`)
		fromScan = append(fromScan, re.FindAllString(content, -1)...)
	}

	sort.Strings(fromSplit)
	sort.Strings(fromScan)
	if !reflect.DeepEqual(fromSplit, fromScan) {
		t.Errorf("expected %v, got %v", fromScan, fromSplit)
	}
	if result.Total() != len(fromScan) {
		t.Errorf("expected total %d, got %d", len(fromScan), result.Total())
	}
}

func TestSplitter_Deterministic(t *testing.T) {
	s := newDefaultSplitter(t)
	content := "BM_find_a BM_insert_b BM_find_c BM_reserve_d"

	first := s.Split(content)
	second := s.Split(content)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %v and %v", first, second)
	}
}

func TestNewSplitter_Errors(t *testing.T) {
	if _, err := NewSplitter(nil); !errors.Is(err, ErrNoCategories) {
		t.Errorf("expected ErrNoCategories, got %v", err)
	}

	if _, err := NewSplitter([]model.Category{{Name: "x"}}); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory for empty prefix, got %v", err)
	}

	if _, err := NewSplitter([]model.Category{{Prefix: "BM_x_"}}); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory for empty name, got %v", err)
	}

	dup := []model.Category{model.NewCategory("find"), model.NewCategory("find")}
	if _, err := NewSplitter(dup); !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestSplitter_CategoriesOrder(t *testing.T) {
	s := newDefaultSplitter(t)

	var names []string
	for _, c := range s.Categories() {
		names = append(names, c.Name)
	}

	want := []string{"access", "construction", "find", "insert", "reserve"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}
