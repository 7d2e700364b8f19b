package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/benchsplit/internal/pipeline"
)

var (
	// ErrManifestSyntax is returned for manifest lines that are not "<input> <date>"
	ErrManifestSyntax = errors.New("manifest syntax error")
	// ErrDateConflict is returned when two different inputs share a date label
	ErrDateConflict = errors.New("date used by more than one input")
	// errNotProcessed marks entries that never ran because the batch was canceled
	errNotProcessed = errors.New("not processed")
)

// Runner splits one benchmark log into dated category files
type Runner interface {
	Run(ctx context.Context, inputPath, date string) (*pipeline.RunResult, error)
}

// Entry is one manifest line
type Entry struct {
	Input string
	Date  string
	Line  int
}

// RunJob runs the pipeline for one entry
type RunJob struct {
	index  int
	Entry  Entry
	Runner Runner
}

// Index returns the job's position in the manifest
func (j *RunJob) Index() int {
	return j.index
}

// Execute executes the run job
func (j *RunJob) Execute(ctx context.Context) Result {
	result, err := j.Runner.Run(ctx, j.Entry.Input, j.Entry.Date)
	return &RunResult{
		index:  j.index,
		Entry:  j.Entry,
		Result: result,
		Error:  err,
	}
}

// RunResult is the outcome of one manifest entry
type RunResult struct {
	index  int
	Entry  Entry
	Result *pipeline.RunResult
	Error  error
}

// Index returns the entry's position in the manifest
func (r *RunResult) Index() int {
	return r.index
}

// GetError returns the error from the run
func (r *RunResult) GetError() error {
	return r.Error
}

// BatchProcessor runs many manifest entries concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessEntries runs every entry and returns results in manifest order.
// Entries left unstarted when ctx ends carry the context error.
func (b *BatchProcessor) ProcessEntries(ctx context.Context, entries []Entry) []*RunResult {
	if len(entries) == 0 {
		return []*RunResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, entry := range entries {
			job := &RunJob{
				index:  i,
				Entry:  entry,
				Runner: b.runner,
			}
			if !pool.Submit(job) {
				return
			}
		}
	}()

	results := make([]*RunResult, len(entries))
	for res := range pool.Results() {
		r := res.(*RunResult)
		results[r.Index()] = r
	}

	for i, r := range results {
		if r != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = errNotProcessed
		}
		results[i] = &RunResult{index: i, Entry: entries[i], Error: err}
	}

	return results
}

// ProcessFile reads a manifest and processes its entries concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, manifestPath string) ([]*RunResult, error) {
	entries, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessEntries(ctx, entries), nil
}

// ReadManifest reads "<input> <date>" lines. Blank lines and # comments are
// skipped and repeated entries collapse into one.
func ReadManifest(filePath string) ([]Entry, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []Entry
	seen := make(map[Entry]bool)
	dates := make(map[string]string)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: expected \"<input> <date>\", got %q", ErrManifestSyntax, lineNo, line)
		}

		key := Entry{Input: fields[0], Date: fields[1]}
		if seen[key] {
			continue
		}
		if other, ok := dates[key.Date]; ok {
			return nil, fmt.Errorf("%w: line %d: date %q already used by %s", ErrDateConflict, lineNo, key.Date, other)
		}
		seen[key] = true
		dates[key.Date] = key.Input

		key.Line = lineNo
		entries = append(entries, key)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return entries, nil
}
