package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/benchsplit/internal/cache"
	"github.com/ppiankov/benchsplit/internal/extract"
	"github.com/ppiankov/benchsplit/internal/model"
)

// Pipeline orchestrates read -> split -> write for one benchmark log
type Pipeline struct {
	reader   *Reader
	splitter *extract.Splitter
	writer   *Writer
	cache    cache.Cache // nil when caching is disabled
	cacheTTL time.Duration
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	splitter, err := extract.NewSplitter(cfg.Categories)
	if err != nil {
		return nil, fmt.Errorf("build splitter: %w", err)
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	return &Pipeline{
		reader:   NewReader(cfg.Input.MaxBytes),
		splitter: splitter,
		writer:   NewWriter(cfg.Output.Dir, cfg.Output.FileMode, cfg.Output.CreateDirs),
		cache:    c,
		cacheTTL: cfg.Cache.TTL,
	}, nil
}

// Categories returns the categories this pipeline writes, in order
func (p *Pipeline) Categories() []model.Category {
	return p.splitter.Categories()
}

// RunResult contains the outcome of one run
type RunResult struct {
	Input     string
	Date      string
	Split     *model.SplitResult
	Artifacts []model.Artifact
	Cached    bool // Split came from the cache
}

// SplitFile reads a log and splits it without writing anything
func (p *Pipeline) SplitFile(ctx context.Context, inputPath string) (*model.SplitResult, bool, error) {
	input, err := p.reader.Read(ctx, inputPath)
	if err != nil {
		return nil, false, err
	}

	result, cached := p.split(input.Content)
	return result, cached, nil
}

// Run reads inputPath, splits it and writes one file per category.
// The input is read completely before any output is touched. A write
// failure aborts the run; files written before it are left in place.
func (p *Pipeline) Run(ctx context.Context, inputPath, date string) (*RunResult, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	split, cached, err := p.SplitFile(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	artifacts := make([]model.Artifact, 0, len(split.Categories))
	for _, c := range split.Categories {
		artifact, err := p.writer.Write(ctx, c.Name, date, split.Get(c.Name))
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", c.Name, err)
		}
		artifacts = append(artifacts, *artifact)
	}

	return &RunResult{
		Input:     inputPath,
		Date:      date,
		Split:     split,
		Artifacts: artifacts,
		Cached:    cached,
	}, nil
}

func (p *Pipeline) split(content string) (*model.SplitResult, bool) {
	if p.cache == nil {
		return p.splitter.Split(content), false
	}

	key := cache.CacheKey(content)
	if result, found := p.cache.Get(key); found {
		return result, true
	}

	result := p.splitter.Split(content)
	_ = p.cache.Set(key, result, p.cacheTTL)
	return result, false
}
