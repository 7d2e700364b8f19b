package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/benchsplit/internal/pipeline"
	"github.com/ppiankov/benchsplit/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Split several benchmark logs listed in a manifest",
	Long: `Batch splits many benchmark logs concurrently:
- Read "<input> <date>" pairs from the manifest (one per line, # comments)
- Process entries in parallel with a configurable worker count
- Write the usual per-category files for every entry

Two entries may not share a date, since their outputs would collide.

Example:
  benchsplit batch nightly.txt
  benchsplit batch nightly.txt --concurrency 8 --output-dir ./output`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	_ = viper.BindPFlag("concurrency.workers", batchCmd.Flags().Lookup("concurrency"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Benchsplit Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Manifest:     %s\n", manifest)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.Output.Dir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, manifest)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	failureCount := reportBatch(results, cfg.Output.Verbose)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d entries\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(results)-failureCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d entries failed", failureCount, len(results))
	}
	return nil
}

// reportBatch prints one line per entry and returns the failure count
func reportBatch(results []*worker.RunResult, verbose bool) int {
	failures := 0
	for _, r := range results {
		if r.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s (%s): %v\n", r.Entry.Input, r.Entry.Date, r.Error)
			continue
		}

		suffix := ""
		if verbose && r.Result.Cached {
			suffix = " [cached]"
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%s): %d tokens%s\n", r.Entry.Input, r.Entry.Date, r.Result.Split.Total(), suffix)
	}
	return failures
}
