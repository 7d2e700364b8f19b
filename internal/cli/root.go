package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/benchsplit/internal/model"
	"github.com/ppiankov/benchsplit/internal/pipeline"
)

const version = "benchsplit v0.1.0"

var (
	cfgFile    string
	verbose    bool
	outputDir  string
	createDirs bool
	maxBytes   int64
	noCache    bool
)

// rootCmd splits a benchmark log when called with <input> <date>
var rootCmd = &cobra.Command{
	Use:   "benchsplit <input> <date>",
	Short: "Benchsplit - split benchmark logs into per-category files",
	Long: `Benchsplit reads the output of a benchmark run and writes every
benchmark token of each category to its own file.

Tokens are runs of non-whitespace characters starting with a category
prefix (BM_access_, BM_construction_, BM_find_, BM_insert_, BM_reserve_).
For each category the matches are written, one per line and in the order
they appear, to <category>/<category>_data<date>.txt. Existing files are
overwritten. The category directories must already exist.

The date label is used verbatim in the file name, except that labels
containing a path separator are rejected.

Flags go before <input>: everything after the input file is taken
literally, so a date such as -1 needs no quoting. An input file named
like a subcommand (version, config, batch, ...) must be written as
./version, or placed after --.

Example:
  benchsplit results.txt 2024-01-31
  benchsplit --output-dir ./output results.txt 2024-01-31
  benchsplit -- version 2024-01-31
  benchsplit batch nightly.txt`,
	Args:          usageArgs,
	RunE:          runSplit,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// helpCmd replaces cobra's default help command, which accepts any
// argument and exits 0 on unknown topics
var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Help about benchsplit (use <command> --help for subcommands)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Root().Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.benchsplit/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&outputDir, "output-dir", ".", "root directory holding one subdirectory per category")
	flags.BoolVar(&createDirs, "create-dirs", false, "create missing category directories")
	flags.Int64Var(&maxBytes, "max-bytes", 0, "max input bytes to read (0 = unlimited)")
	flags.BoolVar(&noCache, "no-cache", false, "disable split memoization")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("output.dir", flags.Lookup("output-dir"))
	_ = viper.BindPFlag("output.create_dirs", flags.Lookup("create-dirs"))
	_ = viper.BindPFlag("input.max_bytes", flags.Lookup("max-bytes"))

	// <input> <date> are positional; stop flag parsing at the input so a
	// date like -1 stays a date
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.benchsplit")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match BENCHSPLIT_*
	viper.SetEnvPrefix("BENCHSPLIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// usageArgs requires exactly <input> <date>; anything else prints the
// usage line on stdout and fails without touching any file.
func usageArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 2 {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), usageLine)
	return &UsageError{
		Message:  fmt.Sprintf("expected 2 arguments, got %d", len(args)),
		ExitCode: ExitUsage,
	}
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}

	return splitFile(cmd.Context(), cfg, args[0], args[1])
}

// splitFile runs the pipeline once and reports progress when verbose
func splitFile(ctx context.Context, cfg *model.Config, input, date string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Splitting: %s\n", input)
		fmt.Fprintf(os.Stderr, "Date:      %s\n", date)
		fmt.Fprintf(os.Stderr, "Output:    %s\n", cfg.Output.Dir)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, input, date)
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	if cfg.Output.Verbose {
		for _, a := range result.Artifacts {
			fmt.Fprintf(os.Stderr, "✓ %-13s %4d entries -> %s\n", a.Category, a.Entries, a.Path)
		}
		fmt.Fprintf(os.Stderr, "✓ %d tokens total\n", result.Split.Total())
	}

	return nil
}
