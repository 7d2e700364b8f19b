package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/benchsplit/internal/pipeline"
)

// categoriesCmd lists the configured categories and where they are written
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List benchmark categories",
	Long: `List the benchmark categories, their token prefixes and the file each
category is written to for a given date (default: <date>).

Example:
  benchsplit categories
  benchsplit categories --date 2024-01-31`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		date, _ := cmd.Flags().GetString("date")
		out := cmd.OutOrStdout()
		for _, c := range cfg.Categories {
			fmt.Fprintf(out, "%-14s %-20s %s\n", c.Name, c.Prefix, pipeline.ArtifactPath(cfg.Output.Dir, c.Name, date))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().String("date", "<date>", "date label used to render output paths")
}
