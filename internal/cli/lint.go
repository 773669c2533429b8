package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/backfill-labs/backfill/internal/manifest"
)

var lintPrinter = message.NewPrinter(language.English)

func init() {
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint <catalog.yaml>",
	Short: "Validate a catalog file",
	Long: `Validate a catalog file against the catalog schema, check every
declaration's invariants (naming, version ranges, strategies), and verify
the engine-release constraint.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()

		result, err := manifest.ValidateFile(path)
		if err != nil {
			return err
		}
		if !result.Valid {
			for _, issue := range result.Issues {
				if issue.Path != "" {
					fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Message)
				} else {
					fmt.Fprintf(out, "  %s\n", issue.Message)
				}
			}
			return fmt.Errorf("%s: %d schema violation(s)", path, len(result.Issues))
		}

		f, err := manifest.Parse(path)
		if err != nil {
			return err
		}
		if err := f.CheckRequires(buildVersion); err != nil {
			return err
		}
		if _, err := f.Catalog(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		lintPrinter.Fprintf(out, "%s: OK (%d declarations)\n", path, len(f.Declarations))
		return nil
	},
}
