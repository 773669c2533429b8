package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backfill-labs/backfill/internal/config"
	"github.com/backfill-labs/backfill/internal/manifest"
	"github.com/backfill-labs/backfill/pkg/engine"
	"github.com/backfill-labs/backfill/pkg/registry"
)

var planHostVersion string

func init() {
	planCmd.Flags().StringVar(&planHostVersion, "host-version", "", "Host release to plan against (default: config host_version)")
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan <catalog.yaml>",
	Short: "Compute install plans for every declaration in a catalog",
	Long: `Compute, without installing anything, the decision the engine would make
for each declaration in a catalog file against a given host release:
skip, install now, install behind a guard re-check, or defer until an
external unit loads.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		host := planHostVersion
		if host == "" {
			host = config.Get(config.KeyHostVersion)
		}
		if host == "" {
			return fmt.Errorf("no host version: pass --host-version or set the %s config key", config.KeyHostVersion)
		}

		f, err := manifest.Parse(args[0])
		if err != nil {
			return err
		}
		if err := f.CheckRequires(buildVersion); err != nil {
			return err
		}

		catalog, err := f.Catalog()
		if err != nil {
			return fmt.Errorf("building catalog %s: %w", f.Name, err)
		}

		e, err := engine.New(host, registry.NewTable(), nil, logger)
		if err != nil {
			return err
		}
		plans, err := e.PlanAll(catalog)
		if err != nil {
			return err
		}

		printPlans(cmd.OutOrStdout(), f.Name, host, plans)
		return nil
	},
}

// printPlans lists every plan and a summary count per action.
func printPlans(w io.Writer, name, host string, plans []*engine.Plan) {
	fmt.Fprintf(w, "Planning catalog %s against host %s...\n\n", name, host)

	counts := make(map[engine.Action]int)
	for _, p := range plans {
		counts[p.Action]++
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintln(w)

	installs := counts[engine.ActionInstallNow] + counts[engine.ActionInstallGuarded] + counts[engine.ActionInstallDeferred]
	var parts []string
	if n := counts[engine.ActionInstallNow]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d now", n))
	}
	if n := counts[engine.ActionInstallGuarded]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d guarded", n))
	}
	if n := counts[engine.ActionInstallDeferred]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d deferred", n))
	}

	if installs == 0 {
		fmt.Fprintf(w, "  Nothing to install (%d declarations, all skipped)\n", len(plans))
		return
	}
	fmt.Fprintf(w, "  Install: %s (%d declarations, %d skipped)\n",
		strings.Join(parts, ", "), len(plans), counts[engine.ActionSkip])
}
