package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evsizer/core/reftable"
	"github.com/kilianp07/evsizer/infra/workbook"
	"github.com/kilianp07/evsizer/qa/scenarios"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios [path...]",
	Short: "Run sizing scenarios against inline rows or the reference workbook",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	scs, err := scenarios.LoadAll(args...)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}
	var fallback reftable.Accessor
	if cfg.Reference.Source != "" {
		table, _, err := workbook.Load(cmd.Context(), cfg.Reference)
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		fallback = table
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range scenarios.RunAll(scs, fallback) {
		if r.Passed() {
			fmt.Fprintf(out, "PASS %s\n", r.Name)
			continue
		}
		failed++
		fmt.Fprintf(out, "FAIL %s\n", r.Name)
		if r.Err != nil {
			fmt.Fprintf(out, "    %v\n", r.Err)
		}
		for _, f := range r.Failures {
			fmt.Fprintf(out, "    %s\n", f)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scs))
	}
	return nil
}
