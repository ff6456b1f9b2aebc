package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evsizer/core/sizing"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List authorities, charger classes and wiring methods",
	RunE: func(cmd *cobra.Command, args []string) error {
		if catalogJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sizing.FullCatalog())
		}
		return printCatalog(cmd.OutOrStdout(), sizing.FullCatalog())
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print the catalog as JSON")
	rootCmd.AddCommand(catalogCmd)
}

func printCatalog(out io.Writer, c sizing.StationCatalog) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Authorities:\t%v\n", c.Authorities)
	fmt.Fprintf(w, "Modes:\t%v\n", c.Modes)
	fmt.Fprintln(w, "\nCHARGER\tKW")
	for _, e := range c.Chargers {
		fmt.Fprintf(w, "%s\t%g\n", e.Label, e.RatingKW)
	}
	fmt.Fprintln(w, "\nTR METHOD\tLABEL")
	for _, m := range c.TRWiringMethods {
		fmt.Fprintf(w, "%s\t%s\n", m.Key, m.Label)
	}
	fmt.Fprintln(w, "\nMDB METHOD\tLABEL")
	for _, m := range c.MDBWiringMethods {
		fmt.Fprintf(w, "%s\t%s\n", m.Key, m.Label)
	}
	return w.Flush()
}
