package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/numerology"
)

func deriveCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "derive [name] [birth-date]",
		Short: "Print the sign and numerology figures for a name and birth date",
		Example: `  comboctl derive "Ana Souza" 1990-05-15
  comboctl derive "Ana Souza" 15/05/1990 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := numerology.Derive(args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			fmt.Fprintf(out, "name:        %s\n", r.Name)
			fmt.Fprintf(out, "birth date:  %s\n", r.BirthDateString())
			fmt.Fprintf(out, "sign:        %s\n", r.Sign)
			fmt.Fprintf(out, "name number: %d\n", r.NameNumber)
			fmt.Fprintf(out, "date number: %d\n", r.DateNumber)
			fmt.Fprintf(out, "destiny:     %d\n", r.Pythagorean.Destiny)
			fmt.Fprintf(out, "expression:  %d\n", r.Pythagorean.Expression)
			fmt.Fprintf(out, "soul:        %d\n", r.Pythagorean.Soul)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}
