package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formblock/pkg/decorator"
)

func newFieldsCmd(state *app) *cobra.Command {
	var (
		fragmentPath string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the bindable controls of a fragment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fragment, err := readFragment(fragmentPath)
			if err != nil {
				return err
			}
			fields, err := state.decorator().Inspect(fragment)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(fields)
			}
			return writeFieldTable(cmd, fields)
		},
	}

	cmd.Flags().StringVar(&fragmentPath, "fragment", "", "form fragment file (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print fields as JSON")
	return cmd
}

func writeFieldTable(cmd *cobra.Command, fields []decorator.Field) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tKEY\tNAME\tID\tOPTIONS\tSKIPPED")
	for _, field := range fields {
		skipped := ""
		if field.Skipped {
			skipped = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			field.Kind,
			dash(field.Key),
			dash(field.Name),
			dash(field.ID),
			dash(strings.Join(field.Options, ",")),
			skipped,
		)
	}
	return w.Flush()
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
