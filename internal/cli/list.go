package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions, s streams) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List available project templates",
		Long:  `List the templates from every source. A template id found in several sources is shown once, from the first source.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := newCatalog(opts, newLogger(opts, s))
			summaries, err := cat.List()
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(summaries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling template list: %w", err)
				}
				_, err = fmt.Fprintln(s.out, string(data))
				return err
			}

			if len(summaries) == 0 {
				fmt.Fprintln(s.out, "No templates available.")
				return nil
			}

			w := tabwriter.NewWriter(s.out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSOURCE\tVARS\tDESCRIPTION")
			for _, t := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", t.ID, t.DisplayName, t.Source, t.Variables, t.Description)
			}
			return w.Flush()
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return c
}
