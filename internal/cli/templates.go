package cli

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spark-tools/viewport/internal/catalog"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the theme templates offered by create",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := catalog.All()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetBorder(false)
		table.SetHeader([]string{"ID", "Name", "Repository", "Sub path"})
		for _, t := range templates {
			sub := t.SubPath
			if sub == "" {
				sub = "-"
			}
			table.Append([]string{t.ID, t.Name, t.Repository, sub})
		}
		table.Render()
		return nil
	},
}
