package commands

import (
	"strings"

	"smm-course-search/cmd/smm-course-search/utils"
	"smm-course-search/internal/query"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "List every search filter and the values it accepts.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		t := utils.NewTable()
		t.AppendHeader(table.Row{"Filter", "Flag", "Parameter", "Values"})
		for _, category := range query.Categories() {
			t.AppendRow(table.Row{
				category,
				"--" + flagNames[category],
				query.Key(category),
				strings.Join(query.Values(category), ", "),
			})
		}
		t.Render()
	},
}
