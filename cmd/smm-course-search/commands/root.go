package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:           "smm-course-search",
	Short:         "smm-course-search searches the courses published on the Super Mario Maker bookmark site.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(filtersCmd)
	RootCmd.AddCommand(decodeCmd)
}

func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}
