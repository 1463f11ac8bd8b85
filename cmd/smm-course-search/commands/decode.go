package commands

import (
	"fmt"
	"os"
	"time"

	"smm-course-search/cmd/smm-course-search/globals"
	"smm-course-search/internal/components/chrono"
	"smm-course-search/internal/courses"
	"smm-course-search/internal/search"

	"github.com/spf13/cobra"
)

var (
	decodeNow string
	decodeIds bool
)

func init() {
	decodeCmd.Flags().StringVar(&decodeNow, "now", "", "RFC 3339 instant relative dates are resolved against (defaults to the current time)")
	decodeCmd.Flags().BoolVar(&searchJson, "json", false, "print the courses as json")
	decodeCmd.Flags().BoolVar(&decodeIds, "ids", false, "only print the course ids")
}

var decodeCmd = &cobra.Command{
	Use:   "decode <result page.html>",
	Short: "Extract the courses of a result page saved to disk.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := globals.Get(cmd.Context())

		var clock chrono.TimeAPI = chrono.NewStandardTime()
		if decodeNow != "" {
			instant, err := time.Parse(time.RFC3339, decodeNow)
			if err != nil {
				return fmt.Errorf("parse --now: %w", err)
			}
			clock = chrono.NewFixedTime(instant)
		}

		body, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read result page: %w", err)
		}
		decoder := courses.NewDecoder(clock, ctx.Tel)

		if decodeIds {
			ids, err := search.ExtractPageIds(decoder, body)
			if err != nil {
				return fmt.Errorf("extract result page: %w", err)
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}

		found, _, err := search.ExtractPage(decoder, body)
		if err != nil {
			return fmt.Errorf("extract result page: %w", err)
		}
		return printCourses(found)
	},
}
