package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"smm-course-search/cmd/smm-course-search/globals"
	"smm-course-search/cmd/smm-course-search/utils"
	"smm-course-search/internal/courses"
	"smm-course-search/internal/query"
	"smm-course-search/internal/search"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/titanous/json5"
)

var flagNames = map[query.Category]string{
	query.GameStyle:   "game-style",
	query.CourseTheme: "theme",
	query.Region:      "region",
	query.Difficulty:  "difficulty",
	query.Tag:         "tag",
	query.UploadDate:  "upload-date",
	query.SortBy:      "sort",
}

var (
	searchFirst   int
	searchLast    int
	searchAll     bool
	searchJson    bool
	searchQuery   string
	searchFilters = map[query.Category]*string{}
)

func init() {
	searchCmd.Flags().IntVar(&searchFirst, "first", 1, "first page to request")
	searchCmd.Flags().IntVar(&searchLast, "last", 1, "last page to request (defaults to --first)")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "request pages until one of them has no courses")
	searchCmd.Flags().BoolVar(&searchJson, "json", false, "print the courses as json")
	searchCmd.Flags().StringVar(&searchQuery, "query", "", `json5 object of filters, e.g. '{region: "us", sortBy: "mostRecent"}'`)
	searchCmd.MarkFlagsMutuallyExclusive("last", "all")

	for _, category := range query.Categories() {
		value := new(string)
		searchFilters[category] = value
		searchCmd.Flags().StringVar(
			value,
			flagNames[category],
			"",
			fmt.Sprintf("filter by %s (see the 'filters' command)", category),
		)
	}
}

// parseQuery reads the --query object, unknown categories are reported and dropped
// and unknown values fall back to the wildcard when the query is translated.
func parseQuery(translator query.Translator, raw string) (query.Spec, error) {
	if raw == "" {
		return query.Spec{}, nil
	}
	var fields map[string]string
	err := json5.Unmarshal([]byte(raw), &fields)
	if err != nil {
		return nil, fmt.Errorf("parse --query: %w", err)
	}
	return translator.ParseSpec(fields), nil
}

// specFromFlags rejects unknown values instead of letting them fall back to
// the wildcard, a typo on the command line should not widen the search.
// Filter flags take precedence over the fields of the base spec.
func specFromFlags(base query.Spec) (query.Spec, error) {
	spec := query.Spec{}
	for category, value := range base {
		spec[category] = value
	}
	for category, value := range searchFilters {
		if *value == "" {
			continue
		}
		if _, ok := query.Code(category, *value); !ok {
			if suggestion, ok := query.Suggest(category, *value); ok {
				return nil, fmt.Errorf("unknown value '%s' for --%s, did you mean '%s'?", *value, flagNames[category], suggestion)
			}
			return nil, fmt.Errorf("unknown value '%s' for --%s", *value, flagNames[category])
		}
		spec[category] = *value
	}
	return spec, nil
}

// pageRange resolves the requested pages, 0 as last page means "until a page is empty".
func pageRange(cmd *cobra.Command) (first, last int) {
	switch {
	case searchAll:
		return searchFirst, 0
	case !cmd.Flags().Changed("last"):
		return searchFirst, searchFirst
	}
	return searchFirst, searchLast
}

func printCourses(found []courses.Course) error {
	if searchJson {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		err := encoder.Encode(found)
		if err != nil {
			return fmt.Errorf("encode courses: %w", err)
		}
		return nil
	}

	t := utils.NewTable()
	t.AppendHeader(table.Row{
		"ID", "Title", "Difficulty", "Clear rate", "Style", "Tag",
		"Stars", "Plays", "Clears", "Maker", "Created",
	})
	for _, c := range found {
		t.AppendRow(table.Row{
			c.ID,
			c.Title,
			c.Difficulty,
			fmt.Sprintf("%.2f%%", c.ClearRate),
			c.GameStyle.Or(courses.Undefined),
			c.Tag.Or(courses.NoTag),
			c.Stars,
			c.Plays,
			fmt.Sprintf("%d/%d", c.Clears, c.Attempts),
			c.Maker.Name.Or(courses.Undefined),
			c.CreatedAt.Format(courses.CreatedAtLayout),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "", "", "total", len(found)})
	t.Render()
	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search courses, page by page.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := globals.Get(cmd.Context())

		base, err := parseQuery(ctx.Translator, searchQuery)
		if err != nil {
			return err
		}
		spec, err := specFromFlags(base)
		if err != nil {
			return err
		}

		first, last := pageRange(cmd)
		found, err := ctx.Searcher.Pages(cmd.Context(), spec, first, last, func(pr search.PageResult) {
			slog.Info("page", "page", pr.Page, "count", pr.Count, "total", len(pr.Courses))
		})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		return printCourses(found)
	},
}
