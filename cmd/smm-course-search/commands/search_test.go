package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"smm-course-search/cmd/smm-course-search/globals"
	"smm-course-search/internal/components/telemetry"
	"smm-course-search/internal/query"

	"github.com/stretchr/testify/require"
)

func setFilters(t *testing.T, values map[query.Category]string) {
	for category, value := range searchFilters {
		*value = values[category]
	}
	t.Cleanup(func() {
		for _, value := range searchFilters {
			*value = ""
		}
	})
}

func TestSpecFromFlags(t *testing.T) {
	setFilters(t, map[query.Category]string{
		query.Region: "us",
		query.SortBy: "mostRecent",
	})

	spec, err := specFromFlags(query.Spec{})
	require.NoError(t, err)
	require.Equal(t, query.Spec{query.Region: "us", query.SortBy: "mostRecent"}, spec)
}

func TestSpecFromFlagsSuggestion(t *testing.T) {
	setFilters(t, map[query.Category]string{query.SortBy: "mostrecent"})

	_, err := specFromFlags(nil)
	require.ErrorContains(t, err, "--sort")
	require.ErrorContains(t, err, "mostRecent")
}

func TestEveryCategoryHasAFlag(t *testing.T) {
	for _, category := range query.Categories() {
		name, ok := flagNames[category]
		require.True(t, ok, category)
		require.NotNil(t, searchCmd.Flags().Lookup(name), name)
	}
}

func TestSpecFromFlagsOverridesQuery(t *testing.T) {
	setFilters(t, map[query.Category]string{query.Region: "eu"})

	tel := &telemetry.RecordingAPI{}
	base, err := parseQuery(query.NewTranslator(query.DefaultBaseUrl, tel), `{
		// comments and unquoted keys are fine
		region: "jp",
		sortBy: "mostRecent",
		colour: "red",
	}`)
	require.NoError(t, err)
	require.Len(t, tel.Reports("warning"), 1)

	spec, err := specFromFlags(base)
	require.NoError(t, err)
	require.Equal(t, query.Spec{query.Region: "eu", query.SortBy: "mostRecent"}, spec)
}

func TestParseQuery(t *testing.T) {
	translator := query.NewTranslator(query.DefaultBaseUrl, &telemetry.RecordingAPI{})

	spec, err := parseQuery(translator, "")
	require.NoError(t, err)
	require.Empty(t, spec)

	_, err = parseQuery(translator, `{region: `)
	require.ErrorContains(t, err, "--query")

	_, err = parseQuery(translator, `["us"]`)
	require.Error(t, err)
}

func resetPageFlags(t *testing.T) {
	t.Cleanup(func() {
		searchFirst, searchLast, searchAll = 1, 1, false
		for _, name := range []string{"first", "last", "all"} {
			searchCmd.Flags().Lookup(name).Changed = false
		}
	})
}

func TestPageRange(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		first int
		last  int
	}{
		{name: "defaults", args: nil, first: 1, last: 1},
		{name: "last follows first", args: []string{"--first", "3"}, first: 3, last: 3},
		{name: "explicit range", args: []string{"--first", "2", "--last", "5"}, first: 2, last: 5},
		{name: "all", args: []string{"--first", "4", "--all"}, first: 4, last: 0},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			resetPageFlags(t)
			require.NoError(t, searchCmd.ParseFlags(test.args))

			first, last := pageRange(searchCmd)
			require.Equal(t, test.first, first)
			require.Equal(t, test.last, last)
		})
	}
}

const decodeCard = `<div class="course-list search-results">
<div class="course-card">
  <div class="course-header">Easy<div></div><div class="clear-rate"><div class="typography typography-5"></div></div></div>
  <div class="course-info">
    <div><div class="course-title">Title</div></div>
    <div>
      <a><img src="/thumb.jpg"></a>
      <div><div class="gameskin common_gs_sb"></div><div>1 day ago</div></div>
      <div>Speedrun</div>
      <div><div></div><div></div><div></div></div>
      <div><div class="typography typography-1"></div><div class="typography typography-slash"></div><div class="typography typography-2"></div></div>
    </div>
    <div><img src="/full.jpg"></div>
    <div><div></div><div></div><a href="/courses/AAAA-0000-1111-2222">Show Details</a></div>
  </div>
</div>
</div>`

func executeDecode(t *testing.T, args ...string) (string, error) {
	t.Cleanup(func() {
		decodeNow, decodeIds, searchJson = "", false, false
	})

	tel := &telemetry.RecordingAPI{}
	ctx := globals.Set(context.Background(), &globals.Value{
		Translator: query.NewTranslator(query.DefaultBaseUrl, tel),
		Tel:        tel,
	})

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	t.Cleanup(func() { RootCmd.SetOut(nil) })
	RootCmd.SetArgs(append([]string{"decode"}, args...))
	_, err := RootCmd.ExecuteContextC(ctx)
	return out.String(), err
}

func TestDecodeIds(t *testing.T) {
	page := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(page, []byte(decodeCard), 0600))

	out, err := executeDecode(t, "--ids", "--now", "2017-09-24T12:00:00Z", page)
	require.NoError(t, err)
	require.Equal(t, []string{"AAAA-0000-1111-2222"}, strings.Fields(out))
}

func TestDecodeReturnsErrors(t *testing.T) {
	_, err := executeDecode(t, filepath.Join(t.TempDir(), "missing.html"))
	require.ErrorContains(t, err, "read result page")

	_, err = executeDecode(t, "--now", "yesterday", "page.html")
	require.ErrorContains(t, err, "parse --now")
}
