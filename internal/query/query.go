// Package query translates the friendly search filters into the parameters the
// course bookmark site's search endpoint expects.
package query

import (
	"fmt"
	"strings"

	"smm-course-search/internal/components/assert"
	"smm-course-search/internal/components/telemetry"
	"smm-course-search/lib/textutil"

	"github.com/antzucaro/matchr"
)

const DefaultBaseUrl = "https://supermariomakerbookmark.nintendo.net/search/"

const (
	report_translator_lookup     = "translator.lookup"
	report_translator_parse_spec = "translator.parse-spec"
)

// Category is one of the filter categories of a search.
type Category string

const (
	GameStyle   Category = "gameStyle"
	CourseTheme Category = "courseTheme"
	Region      Category = "region"
	Difficulty  Category = "difficulty"
	Tag         Category = "tag"
	UploadDate  Category = "uploadDate"
	SortBy      Category = "sortBy"
)

// All is the wildcard value of every category.
const All = "all"

// table maps friendly values to site codes by position.
type table struct {
	key      string
	friendly []string
	codes    []string
}

// order of the parameters in the query string
var categories = []Category{GameStyle, CourseTheme, Region, Difficulty, Tag, UploadDate, SortBy}

var tables = map[Category]table{
	GameStyle: {
		key:      "skin",
		friendly: []string{All, "marioBros", "marioBros3", "marioWorld", "marioBrosU"},
		codes:    []string{"", "mario_bros", "mario_bros3", "mario_world", "mario_bros_u"},
	},
	CourseTheme: {
		key:      "scene",
		friendly: []string{All, "ground", "underground", "underwater", "ghostHouse", "airship", "castle"},
		codes:    []string{"", "ground", "underground", "underwater", "gohst_house", "airship", "castle"},
	},
	Region: {
		key:      "area",
		friendly: []string{All, "jp", "us", "eu", "other"},
		codes:    []string{"", "jp", "us", "eu", "others"},
	},
	Difficulty: {
		key:      "difficulty",
		friendly: []string{All, "easy", "normal", "expert", "superExpert"},
		codes:    []string{"", "easy", "normal", "expert", "super_expert"},
	},
	Tag: {
		key: "tag_id",
		friendly: []string{
			All, "automatic", "music", "puzzle", "gimmick", "dash",
			"remix", "thumbnail", "costume", "yoshi", "theme", "speedrun",
			"autoscroll", "shootEmUp", "track", "tradicional",
		},
		codes: []string{"", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14", "15"},
	},
	UploadDate: {
		key:      "created_at",
		friendly: []string{All, "pastDay", "pastWeek", "pastMonth", "beforeOneMonth"},
		codes:    []string{"", "past_day", "past_week", "past_month", "before_one_month"},
	},
	SortBy: {
		key:      "sorting_item",
		friendly: []string{All, "starRate", "totalStars", "lowestClearRate", "timesShared", "mostRecent"},
		codes:    []string{"", "like_rate_desc", "liked_count_desc", "clear_rate_asc", "sns_shared_count_desc", "created_at_desc"},
	},
}

// Spec is a selection of one friendly value per category, categories that are
// not present are treated as All.
type Spec map[Category]string

// Categories returns every category in query string order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Key returns the name of the query parameter of the category.
func Key(category Category) string {
	return tables[category].key
}

// Values lists the friendly values accepted by a category, All first.
func Values(category Category) []string {
	return append([]string(nil), tables[category].friendly...)
}

// Code returns the site code of a friendly value, values that are not part of
// the category's vocabulary map to the wildcard.
func Code(category Category, value string) (string, bool) {
	t, ok := tables[category]
	if !ok {
		return "", false
	}
	for i, friendly := range t.friendly {
		if friendly == value {
			return t.codes[i], true
		}
	}
	return "", false
}

// Suggest returns the friendly value of the category that is closest to `value`.
func Suggest(category Category, value string) (string, bool) {
	t, ok := tables[category]
	if !ok || value == "" {
		return "", false
	}

	normalized := textutil.NormalizeName(value)
	best := ""
	bestSimilarity := 0.0
	for _, friendly := range t.friendly {
		similarity := matchr.JaroWinkler(normalized, textutil.NormalizeName(friendly), false)
		if similarity > bestSimilarity {
			best = friendly
			bestSimilarity = similarity
		}
	}
	if bestSimilarity < 0.7 {
		return "", false
	}
	return best, true
}

// Translator builds search result urls.
type Translator struct {
	baseUrl string
	tel     telemetry.API
}

func NewTranslator(baseUrl string, tel telemetry.API) Translator {
	assert.NotEmptyStr(baseUrl)
	assert.NotNil(tel)
	if !strings.HasSuffix(baseUrl, "/") {
		baseUrl += "/"
	}
	return Translator{
		baseUrl: baseUrl,
		tel:     telemetry.NewScopedAPI("query", tel),
	}
}

func (t Translator) code(category Category, value string) string {
	if value == "" {
		return ""
	}
	code, ok := Code(category, value)
	if ok {
		return code
	}
	if suggestion, ok := Suggest(category, value); ok {
		t.tel.ReportWarning(
			report_translator_lookup,
			fmt.Errorf("unknown %s '%s', did you mean '%s'?", category, value, suggestion),
		)
	} else {
		t.tel.ReportWarning(
			report_translator_lookup,
			fmt.Errorf("unknown %s '%s'", category, value),
		)
	}
	return ""
}

// Query assembles the query string of a result page, every category is always
// present and in a fixed order.
func (t Translator) Query(spec Spec, page int) string {
	assert.Positive(page)

	var b strings.Builder
	b.WriteString("utf8=%E2%9C%93&")
	for _, category := range categories {
		fmt.Fprintf(&b, "q[%s]=%s&", tables[category].key, t.code(category, spec[category]))
	}
	fmt.Fprintf(&b, "page=%d", page)
	return b.String()
}

// Url returns the link of the given result page.
func (t Translator) Url(spec Spec, page int) string {
	return t.baseUrl + "result?" + t.Query(spec, page)
}

// ParseSpec reads a spec out of friendly category names, unknown categories are
// reported and ignored.
func (t Translator) ParseSpec(raw map[string]string) Spec {
	spec := Spec{}
	for name, value := range raw {
		category := Category(name)
		if _, ok := tables[category]; !ok {
			t.tel.ReportWarning(report_translator_parse_spec, fmt.Errorf("unknown category '%s'", name))
			continue
		}
		spec[category] = value
	}
	return spec
}
