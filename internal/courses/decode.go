package courses

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"smm-course-search/internal/components/assert"
	"smm-course-search/internal/components/chrono"
	"smm-course-search/internal/components/telemetry"
	"smm-course-search/internal/markup"
	"smm-course-search/internal/typography"
	"smm-course-search/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_decoder_decode_course = "decoder.decode-course"
	report_decoder_game_style    = "decoder.game-style"
)

var (
	courseCardRegex   = regexp.MustCompile(`(?:)course-card(?: |$)`)
	courseHeaderRegex = regexp.MustCompile(`^\s*course-header`)
	courseInfoRegex   = regexp.MustCompile(`^\s*course-info`)
	gameStyleRegex    = regexp.MustCompile(`(?:^| )common_gs_([A-Za-z0-9]+)(?: |$)`)
	superExpertRegex  = regexp.MustCompile(`^\s*super\s*expert`)
)

var gameStyles = map[string]string{
	"sb":  "marioBros",
	"sb3": "marioBros3",
	"sw":  "marioWorld",
	"sbu": "marioBrosU",
}

// GameStyle maps the site's short game style code to its friendly name.
func GameStyle(code string) (string, bool) {
	style, ok := gameStyles[code]
	return style, ok
}

// NormalizeDifficulty lowercases the header label, any variation of
// "super expert" becomes DifficultySuperExpert.
func NormalizeDifficulty(label string) Difficulty {
	lowered := strings.ToLower(label)
	if superExpertRegex.MatchString(lowered) {
		return DifficultySuperExpert
	}
	return Difficulty(textutil.CollapseSpace(lowered))
}

// IsCourseCard reports whether the element is the container of a single course.
func IsCourseCard(sel *goquery.Selection) bool {
	class, ok := sel.Attr("class")
	return ok && courseCardRegex.MatchString(class)
}

// Decoder turns course cards into courses.
type Decoder struct {
	time chrono.TimeAPI
	tel  telemetry.API
}

func NewDecoder(time chrono.TimeAPI, tel telemetry.API) Decoder {
	assert.NotNil(time)
	assert.NotNil(tel)
	return Decoder{
		time: time,
		tel:  telemetry.NewScopedAPI("courses", tel),
	}
}

// Result is the outcome of decoding one course card, either Course is set or Err
// explains why the card was skipped.
type Result struct {
	Course Course
	Err    error
}

func cards(container *goquery.Selection) *goquery.Selection {
	return container.Children().FilterFunction(func(_ int, child *goquery.Selection) bool {
		return IsCourseCard(child)
	})
}

// ExtractResults decodes every course card directly under the container, in document order.
func (d Decoder) ExtractResults(container *goquery.Selection) []Result {
	var results []Result
	if container == nil {
		return nil
	}
	cards(container).Each(func(_ int, card *goquery.Selection) {
		course, err := d.Decode(card)
		results = append(results, Result{Course: course, Err: err})
	})
	return results
}

// Ids returns the course id of every card directly under the container, in
// document order. Only the course link is read, cards without one are skipped.
func (d Decoder) Ids(container *goquery.Selection) []string {
	var ids []string
	if container == nil {
		return nil
	}
	cards(container).Each(func(i int, card *goquery.Selection) {
		info := findRegion(card, courseInfoRegex)
		href, ok := markup.Slot(info, 3, 2).Attr("href")
		id := courseIdFromLink(href)
		if !ok || id == "" {
			d.tel.ReportWarning(report_decoder_decode_course, missing("course link"), i)
			return
		}
		ids = append(ids, id)
	})
	return ids
}

// Extract decodes every course card directly under the container, cards that
// cannot be decoded are reported and left out.
func (d Decoder) Extract(container *goquery.Selection) []Course {
	var out []Course
	for i, result := range d.ExtractResults(container) {
		if result.Err != nil {
			d.tel.ReportWarning(report_decoder_decode_course, result.Err, i)
			continue
		}
		out = append(out, result.Course)
	}
	return out
}

// findRegion returns the first child of the card that is a div with a matching class.
func findRegion(card *goquery.Selection, pattern *regexp.Regexp) *goquery.Selection {
	return card.Children().FilterFunction(func(_ int, child *goquery.Selection) bool {
		return isDivWithClass(child, pattern)
	}).First()
}

// Decode decodes a single course card.
func (d Decoder) Decode(card *goquery.Selection) (Course, error) {
	header := findRegion(card, courseHeaderRegex)
	if header.Length() == 0 {
		return Course{}, missing("header")
	}
	info := findRegion(card, courseInfoRegex)
	if info.Length() == 0 {
		return Course{}, missing("info")
	}

	var course Course
	err := d.decodeHeader(header, &course)
	if err != nil {
		return Course{}, err
	}
	err = d.decodeInfo(info, &course)
	if err != nil {
		return Course{}, err
	}
	return course, nil
}

func (d Decoder) decodeHeader(header *goquery.Selection, course *Course) error {
	label, ok := markup.Text(header)
	if !ok {
		return missing("header text")
	}
	course.Difficulty = NormalizeDifficulty(label)

	clearRateRegion := markup.Slot(header, 1)
	clearRate, ok := typography.Number(clearRateRegion)
	if clearRateRegion.Length() == 0 || !ok {
		return missing("clear rate")
	}
	course.ClearRate = clearRate
	return nil
}

// info region layout:
//
//	[0] title       > [0] text
//	[1] image       > [0] > [0] @src thumbnail
//	                > [1] > [0] @class game style, [1] text created at
//	                > [2] text tag
//	                > [3] > [0] stars, [1] plays, [2] shares
//	                > [4] clears/attempts
//	[2] full image  > [0] @src
//	[3] detail      > [2] @href course link, maker subtree
func (d Decoder) decodeInfo(info *goquery.Selection, course *Course) error {
	detail := markup.Slot(info, 3)
	href, ok := markup.Slot(detail, 2).Attr("href")
	if !ok {
		return missing("course link")
	}
	id := courseIdFromLink(href)
	if id == "" {
		return missing("course id")
	}
	course.ID = id

	title := markup.Slot(info, 0, 0)
	if title.Length() == 0 {
		return missing("title")
	}
	course.Title, _ = markup.Text(title)

	image := markup.Slot(info, 1)
	thumbnail, ok := markup.Slot(image, 0, 0).Attr("src")
	if !ok {
		return missing("thumbnail")
	}
	course.ThumbnailImg = thumbnail

	styleClass, ok := markup.Slot(image, 1, 0).Attr("class")
	if !ok {
		return missing("game style")
	}
	styleGroups := gameStyleRegex.FindStringSubmatch(styleClass)
	if styleGroups == nil {
		return &MalformedError{Slot: "game style", Err: fmt.Errorf("no game style in class '%s'", styleClass)}
	}
	if style, ok := GameStyle(styleGroups[1]); ok {
		course.GameStyle = Some(style)
	} else {
		d.tel.ReportDebug(report_decoder_game_style, styleGroups[1])
	}

	created, ok := markup.Text(markup.Slot(image, 1, 1))
	if !ok {
		return missing("created at")
	}
	createdAt, err := ParseCreatedAt(created, d.time.Now())
	if err != nil {
		return &MalformedError{Slot: "created at", Err: err}
	}
	course.CreatedAt = createdAt

	tagRegion := markup.Slot(image, 2)
	if tagRegion.Length() == 0 {
		return missing("tag")
	}
	tagText, _ := markup.Text(tagRegion)
	tag := strings.ToLower(strings.TrimSpace(tagText))
	if tag != "" && tag != "---" {
		course.Tag = Some(tag)
	}

	stats := markup.Slot(image, 3)
	counters := []*int64{&course.Stars, &course.Plays, &course.Shares}
	names := []string{"stars", "plays", "shares"}
	for i, counter := range counters {
		region := markup.Slot(stats, i)
		n, ok := typography.Count(region)
		if region.Length() == 0 || !ok {
			return missing(names[i])
		}
		*counter = n
	}

	clearsRegion := markup.Slot(image, 4)
	clears, attempts, ok := typography.ClearsAttempts(clearsRegion)
	if clearsRegion.Length() == 0 || !ok {
		return missing("clears/attempts")
	}
	course.Clears = clears
	course.Attempts = attempts

	img, ok := markup.Slot(info, 2, 0).Attr("src")
	if !ok {
		return missing("image")
	}
	course.Img = img

	course.Maker = decodeMaker(detail)
	return nil
}

// courseIdFromLink takes the id out of "/courses/<id>", absolute links are accepted too.
func courseIdFromLink(href string) string {
	path := href
	parsed, err := url.Parse(href)
	if err == nil && parsed.Path != "" {
		path = parsed.Path
	}
	path = strings.TrimPrefix(path, "/courses/")
	return strings.Trim(path, "/")
}
