package courses

import (
	"fmt"
	"strings"
)

// glyphHTML draws a numeral the way the result pages do, '.' is the decimal
// glyph and both ',' and '/' are drawn with the separator glyph.
func glyphHTML(numeral string) string {
	var b strings.Builder
	for _, r := range numeral {
		class := ""
		switch {
		case r >= '0' && r <= '9':
			class = "typography-" + string(r)
		case r == '.':
			class = "typography-second"
		case r == ',' || r == '/':
			class = "typography-slash"
		default:
			continue
		}
		fmt.Fprintf(&b, `<div class="typography %s"></div>`, class)
	}
	return b.String()
}

type cardFixture struct {
	ID         string
	Title      string
	Difficulty string
	ClearRate  string
	GameStyle  string
	Created    string
	Tag        string
	Stars      string
	Plays      string
	Shares     string
	Tries      string
	Login      string
	Flag       string
	Maker      string
	// NoInfo drops the info region entirely.
	NoInfo bool
	// NoMaker drops the avatar and creator regions.
	NoMaker bool
}

func defaultCard(id string) cardFixture {
	return cardFixture{
		ID:         id,
		Title:      "Koopa Castle " + id,
		Difficulty: "Expert",
		ClearRate:  "4.56",
		GameStyle:  "sb3",
		Created:    "2 hours ago",
		Tag:        "Puzzle",
		Stars:      "1,234",
		Plays:      "56,789",
		Shares:     "12",
		Tries:      "5/10",
		Login:      "maker_" + id,
		Flag:       "US",
		Maker:      "Maker " + id,
	}
}

func (c cardFixture) html() string {
	var b strings.Builder
	b.WriteString(`<div class="course-card">`)
	fmt.Fprintf(&b, `
  <div class="course-header">%s<div class="clear-rate-label">clear rate</div><div class="clear-rate">%s<div class="typography typography-percent"></div></div></div>`,
		c.Difficulty, glyphHTML(c.ClearRate))

	if !c.NoInfo {
		b.WriteString(`
  <div class="course-info">
    <div class="course-title-wrapper"><div class="course-title">` + c.Title + `</div></div>
    <div class="course-image-wrapper">
      <a class="course-image" href="/courses/` + c.ID + `"><img class="course-image" src="https://example.com/thumb/` + c.ID + `.jpg"></a>
      <div class="course-meta"><div class="gameskin common_gs_` + c.GameStyle + `"></div><div class="created_at">` + c.Created + `</div></div>
      <div class="course-tag">` + c.Tag + `</div>
      <div class="course-stats">
        <div class="liked-count">` + glyphHTML(c.Stars) + `</div>
        <div class="played-count">` + glyphHTML(c.Plays) + `</div>
        <div class="shared-count">` + glyphHTML(c.Shares) + `</div>
      </div>
      <div class="tried-count">` + glyphHTML(c.Tries) + `</div>
    </div>
    <div class="course-image-full-wrapper"><img class="course-image-full" src="https://example.com/full/` + c.ID + `.jpg"></div>
    <div class="course-detail-wrapper">`)
		if !c.NoMaker {
			b.WriteString(`
      <div class="mii-wrapper"><a href="/profile/` + c.Login + `?type=posted"><img src="https://example.com/mii/` + c.Login + `.png"></a></div>
      <div class="creator-info"><div class="flag ` + c.Flag + `"></div><div class="separator"></div><div class="name">` + c.Maker + `</div></div>`)
		} else {
			b.WriteString(`
      <div class="placeholder"></div>
      <div class="placeholder"></div>`)
		}
		b.WriteString(`
      <a class="button course-detail link" href="/courses/` + c.ID + `">Show Details</a>
    </div>
  </div>`)
	}
	b.WriteString("\n</div>\n")
	return b.String()
}

func resultsHTML(cards ...cardFixture) string {
	var b strings.Builder
	b.WriteString(`<div class="course-list search-results">` + "\n")
	b.WriteString(`<div class="pagination-wrapper"></div>` + "\n")
	for _, c := range cards {
		b.WriteString(c.html())
	}
	b.WriteString(`</div>`)
	return b.String()
}
