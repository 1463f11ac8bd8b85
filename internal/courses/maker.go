package courses

import (
	"regexp"
	"strings"

	"smm-course-search/internal/markup"

	"github.com/PuerkitoBio/goquery"
)

var (
	miiWrapperRegex  = regexp.MustCompile(`^\s*mii-wrapper`)
	creatorInfoRegex = regexp.MustCompile(`^\s*creator-info`)
)

func isDivWithClass(sel *goquery.Selection, pattern *regexp.Regexp) bool {
	return markup.Is(sel, "div", pattern)
}

// loginFromProfileLink turns "/profile/<login>?type=posted" into "<login>".
func loginFromProfileLink(href string) string {
	login := strings.Replace(href, "/profile/", "", 1)
	login = strings.Replace(login, "?type=posted", "", 1)
	return login
}

// decodeMaker searches the subtree for the avatar wrapper and the creator info.
// Both searches are independent and stop at their first match, fields that
// cannot be found are left absent.
func decodeMaker(subtree *goquery.Selection) Maker {
	var maker Maker
	divs := markup.Subtree(subtree, "div")

	wrapper := divs.FilterFunction(func(_ int, div *goquery.Selection) bool {
		if !isDivWithClass(div, miiWrapperRegex) {
			return false
		}
		href, ok := markup.Slot(div, 0).Attr("href")
		return ok && loginFromProfileLink(href) != ""
	}).First()
	if wrapper.Length() > 0 {
		link := markup.Slot(wrapper, 0)
		href, _ := link.Attr("href")
		maker.Login = Some(loginFromProfileLink(href))
		if src, ok := markup.Slot(link, 0).Attr("src"); ok {
			maker.FaceImg = Some(src)
		}
	}

	info := divs.FilterFunction(func(_ int, div *goquery.Selection) bool {
		return isDivWithClass(div, creatorInfoRegex)
	}).First()
	if info.Length() > 0 {
		if flagClass, ok := markup.Slot(info, 0).Attr("class"); ok {
			maker.Flag = Some(strings.Replace(flagClass, "flag ", "", 1))
		}
		if name, ok := markup.Text(markup.Slot(info, 2)); ok {
			maker.Name = Some(name)
		}
	}

	return maker
}
