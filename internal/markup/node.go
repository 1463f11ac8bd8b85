// Package markup turns a stream of tokenizer events into an x/net/html element tree.
//
// The tree is built exactly as the events arrive, without any HTML5 normalization,
// so children keep their document positions and callers can address known slots of
// a stable page layout through goquery selections.
package markup

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Select wraps a node of the tree in a selection, a nil node gives an empty selection.
func Select(n *html.Node) *goquery.Selection {
	if n == nil {
		return &goquery.Selection{}
	}
	return goquery.NewDocumentFromNode(n).Selection
}

// Slot follows a sequence of child element indexes, the selection becomes empty as
// soon as one of them is missing.
func Slot(sel *goquery.Selection, indexes ...int) *goquery.Selection {
	for _, i := range indexes {
		if i < 0 {
			return sel.Slice(0, 0)
		}
		sel = sel.Children().Eq(i)
	}
	return sel
}

// Text returns the text held directly by the first element of the selection.
func Text(sel *goquery.Selection) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	for c := sel.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data, true
		}
	}
	return "", false
}

// Class returns the class attribute of the first element or an empty string.
func Class(sel *goquery.Selection) string {
	return sel.AttrOr("class", "")
}

// Is reports whether the first element of the selection has the given name and a
// class that matches the pattern.
func Is(sel *goquery.Selection, name string, class *regexp.Regexp) bool {
	return goquery.NodeName(sel) == name && class.MatchString(Class(sel))
}

// Subtree selects the elements with the given name among the selection and all of
// its descendants, in document order.
func Subtree(sel *goquery.Selection, name string) *goquery.Selection {
	return sel.Filter(name).AddSelection(sel.Find(name))
}
