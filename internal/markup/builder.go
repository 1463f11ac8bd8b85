package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// EventSink receives the events of a streaming tokenizer in document order.
type EventSink interface {
	Open(name string, attrs []html.Attribute)
	Text(value string)
	Close(name string)
	End()
}

// Builder materializes tokenizer events into an element tree.
//
// Malformed nesting is tolerated rather than rejected: a close event that does not
// match the element under the cursor is ignored and the cursor stays where it is.
//
// Every element holds at most one text node, the last text event seen directly
// under it. Whitespace-only text events are dropped instead of replacing that text,
// which departs from a plain "last text wins" tokenizer contract: the indentation
// after a nested element would otherwise erase the label written before it.
type Builder struct {
	// OnClose is called every time an element is closed by a matching close event.
	OnClose func(n *html.Node)

	root   *html.Node
	cursor *html.Node
	ended  bool
}

func NewBuilder() *Builder {
	root := &html.Node{Type: html.ElementNode, Data: "root"}
	return &Builder{root: root, cursor: root}
}

func (b *Builder) Open(name string, attrs []html.Attribute) {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
		Attr:     dedupeAttrs(attrs),
	}
	b.cursor.AppendChild(node)
	b.cursor = node
}

func (b *Builder) Text(value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	for c := b.cursor.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			c.Data = value
			return
		}
	}
	b.cursor.AppendChild(&html.Node{Type: html.TextNode, Data: value})
}

func (b *Builder) Close(name string) {
	if b.cursor.Parent == nil || name != b.cursor.Data {
		return
	}
	closed := b.cursor
	b.cursor = closed.Parent
	if b.OnClose != nil {
		b.OnClose(closed)
	}
}

func (b *Builder) End() {
	b.ended = true
}

// Root returns the root of the tree, the root is a synthetic element named "root".
func (b *Builder) Root() *html.Node {
	return b.root
}

// Ended reports whether the end of the event stream has been seen.
func (b *Builder) Ended() bool {
	return b.ended
}

func dedupeAttrs(attrs []html.Attribute) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]html.Attribute, 0, len(attrs))
	for _, a := range attrs {
		duplicate := false
		for _, existing := range out {
			if existing.Key == a.Key {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, a)
		}
	}
	return out
}
