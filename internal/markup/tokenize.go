package markup

import (
	"bytes"
	"errors"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// elements that never have content, the tokenizer only emits an end tag for them
// when the markup explicitly writes one.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// Tokenize streams the markup through the x/net/html tokenizer and forwards its
// events to the sink. Self-closing and void elements produce an open event
// immediately followed by a close event.
func Tokenize(r io.Reader, sink EventSink) error {
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			err := z.Err()
			if errors.Is(err, io.EOF) {
				sink.End()
				return nil
			}
			return err
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			sink.Open(tok.Data, tok.Attr)
			if tt == html.SelfClosingTagToken || voidElements[tok.Data] {
				sink.Close(tok.Data)
			}
		case html.EndTagToken:
			tok := z.Token()
			sink.Close(tok.Data)
		case html.TextToken:
			tok := z.Token()
			sink.Text(tok.Data)
		}
	}
}

// Parse builds a tree out of the given markup, the document's root is the
// synthetic "root" element.
func Parse(r io.Reader) (*goquery.Document, error) {
	builder := NewBuilder()
	err := Tokenize(r, builder)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(builder.Root()), nil
}

// ParseBytes is Parse for an in-memory document.
func ParseBytes(body []byte) (*goquery.Document, error) {
	return Parse(bytes.NewReader(body))
}
