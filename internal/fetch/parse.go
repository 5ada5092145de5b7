package fetch

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"
)

// element is a generic XML node. Children are matched by un-namespaced local
// name only, so <atom:link> or <media:title> never stand in for <link> or
// <title>.
type element struct {
	XMLName  xml.Name
	Text     string    `xml:",chardata"`
	Children []element `xml:",any"`
}

// children returns the direct children named local with no namespace.
func (e element) children(local string) []element {
	var out []element
	for _, c := range e.Children {
		if c.XMLName.Space == "" && c.XMLName.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// childText returns the text of the first child named local, or "" when
// there is none.
func (e element) childText(local string) string {
	for _, c := range e.Children {
		if c.XMLName.Space == "" && c.XMLName.Local == local {
			return c.Text
		}
	}
	return ""
}

// Parse decodes an RSS document and returns every channel/item under the
// root (whose name is not checked) that carries both a non-empty title and
// link, in document order. Text is returned as written; any well-formed XML
// of another shape yields no articles and no error.
func Parse(data []byte) ([]Article, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel

	var root element
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no root element", ErrInvalidFeed)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	if err := expectEOF(decoder); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}

	var articles []Article
	for _, ch := range root.children("channel") {
		for _, item := range ch.children("item") {
			title := item.childText("title")
			link := item.childText("link")
			if title == "" || link == "" {
				continue
			}
			articles = append(articles, Article{Title: title, Link: link})
		}
	}
	return articles, nil
}

// expectEOF rejects anything but whitespace, comments and processing
// instructions after the root element.
func expectEOF(decoder *xml.Decoder) error {
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("junk after document element")
			}
		case xml.Comment, xml.ProcInst:
		default:
			return errors.New("junk after document element")
		}
	}
}

func emptyHint(data []byte) string {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom:
		return "document is an Atom feed; only RSS channel/item entries are read"
	case gofeed.FeedTypeRSS:
		return ""
	default:
		return "document is not an RSS feed"
	}
}
