package ccel

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Extract returns the text of the headings, paragraphs and list items of a
// chapter page, one block per element separated by blank lines. The reading
// pane is #theText, else #main-content, else the whole body.
func Extract(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	root := findByID(doc, "theText")
	if root == nil {
		root = findByID(doc, "main-content")
	}
	if root == nil {
		root = findElement(doc, "body")
	}
	if root == nil {
		return "", ErrEmpty
	}

	var parts []string
	collectBlocks(root, &parts)
	if len(parts) == 0 {
		return "", ErrEmpty
	}
	return strings.Join(parts, "\n\n"), nil
}

func isBlock(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "p", "li":
		return true
	}
	return false
}

// collectBlocks appends the text of every block element under n, nested
// blocks included, in document order.
func collectBlocks(n *html.Node, parts *[]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlock(c.Data) {
			var buf strings.Builder
			textContent(c, &buf)
			if t := strings.TrimSpace(collapseWhitespace(buf.String())); t != "" {
				*parts = append(*parts, t)
			}
		}
		collectBlocks(c, parts)
	}
}

func textContent(n *html.Node, buf *strings.Builder) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, buf)
	}
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

func collapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(s, " ")
}
