// LectureSync - Academic Portal File Mirror
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lecturesync

package timeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// periodSections returns the distinct period cards whose title contains period.
func periodSections(page []byte, period string) ([]*html.Node, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse timeline page: %w", err)
	}

	var sections []*html.Node
	seen := make(map[*html.Node]bool)
	doc.Find("span.float-left.font-weight-bold").Each(func(_ int, marker *goquery.Selection) {
		if !strings.Contains(strings.TrimSpace(marker.Text()), period) {
			return
		}
		card := marker.Closest("div.card")
		if card.Length() == 0 {
			return
		}
		node := card.Get(0)
		if seen[node] {
			return
		}
		seen[node] = true
		sections = append(sections, node)
	})
	return sections, nil
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// idsIn returns the file ids referenced by a single node: attribute values
// for elements, data for text and comments.
func idsIn(n *html.Node) []string {
	var sources []string
	switch n.Type {
	case html.ElementNode:
		for _, a := range n.Attr {
			sources = append(sources, a.Val)
		}
	case html.TextNode, html.CommentNode:
		sources = append(sources, n.Data)
	default:
		return nil
	}

	var ids []string
	for _, s := range sources {
		for _, m := range downloadIDPattern.FindAllStringSubmatch(s, -1) {
			ids = append(ids, m[1])
		}
	}
	return ids
}

// hasClasses reports whether the element carries every class in want.
func hasClasses(n *html.Node, want ...string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		have := strings.Fields(a.Val)
		for _, w := range want {
			found := false
			for _, h := range have {
				if h == w {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
	return false
}

// textOf returns the trimmed text content of n.
func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return strings.TrimSpace(b.String())
}
