package classify

import (
	"bytes"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// StructuredText renders the content-bearing parts of an HTML page as
// labeled lines: the page title as H1, the meta description, then headers,
// paragraphs longer than ten characters, list markers, and emphasis in
// document order. Everything else (nav, script, boilerplate) is dropped.
func StructuredText(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var lines []string
	if title := nodeText(findElement(doc, "title")); title != "" {
		lines = append(lines, "H1: "+title)
	}
	if desc := metaDescription(doc); desc != "" {
		lines = append(lines, "DESCRIPTION: "+desc)
	}

	if b := findElement(doc, "body"); b != nil {
		walk(b, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			switch n.Data {
			case "h1", "h2", "h3":
				lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(n.Data), nodeText(n)))
			case "p":
				if text := nodeText(n); len(text) > 10 {
					lines = append(lines, "PARAGRAPH: "+text)
				}
			case "ul":
				lines = append(lines, "LIST:")
			case "li":
				lines = append(lines, "- "+nodeText(n))
			case "strong":
				lines = append(lines, "**"+nodeText(n)+"**")
			case "em":
				lines = append(lines, "*"+nodeText(n)+"*")
			}
		})
	}
	return strings.Join(lines, "\n")
}

// CollectLinks returns the deduplicated same-site links found on the page.
// A link qualifies when, resolved against pageURL, it extends pageURL, is not
// the page itself, and does not point at the bare root path.
func CollectLinks(body []byte, pageURL string) []string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := map[string]struct{}{}
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := attrValue(n, "href")
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		full := resolved.String()
		if !strings.HasPrefix(full, pageURL) || full == pageURL || resolved.Path == "/" {
			return
		}
		seen[full] = struct{}{}
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

func metaDescription(doc *html.Node) string {
	var desc string
	walk(doc, func(n *html.Node) {
		if desc != "" || n.Type != html.ElementNode || n.Data != "meta" {
			return
		}
		if strings.EqualFold(attrValue(n, "name"), "description") {
			desc = strings.TrimSpace(attrValue(n, "content"))
		}
	})
	return desc
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return strings.Join(strings.Fields(b.String()), " ")
}
