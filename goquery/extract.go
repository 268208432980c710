// Package goquery implements the content-extraction core: boilerplate
// stripping, heuristic content scoring, explicit-selector extraction,
// and CSS selector synthesis. All entry points are pure functions over
// a parsed document and are safe for concurrent use on independent trees.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/lessonfetch/lessonfetch"
	"golang.org/x/net/html"
)

// Parse parses raw HTML into a document. Parsing is forgiving: degenerate
// input yields a document with an empty body, never an error from the
// HTML itself.
func Parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// Strip removes every node whose tag is in cfg.StripTags, along with its
// subtree. It mutates doc and returns the number of nodes removed, so a
// second pass over the same document reports zero.
func Strip(doc *goquery.Document, cfg lessonfetch.ExtractConfig) int {
	if len(cfg.StripTags) == 0 {
		return 0
	}
	sel := doc.Find(strings.Join(cfg.StripTags, ", "))
	n := sel.Length()
	sel.Remove()
	return n
}

// ExtractByHeuristic scores every article, main and section node in doc
// and returns the text of the highest-scoring one, or the whole document
// text when no candidate exists (Container reports "body" on that path).
// score = words + cfg.ParagraphWeight * descendant paragraph count; ties
// go to the earliest candidate in document order. Text below cfg.MinWords
// is an ETOOSHORT error. The document is expected to be stripped.
func ExtractByHeuristic(doc *goquery.Document, cfg lessonfetch.ExtractConfig) (*lessonfetch.ExtractResult, error) {
	result := &lessonfetch.ExtractResult{Title: pageTitle(doc)}

	candidates := doc.Find("article, main, section")

	// Ordered scan with a strict comparison keeps the tie-break
	// deterministic: the first candidate in document order wins.
	bestScore := -1
	for i := 0; i < candidates.Length(); i++ {
		c := candidates.Eq(i)
		text := lessonfetch.CleanText(nodeText(c.Nodes[0]))
		score := lessonfetch.WordCount(text) + cfg.ParagraphWeight*c.Find("p").Length()
		if score > bestScore {
			bestScore = score
			result.Text = text
			result.Container = goquery.NodeName(c)
			result.ContentHTML = outerHTML(c)
		}
	}

	if bestScore < 0 {
		body := doc.Find("body")
		if body.Length() == 0 {
			body = doc.Selection
		}
		result.Text = lessonfetch.CleanText(nodeText(body.Nodes[0]))
		result.Container = "body"
		result.ContentHTML = outerHTML(body)
	}

	result.Words = lessonfetch.WordCount(result.Text)
	if result.Words < cfg.MinWords {
		return nil, lessonfetch.Errorf(lessonfetch.ETOOSHORT,
			"extracted only %d words (minimum required: %d)", result.Words, cfg.MinWords)
	}
	return result, nil
}

// ExtractBySelectors extracts text for an ordered list of CSS selectors.
// For each selector all matching nodes contribute in document order; the
// pieces are joined by blank lines, selector-list order first. A selector
// that compiles but matches nothing is skipped; if nothing matches at all
// the returned result is flagged no-match (empty text, nil error) so the
// caller can fall back to the heuristic path. A selector that does not
// compile is an EINVALID error.
func ExtractBySelectors(doc *goquery.Document, selectors []string) (*lessonfetch.ExtractResult, error) {
	if len(selectors) == 0 {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "no selectors given")
	}

	result := &lessonfetch.ExtractResult{Title: pageTitle(doc)}

	var texts, htmls []string
	for _, s := range selectors {
		matcher, err := cascadia.Compile(s)
		if err != nil {
			return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "invalid selector %q: %v", s, err)
		}
		sel := doc.FindMatcher(matcher)
		if sel.Length() == 0 {
			continue
		}
		result.MatchedSelectors = append(result.MatchedSelectors, s)
		for i := 0; i < sel.Length(); i++ {
			node := sel.Eq(i)
			if text := lessonfetch.CleanText(nodeText(node.Nodes[0])); text != "" {
				texts = append(texts, text)
			}
			htmls = append(htmls, outerHTML(node))
		}
	}

	if len(result.MatchedSelectors) == 0 {
		return result, nil
	}

	result.Text = strings.Join(texts, "\n\n")
	result.ContentHTML = strings.Join(htmls, "\n")
	result.Words = lessonfetch.WordCount(result.Text)
	return result, nil
}

// pageTitle returns the trimmed <title> text, or "".
func pageTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// nodeText accumulates the trimmed text of every descendant text node,
// newline-separated, in document order.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// outerHTML renders a selection's first node including the node itself.
func outerHTML(sel *goquery.Selection) string {
	h, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return h
}
