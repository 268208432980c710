package goquery

import (
	"fmt"
	"strings"

	"github.com/lessonfetch/lessonfetch"
	"golang.org/x/net/html"
)

// SynthesizeSelector derives a short, reusable CSS selector for target by
// walking up its ancestors, at most cfg.MaxSelectorDepth levels. Per level
// the first applicable fragment wins:
//
//  1. an id attribute emits "#<id>" and stops the climb; ids are assumed
//     page-unique, so no ancestor fragment can improve on one;
//  2. a class attribute emits "." plus its first token;
//  3. otherwise "<tag>:nth-child(<n>)", n being the 1-based position
//     among the parent's element children.
//
// Fragments are joined outermost to innermost with descendant combinators.
// Stable attributes are preferred over positional ones so the selector
// also matches the target's structural siblings and survives minor DOM
// reflow. html and body ancestors end the walk without a fragment.
func SynthesizeSelector(target *html.Node, cfg lessonfetch.ExtractConfig) string {
	if target == nil || target.Type != html.ElementNode {
		return ""
	}
	if target.Data == "html" || target.Data == "body" {
		return target.Data
	}

	maxDepth := cfg.MaxSelectorDepth
	if maxDepth <= 0 {
		maxDepth = lessonfetch.DefaultMaxSelectorDepth
	}

	var fragments []string
	n := target
	for depth := 0; n != nil && depth < maxDepth; depth++ {
		if n.Type != html.ElementNode || n.Data == "html" || n.Data == "body" {
			break
		}
		if id := attrValue(n, "id"); id != "" {
			fragments = append(fragments, "#"+id)
			break
		}
		if cls := firstClassToken(n); cls != "" {
			fragments = append(fragments, "."+cls)
		} else {
			fragments = append(fragments, fmt.Sprintf("%s:nth-child(%d)", n.Data, elementIndex(n)))
		}
		n = n.Parent
	}

	// The walk collected innermost first; the selector reads the other way.
	for i, j := 0, len(fragments)-1; i < j; i, j = i+1, j-1 {
		fragments[i], fragments[j] = fragments[j], fragments[i]
	}
	return strings.Join(fragments, " ")
}

// attrValue returns the trimmed value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// firstClassToken returns the first whitespace-separated class token, or "".
func firstClassToken(n *html.Node) string {
	tokens := strings.Fields(attrValue(n, "class"))
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// elementIndex returns the node's 1-based position among its parent's
// element children, matching CSS :nth-child semantics.
func elementIndex(n *html.Node) int {
	idx := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode {
			idx++
		}
	}
	return idx
}
