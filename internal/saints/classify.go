package saints

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SentinelLabel closes the block of a day on the source site.
const SentinelLabel = "Retour en haut"

// Kind is the role a node plays inside a day's block.
type Kind int

const (
	// KindBlank nodes contribute nothing themselves: whitespace, comments and
	// plain container elements whose children are walked instead.
	KindBlank Kind = iota
	// KindText is description text.
	KindText
	// KindName is an underlined element holding the saint's name.
	KindName
	// KindAside is an italic annotation such as a pronunciation or a source.
	KindAside
	// KindSentinel ends the block.
	KindSentinel
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindText:
		return "text"
	case KindName:
		return "name"
	case KindAside:
		return "aside"
	case KindSentinel:
		return "sentinel"
	default:
		return "unknown"
	}
}

// Node is a classified node of the parsed page.
type Node struct {
	Kind Kind
	Text string
	HTML *html.Node
}

// Classify assigns a Kind to n. Element text is the concatenation of its descendants' text.
func Classify(n *html.Node) Node {
	classified := Node{Kind: KindBlank, HTML: n}

	switch n.Type {
	case html.TextNode:
		trimmed := strings.TrimSpace(n.Data)
		switch {
		case trimmed == "":
		case trimmed == SentinelLabel:
			classified.Kind = KindSentinel
		default:
			classified.Kind = KindText
			classified.Text = n.Data
		}
	case html.ElementNode:
		text := nodeText(n)
		trimmed := strings.TrimSpace(text)
		switch {
		case trimmed == "":
		case trimmed == SentinelLabel:
			classified.Kind = KindSentinel
		case n.DataAtom == atom.U:
			classified.Kind = KindName
			classified.Text = text
		case n.DataAtom == atom.I:
			classified.Kind = KindAside
			classified.Text = text
		}
	}

	return classified
}

// After yields the nodes following start's subtree in document order. Blank and
// aside elements are yielded and then descended into; names and sentinels are
// yielded whole. Text inside an aside is yielded as an aside, while underlined
// elements inside it still count as names.
func After(start *html.Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var aside *html.Node

		n := nextOutside(start)
		for n != nil {
			if aside != nil && !isDescendant(n, aside) {
				aside = nil
			}

			classified := Classify(n)
			if aside != nil && classified.Kind == KindText {
				classified.Kind = KindAside
			}
			if aside == nil && classified.Kind == KindAside {
				aside = n
			}

			if !yield(classified) {
				return
			}

			descend := classified.Kind == KindBlank || classified.Kind == KindAside
			if n.Type == html.ElementNode && descend && n.FirstChild != nil {
				n = n.FirstChild
				continue
			}
			n = nextOutside(n)
		}
	}
}

func nextOutside(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

func isDescendant(n, ancestor *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var builder strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		builder.WriteString(nodeText(child))
	}
	return builder.String()
}
