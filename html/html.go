/*
Package html bridges complete binary trees and HTML.

Render writes a tree as an HTML fragment with one ordered list per level:

	<div class="cbtree">
	  <ol data-level="1"><li>1</li></ol>
	  <ol data-level="2"><li>2</li><li>3</li></ol>
	</div>

FromHTML reads the textual content of an HTML fragment, interprets it as a
sequence of integers in document order and appends them to a new tree. As
document order of the rendered lists is level order, FromHTML re-creates a
rendered tree.
*/
package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/cbtree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Levelled is the read-only view of a tree needed for rendering.
type Levelled interface {
	EachLevel(func(level int, values []int) error) error
}

// Values collects the integers in the textual content of an HTML element and
// all its descendents, in document order. Numbers are separated by white space
// or commas; any other text is an error.
func Values(n *html.Node) ([]int, error) {
	if n == nil {
		return nil, cbtree.ErrIllegalArguments
	}
	var values []int
	err := collectValues(n, &values)
	return values, err
}

func collectValues(n *html.Node, values *[]int) error {
	if n.Type == html.TextNode {
		for _, field := range strings.FieldsFunc(n.Data, isSeparator) {
			v, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("%w: not a number: %q", cbtree.ErrIllegalArguments, field)
			}
			*values = append(*values, v)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectValues(c, values); err != nil {
			return err
		}
	}
	return nil
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

// FromHTML creates a tree from the integers in an HTML fragment. It does no
// interpretation of layout and styling, but extracts the pure text.
func FromHTML(input io.Reader) (*cbtree.Tree, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	var values []int
	for _, n := range nodes {
		if err := collectValues(n, &values); err != nil {
			return nil, err
		}
	}
	return cbtree.New(values...), nil
}

// ToHTML creates an HTML node tree for a tree, with one ordered list per
// level.
func ToHTML(tree Levelled) *html.Node {
	div := element(atom.Div, html.Attribute{Key: "class", Val: "cbtree"})
	_ = tree.EachLevel(func(level int, values []int) error {
		ol := element(atom.Ol, html.Attribute{Key: "data-level", Val: strconv.Itoa(level)})
		for _, v := range values {
			li := element(atom.Li)
			li.AppendChild(&html.Node{Type: html.TextNode, Data: strconv.Itoa(v)})
			ol.AppendChild(li)
		}
		div.AppendChild(ol)
		return nil
	})
	return div
}

// Render writes a tree as an HTML fragment to w.
func Render(w io.Writer, tree Levelled) error {
	return html.Render(w, ToHTML(tree))
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}
