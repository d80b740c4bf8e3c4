package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrVal(n *html.Node, key string) string {
	v, _ := attr(n, key)
	return v
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := attr(n, key)
	return ok
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func hasClass(n *html.Node, class string) bool {
	for c := range strings.FieldsSeq(attrVal(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *html.Node, class string) {
	if hasClass(n, class) {
		return
	}
	classes := strings.Fields(attrVal(n, "class"))
	setAttr(n, "class", strings.Join(append(classes, class), " "))
}

func removeClass(n *html.Node, class string) {
	if !hasClass(n, class) {
		return
	}
	var keep []string
	for c := range strings.FieldsSeq(attrVal(n, "class")) {
		if c != class {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		removeAttr(n, "class")
		return
	}
	setAttr(n, "class", strings.Join(keep, " "))
}

// textContent concatenates all descendant text nodes.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func setText(n *html.Node, text string) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// find returns the first element under root, root included, matching fn in document order.
func find(root *html.Node, fn func(*html.Node) bool) *html.Node {
	if root.Type == html.ElementNode && fn(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := find(c, fn); n != nil {
			return n
		}
	}
	return nil
}

// findAll returns every element under root, root excluded, matching fn in document order.
func findAll(root *html.Node, fn func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && fn(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func isControl(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Input, atom.Select, atom.Textarea, atom.Button:
		return true
	}
	return false
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.DataAtom == a }
}

// styleHidden reports whether the inline style carries display:none.
func styleHidden(n *html.Node) bool {
	for _, decl := range strings.Split(attrVal(n, "style"), ";") {
		if isDisplayNone(decl) {
			return true
		}
	}
	return false
}

func setHidden(n *html.Node, hidden bool) {
	var decls []string
	for _, decl := range strings.Split(attrVal(n, "style"), ";") {
		if strings.TrimSpace(decl) == "" || isDisplayNone(decl) {
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if hidden {
		decls = append(decls, "display:none")
	} else {
		removeAttr(n, "hidden")
	}
	if len(decls) == 0 {
		removeAttr(n, "style")
		return
	}
	setAttr(n, "style", strings.Join(decls, ";"))
}

func isDisplayNone(decl string) bool {
	prop, val, ok := strings.Cut(decl, ":")
	return ok && strings.EqualFold(strings.TrimSpace(prop), "display") &&
		strings.EqualFold(strings.TrimSpace(val), "none")
}
