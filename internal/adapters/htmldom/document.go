// Package htmldom lets the gallery sorter work on server-side HTML trees.
package htmldom

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
	"github.com/mplewis/dominion-strategy-wiki/internal/ports"
)

const classBorder = "cardborderchanger"

// Document implements ports.Document over an x/net/html tree.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(content string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseDocument is Parse as a ports.DocumentParser.
func ParseDocument(content string) (ports.Document[*html.Node], error) {
	d, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) Root() *html.Node { return d.root }

func (d *Document) Containers() []*html.Node {
	return findAll(d.root, func(n *html.Node) bool {
		return hasClass(n, domain.ClassStartSort)
	})
}

func (d *Document) Classes(el *html.Node) []string {
	return domain.Fields(attr(el, "class"))
}

func (d *Document) CostElements(root *html.Node) []*html.Node {
	return findAll(root, func(n *html.Node) bool {
		return n != root && hasClass(n, domain.ClassCardCost)
	})
}

func (d *Document) Title(el *html.Node) string {
	anchors := findAll(el, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.A
	})
	if len(anchors) == 0 {
		return ""
	}
	return attr(anchors[0], "title")
}

func (d *Document) Control(control domain.Control, sortID string) (*html.Node, bool) {
	found := findAll(d.root, func(n *html.Node) bool {
		return hasClass(n, string(control)) && hasClass(n, sortID)
	})
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

func (d *Document) AppendChild(parent, child *html.Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AppendChild(child)
}

func (d *Document) ApplyControl(el *html.Node, state domain.ControlState) {
	if state.Hidden {
		setStyle(el, "display", "none")
		return
	}
	if state.Active {
		addClass(el, domain.ClassActiveSwitch)
	} else {
		removeClass(el, domain.ClassActiveSwitch)
	}
	if state.Cursor != "" {
		setStyle(el, "cursor", state.Cursor)
	}
}

// ApplyBorders wraps every card image with a declared width in a black
// border sized for that width, or resizes an existing wrapper. px == 0 keeps
// the wrappers but collapses them.
func (d *Document) ApplyBorders(px int) {
	imgs := findAll(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Img
	})
	for _, img := range imgs {
		width, err := strconv.Atoi(attr(img, "width"))
		if err != nil || width <= 0 || img.Parent == nil {
			continue
		}
		size := 0
		if px > 0 {
			size = domain.BorderPadding(width)
		}

		wrapper := img.Parent
		if attr(wrapper, "class") != classBorder {
			wrapper = &html.Node{
				Type:     html.ElementNode,
				Data:     "span",
				DataAtom: atom.Span,
				Attr: []html.Attribute{
					{Key: "class", Val: classBorder},
					{Key: "style", Val: "display:inline-block; background:black"},
				},
			}
			img.Parent.InsertBefore(wrapper, img)
			img.Parent.RemoveChild(img)
			wrapper.AppendChild(img)
		}
		setStyle(wrapper, "padding", fmt.Sprintf("%dpx", size))
		setStyle(wrapper, "border-radius", fmt.Sprintf("%dpx", size-1))
	}
}

func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return slices.Contains(domain.Fields(attr(n, "class")), class)
}

func addClass(n *html.Node, class string) {
	classes := domain.Fields(attr(n, "class"))
	if slices.Contains(classes, class) {
		return
	}
	setAttr(n, "class", strings.Join(append(classes, class), " "))
}

func removeClass(n *html.Node, class string) {
	classes := domain.Fields(attr(n, "class"))
	if !slices.Contains(classes, class) {
		return
	}
	kept := slices.DeleteFunc(classes, func(c string) bool { return c == class })
	setAttr(n, "class", strings.Join(kept, " "))
}

// setStyle sets one declaration of an inline style, keeping the others in place.
func setStyle(n *html.Node, prop, val string) {
	var decls []string
	replaced := false
	for _, d := range strings.Split(attr(n, "style"), ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, _, _ := strings.Cut(d, ":")
		if strings.EqualFold(strings.TrimSpace(name), prop) {
			d = prop + ": " + val
			replaced = true
		}
		decls = append(decls, d)
	}
	if !replaced {
		decls = append(decls, prop+": "+val)
	}
	setAttr(n, "style", strings.Join(decls, "; "))
}
