package ports

import "github.com/mplewis/dominion-strategy-wiki/internal/domain"

// GalleryDocument is the presentation layer a gallery lives in. E is the
// renderer's element handle.
type GalleryDocument[E any] interface {
	// Root is the top of the document.
	Root() E
	// Containers returns every element marked startsort, in document order.
	Containers() []E
	Classes(el E) []string
	// CostElements returns the cardcost elements under root, in document order.
	CostElements(root E) []E
	// Title is the title of the first anchor under el, or "".
	Title(el E) string
	// Control finds the first switch with both the control and sortID classes.
	Control(control domain.Control, sortID string) (E, bool)
	// AppendChild moves child to the end of parent.
	AppendChild(parent, child E)
	ApplyControl(el E, state domain.ControlState)
}

// Document is a GalleryDocument that can be serialized back to HTML.
type Document[E any] interface {
	GalleryDocument[E]
	// ApplyBorders wraps card images in a border of the given size; 0 removes it.
	ApplyBorders(px int)
	Render() (string, error)
}

// DocumentParser parses an HTML page into a Document.
type DocumentParser[E any] func(content string) (Document[E], error)
