package htmldom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mplewis/dominion-strategy-wiki/internal/adapters/htmldom"
	"github.com/mplewis/dominion-strategy-wiki/internal/domain"
)

const page = `<html><body>
<span class="switchsort sortbycost sortid1" style="color: red">Cost</span>
<div class="startsort sortid1">
<div class="cardcost cost$05 set01"><a title="Witch"><img src="w.jpg" width="100"></a></div>
<div class="cardcost cost$04 set01"><span><a title="Smithy"></a><a title="Other"></a></span></div>
<div class="cardcost cost$03"></div>
</div>
<img src="logo.png">
</body></html>`

func mustParse(t *testing.T, content string) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.Parse(content)
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, doc *htmldom.Document) string {
	t.Helper()
	out, err := doc.Render()
	require.NoError(t, err)
	return out
}

func TestDocument_Queries(t *testing.T) {
	doc := mustParse(t, page)

	containers := doc.Containers()
	require.Len(t, containers, 1)
	assert.Equal(t, []string{"startsort", "sortid1"}, doc.Classes(containers[0]))

	cards := doc.CostElements(containers[0])
	require.Len(t, cards, 3)
	assert.Equal(t, "Witch", doc.Title(cards[0]))
	assert.Equal(t, "Smithy", doc.Title(cards[1]), "first anchor wins")
	assert.Empty(t, doc.Title(cards[2]))

	assert.Len(t, doc.CostElements(doc.Root()), 3)

	_, ok := doc.Control(domain.ControlCost, "sortid1")
	assert.True(t, ok)
	_, ok = doc.Control(domain.ControlName, "sortid1")
	assert.False(t, ok)
	_, ok = doc.Control(domain.ControlCost, "sortid2")
	assert.False(t, ok)
}

func TestDocument_AppendChildMoves(t *testing.T) {
	doc := mustParse(t, page)
	container := doc.Containers()[0]
	cards := doc.CostElements(container)

	doc.AppendChild(container, cards[0])

	reordered := doc.CostElements(container)
	require.Len(t, reordered, 3)
	assert.Equal(t, "Smithy", doc.Title(reordered[0]))
	assert.Equal(t, "Witch", doc.Title(reordered[2]))
	assert.Equal(t, 1, strings.Count(render(t, doc), `title="Witch"`))
}

func TestDocument_ApplyControl(t *testing.T) {
	doc := mustParse(t, page)
	el, ok := doc.Control(domain.ControlCost, "sortid1")
	require.True(t, ok)

	doc.ApplyControl(el, domain.ControlState{Active: true, Cursor: domain.CursorDefault})
	assert.Contains(t, render(t, doc),
		`<span class="switchsort sortbycost sortid1 switchsort-active" style="color: red; cursor: default">`)

	doc.ApplyControl(el, domain.ControlState{Active: true, Cursor: domain.CursorDefault})
	assert.Equal(t, []string{"switchsort", "sortbycost", "sortid1", "switchsort-active"}, doc.Classes(el), "idempotent")

	doc.ApplyControl(el, domain.ControlState{Cursor: domain.CursorPointer})
	assert.Contains(t, render(t, doc),
		`<span class="switchsort sortbycost sortid1" style="color: red; cursor: pointer">`)

	doc.ApplyControl(el, domain.ControlState{})
	assert.Contains(t, render(t, doc), `style="color: red; cursor: pointer"`, "empty cursor leaves style alone")

	doc.ApplyControl(el, domain.ControlState{Hidden: true})
	assert.Contains(t, render(t, doc), `style="color: red; cursor: pointer; display: none"`)
}

func TestDocument_ApplyBorders(t *testing.T) {
	doc := mustParse(t, page)

	doc.ApplyBorders(domain.CardBorderPX)
	out := render(t, doc)
	assert.Contains(t, out,
		`<span class="cardborderchanger" style="display:inline-block; background:black; padding: 5px; border-radius: 4px"><img src="w.jpg" width="100"/></span>`)
	assert.NotContains(t, out, `<span class="cardborderchanger" style="display:inline-block; background:black; padding: 5px; border-radius: 4px"><img src="logo.png"`)
	assert.Equal(t, 1, strings.Count(out, "cardborderchanger"))

	doc.ApplyBorders(0)
	out = render(t, doc)
	assert.Equal(t, 1, strings.Count(out, "cardborderchanger"), "existing wrapper reused")
	assert.Contains(t, out, `padding: 0px; border-radius: -1px`)
}

func TestParseDocument(t *testing.T) {
	doc, err := htmldom.ParseDocument(page)
	require.NoError(t, err)
	assert.Len(t, doc.Containers(), 1)
}
