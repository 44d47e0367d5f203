package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

func para(text string) *edtypes.Node {
	return edtypes.NewParagraph(edtypes.NewText(text))
}

func bulletList(items ...*edtypes.Node) *edtypes.Node {
	list := &edtypes.Node{Type: edtypes.TypeBulletList}
	for _, item := range items {
		list.Content = append(list.Content, &edtypes.Node{
			Type:    edtypes.TypeListItem,
			Content: []*edtypes.Node{item},
		})
	}
	return list
}

// newTestEngine создает движок с коллектором предупреждений.
func newTestEngine(t *testing.T, doc *edtypes.Node, opts ...editor.Option) (*editor.Engine, *[]string) {
	t.Helper()
	warnings := &[]string{}
	opts = append(opts, editor.WithWarningHandler(func(w editor.Warning) {
		*warnings = append(*warnings, w.Reason)
	}))
	e, err := editor.NewEngine(doc, opts...)
	require.NoError(t, err)
	return e, warnings
}

func topTexts(doc *edtypes.Node) []string {
	texts := make([]string, 0, len(doc.Content))
	for _, block := range doc.Content {
		texts = append(texts, block.PlainText())
	}
	return texts
}

func TestNewEngine(t *testing.T) {
	t.Run("rejects non-doc root", func(t *testing.T) {
		_, err := editor.NewEngine(para("ab"))
		assert.ErrorIs(t, err, editor.ErrMalformedDocument)
	})

	t.Run("pads empty document with a paragraph", func(t *testing.T) {
		e, err := editor.NewEngine(edtypes.NewDocument())
		require.NoError(t, err)
		snap := e.Snapshot()
		require.Len(t, snap.Doc.Content, 1)
		assert.Equal(t, edtypes.TypeParagraph, snap.Doc.Content[0].Type)
	})

	t.Run("clones the input document", func(t *testing.T) {
		doc := edtypes.NewDocument(para("ab"))
		e, err := editor.NewEngine(doc)
		require.NoError(t, err)
		doc.Content[0].Content[0].Text = "mutated"
		assert.Equal(t, "ab", e.Snapshot().Doc.PlainText())
	})
}

func TestMoveBlockForward(t *testing.T) {
	// A("ab")@0, B("cd")@4, C("ef")@8
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd"), para("ef")))

	// Перенос A в позицию 8 (граница между B и C): после удаления A цель
	// сдвигается на его размер.
	require.True(t, e.MoveBlock(0, 8))

	snap := e.Snapshot()
	assert.Equal(t, []string{"cd", "ab", "ef"}, topTexts(snap.Doc))
	assert.Equal(t, int64(1), snap.Revision)
	require.NotNil(t, snap.Cursor)
	assert.Equal(t, 4, *snap.Cursor)
}

func TestMoveBlockBackward(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd"), para("ef")))

	require.True(t, e.MoveBlock(8, 0))

	snap := e.Snapshot()
	assert.Equal(t, []string{"ef", "ab", "cd"}, topTexts(snap.Doc))
	require.NotNil(t, snap.Cursor)
	assert.Equal(t, 0, *snap.Cursor)
}

func TestMoveBlockPreservesContent(t *testing.T) {
	doc := edtypes.NewDocument(para("ab"), bulletList(para("cd"), para("ef")), para("gh"))
	e, _ := newTestEngine(t, doc)

	before := e.Snapshot().Doc
	require.True(t, e.MoveBlock(4, 0))
	after := e.Snapshot().Doc

	assert.Equal(t, before.BlockCount(), after.BlockCount())
	assert.Equal(t, before.PlainText(), after.PlainText())
	assert.Equal(t, before.ContentSize(), after.ContentSize())
}

func TestMoveBlockNoopAtOwnEdges(t *testing.T) {
	e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))

	assert.False(t, e.MoveBlock(0, 0))
	assert.False(t, e.MoveBlock(0, 4))

	snap := e.Snapshot()
	assert.Equal(t, int64(0), snap.Revision)
	assert.Empty(t, *warnings, "no-op drop must not warn")
}

func TestMoveBlockOntoItself(t *testing.T) {
	e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))

	assert.False(t, e.MoveBlock(0, 2))

	snap := e.Snapshot()
	assert.Equal(t, int64(0), snap.Revision)
	assert.Equal(t, []string{"ab", "cd"}, topTexts(snap.Doc))
	require.Len(t, *warnings, 1)
	assert.Equal(t, editor.ReasonDropOnSelf, (*warnings)[0])
}

func TestMoveBlockOutOfBounds(t *testing.T) {
	e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab")))

	assert.False(t, e.MoveBlock(0, 100))
	assert.Equal(t, int64(0), e.Revision())
	require.Len(t, *warnings, 1)
	assert.Equal(t, editor.ReasonOutsideBounds, (*warnings)[0])
}

func TestMoveBlockIntoList(t *testing.T) {
	// A("ab")@0, list@4 с одним элементом (li@5, para("cd")@6)
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), bulletList(para("cd"))))

	// Позиция 5 — граница перед первым listItem внутри списка.
	require.True(t, e.MoveBlock(0, 5))

	snap := e.Snapshot()
	list := snap.Doc.Content[0]
	require.Equal(t, edtypes.TypeBulletList, list.Type)
	require.Len(t, list.Content, 2)
	assert.Equal(t, edtypes.TypeParagraph, list.Content[0].Type)
	assert.Equal(t, "ab", list.Content[0].PlainText())
}

func TestDuplicateBlock(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))

	require.True(t, e.DuplicateBlock(4))

	snap := e.Snapshot()
	assert.Equal(t, []string{"ab", "cd", "cd"}, topTexts(snap.Doc))
	require.NotNil(t, snap.Cursor)
	assert.Equal(t, 8, *snap.Cursor)

	// Копия глубокая: правка оригинала не задевает дубликат.
	require.True(t, e.SetBlockColor(4, "#ff0000"))
	snap = e.Snapshot()
	assert.Empty(t, edtypes.AttrString(snap.Doc.Content[2].Attrs, edtypes.AttrBackgroundColor))
}

func TestDuplicateBlockMissingIsSilent(t *testing.T) {
	e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab")))

	assert.False(t, e.DuplicateBlock(100))
	assert.Equal(t, int64(0), e.Revision())
	assert.Empty(t, *warnings)
}

func TestDeleteBlock(t *testing.T) {
	t.Run("middle block, cursor at end of previous", func(t *testing.T) {
		e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd"), para("ef")))

		require.True(t, e.DeleteBlock(4))

		snap := e.Snapshot()
		assert.Equal(t, []string{"ab", "ef"}, topTexts(snap.Doc))
		require.NotNil(t, snap.Cursor)
		assert.Equal(t, 3, *snap.Cursor)
	})

	t.Run("first block, cursor stays on the next block", func(t *testing.T) {
		e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))

		require.True(t, e.DeleteBlock(0))

		snap := e.Snapshot()
		assert.Equal(t, []string{"cd"}, topTexts(snap.Doc))
		require.NotNil(t, snap.Cursor)
		assert.Equal(t, 0, *snap.Cursor)
	})

	t.Run("last remaining block is replaced with an empty paragraph", func(t *testing.T) {
		e, _ := newTestEngine(t, edtypes.NewDocument(para("ab")))

		require.True(t, e.DeleteBlock(0))

		snap := e.Snapshot()
		require.Len(t, snap.Doc.Content, 1)
		assert.Equal(t, edtypes.TypeParagraph, snap.Doc.Content[0].Type)
		assert.Empty(t, snap.Doc.Content[0].Content)
		assert.Equal(t, int64(1), snap.Revision)
	})

	t.Run("missing block warns", func(t *testing.T) {
		e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab")))

		assert.False(t, e.DeleteBlock(100))
		require.Len(t, *warnings, 1)
	})
}

func TestResetBlockFormatting(t *testing.T) {
	t.Run("strips marks, keeps text and block attrs", func(t *testing.T) {
		block := edtypes.NewParagraph(
			edtypes.NewText("ab", edtypes.Mark{Type: edtypes.MarkBold}),
			edtypes.NewText("cd", edtypes.Mark{Type: edtypes.MarkItalic}, edtypes.Mark{Type: edtypes.MarkCode}),
		)
		block.Attrs = map[string]any{edtypes.AttrBackgroundColor: "#ffff00"}
		e, _ := newTestEngine(t, edtypes.NewDocument(block))

		require.True(t, e.ResetBlockFormatting(0))

		got := e.Snapshot().Doc.Content[0]
		assert.Equal(t, "abcd", got.PlainText())
		for _, child := range got.Content {
			assert.Empty(t, child.Marks)
		}
		assert.Equal(t, "#ffff00", edtypes.AttrString(got.Attrs, edtypes.AttrBackgroundColor))
	})

	t.Run("empty block is a successful no-op without transaction", func(t *testing.T) {
		e, _ := newTestEngine(t, edtypes.NewDocument(edtypes.NewParagraph()))

		require.True(t, e.ResetBlockFormatting(0))
		assert.Equal(t, int64(0), e.Revision())
	})
}

func TestSetBlockColor(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab")))

	require.True(t, e.SetBlockColor(0, "#ffff00"))
	got := e.Snapshot().Doc.Content[0]
	assert.Equal(t, "#ffff00", edtypes.AttrString(got.Attrs, edtypes.AttrBackgroundColor))

	// transparent снимает атрибут целиком
	require.True(t, e.SetBlockColor(0, "transparent"))
	got = e.Snapshot().Doc.Content[0]
	assert.Nil(t, got.Attrs)
}

func TestCommandsAreAtomic(t *testing.T) {
	// Отказавшая команда не оставляет частично примененного состояния.
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))
	before := e.Snapshot()

	assert.False(t, e.MoveBlock(0, 2))
	assert.False(t, e.MoveBlock(0, 100))
	assert.False(t, e.DeleteBlock(50))

	after := e.Snapshot()
	assert.Equal(t, before.Revision, after.Revision)
	assert.Equal(t, topTexts(before.Doc), topTexts(after.Doc))
}

func TestSnapshotCursorIsDetached(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))

	require.True(t, e.MoveBlock(0, 8))
	snap := e.Snapshot()
	require.NotNil(t, snap.Cursor)

	// Запись в снимок не трогает состояние движка
	*snap.Cursor = 999
	next := e.Snapshot()
	require.NotNil(t, next.Cursor)
	assert.Equal(t, 4, *next.Cursor)
}
