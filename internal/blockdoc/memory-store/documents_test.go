package store_test

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
	store "github.com/aisa-it/blockdoc/internal/blockdoc/memory-store"
)

func testDoc(texts ...string) *edtypes.Node {
	doc := &edtypes.Node{Type: edtypes.TypeDoc}
	for _, text := range texts {
		doc.Content = append(doc.Content, &edtypes.Node{
			Type: edtypes.TypeParagraph,
			Content: []*edtypes.Node{
				{Type: edtypes.TypeText, Text: text},
			},
		})
	}
	return doc
}

func TestCreateAndExec(t *testing.T) {
	ds := store.NewDocumentStore(time.Minute)

	id, err := ds.Create(testDoc("ab", "cd"))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Count())

	snap, warnings, err := ds.Exec(id, func(e *editor.Engine) error {
		e.MoveBlock(0, 8)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, int64(1), snap.Revision)
	assert.Equal(t, "cdab", snap.Doc.PlainText())
}

func TestExecUnknownSession(t *testing.T) {
	ds := store.NewDocumentStore(time.Minute)

	id, err := uuid.NewV4()
	require.NoError(t, err)

	_, _, err = ds.Exec(id, func(e *editor.Engine) error { return nil })
	assert.Error(t, err)
}

func TestExecClearsWarningsBetweenCommands(t *testing.T) {
	ds := store.NewDocumentStore(time.Minute)

	id, err := ds.Create(testDoc("ab", "cd"))
	require.NoError(t, err)

	// невалидный move оставляет предупреждение
	_, warnings, err := ds.Exec(id, func(e *editor.Engine) error {
		e.MoveBlock(0, 100)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, editor.ReasonOutsideBounds, warnings[0].Reason)

	// следующая команда начинает с чистого списка
	_, warnings, err = ds.Exec(id, func(e *editor.Engine) error {
		e.DuplicateBlock(0)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestExecWarningsAreNotAliased(t *testing.T) {
	ds := store.NewDocumentStore(time.Minute)

	id, err := ds.Create(testDoc("ab", "cd"))
	require.NoError(t, err)

	_, first, err := ds.Exec(id, func(e *editor.Engine) error {
		e.MoveBlock(0, 100)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// следующая команда пишет в свой список, не затирая уже отданный
	_, second, err := ds.Exec(id, func(e *editor.Engine) error {
		e.MoveBlock(0, 2)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, editor.ReasonOutsideBounds, first[0].Reason)
	assert.Equal(t, editor.ReasonDropOnSelf, second[0].Reason)
}

func TestDelete(t *testing.T) {
	ds := store.NewDocumentStore(time.Minute)

	id, err := ds.Create(testDoc("ab"))
	require.NoError(t, err)

	ds.Delete(id)
	assert.Equal(t, 0, ds.Count())

	_, _, err = ds.Exec(id, func(e *editor.Engine) error { return nil })
	assert.Error(t, err)

	// повторное удаление безопасно
	ds.Delete(id)
}

func TestTTLExpiry(t *testing.T) {
	ds := store.NewDocumentStore(20 * time.Millisecond)

	_, err := ds.Create(testDoc("ab"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return ds.Count() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestExecResetsTTL(t *testing.T) {
	ds := store.NewDocumentStore(60 * time.Millisecond)

	id, err := ds.Create(testDoc("ab"))
	require.NoError(t, err)

	// регулярные обращения удерживают сессию живой дольше TTL
	for i := 0; i < 5; i++ {
		time.Sleep(30 * time.Millisecond)
		_, _, err := ds.Exec(id, func(e *editor.Engine) error { return nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 1, ds.Count())
}
