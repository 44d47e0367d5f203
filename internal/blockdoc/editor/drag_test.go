package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

func TestDragLifecycle(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd"), para("ef")))
	assert.Equal(t, editor.DragIdle, e.DragPhase())

	require.NoError(t, e.HoverEnter(0))
	assert.Equal(t, editor.DragHovering, e.DragPhase())

	// Повторный вход обновляет позицию без смены фазы
	require.NoError(t, e.HoverEnter(4))
	assert.Equal(t, editor.DragHovering, e.DragPhase())

	require.NoError(t, e.DragStart(0))
	assert.Equal(t, editor.DragDragging, e.DragPhase())

	applied, err := e.Drop(8)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, editor.DragIdle, e.DragPhase())

	snap := e.Snapshot()
	assert.Equal(t, []string{"cd", "ab", "ef"}, topTexts(snap.Doc))
	assert.Equal(t, int64(1), snap.Revision)
}

func TestHoverLeave(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab")))

	// В Idle уход указателя — no-op
	require.NoError(t, e.HoverLeave())

	require.NoError(t, e.HoverEnter(0))
	require.NoError(t, e.HoverLeave())
	assert.Equal(t, editor.DragIdle, e.DragPhase())
}

func TestDragStartRequiresHover(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab")))

	err := e.DragStart(0)
	require.Error(t, err)
	assert.Equal(t, editor.DragIdle, e.DragPhase())
}

func TestDragStartMissingBlock(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab")))

	require.NoError(t, e.HoverEnter(0))
	err := e.DragStart(100)
	require.Error(t, err)
	assert.Equal(t, editor.DragHovering, e.DragPhase())
}

func TestDropRequiresDragging(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab")))

	_, err := e.Drop(0)
	require.Error(t, err)
}

func TestDropInvalidPositionReverts(t *testing.T) {
	e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))
	before := e.Snapshot()

	require.NoError(t, e.HoverEnter(0))
	require.NoError(t, e.DragStart(0))

	// Сброс внутрь собственного диапазона: откат без мутации
	applied, err := e.Drop(2)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, editor.DragIdle, e.DragPhase())
	assert.Equal(t, before.Revision, e.Revision())
	require.Len(t, *warnings, 1)
	assert.Equal(t, editor.ReasonDropOnSelf, (*warnings)[0])
}

func TestDropRejectionPassesThroughReverting(t *testing.T) {
	var e *editor.Engine
	var phases []editor.DragPhase
	e, err := editor.NewEngine(
		edtypes.NewDocument(para("ab"), para("cd")),
		editor.WithWarningHandler(func(editor.Warning) {
			phases = append(phases, e.DragPhase())
		}),
	)
	require.NoError(t, err)

	require.NoError(t, e.HoverEnter(0))
	require.NoError(t, e.DragStart(0))

	applied, err := e.Drop(2)
	require.NoError(t, err)
	assert.False(t, applied)

	// Предупреждение об откате выдается из фазы Reverting
	require.Len(t, phases, 1)
	assert.Equal(t, editor.DragReverting, phases[0])
	assert.Equal(t, editor.DragIdle, e.DragPhase())
}

func TestDropOnOwnEdgeIsSilent(t *testing.T) {
	e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))

	require.NoError(t, e.HoverEnter(0))
	require.NoError(t, e.DragStart(0))

	// Сброс в исходную позицию — ожидаемый no-op без предупреждений
	applied, err := e.Drop(0)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, *warnings)
	assert.Equal(t, editor.DragIdle, e.DragPhase())
	assert.Equal(t, int64(0), e.Revision())
}

func TestDragCancel(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))
	before := e.Snapshot()

	require.NoError(t, e.HoverEnter(0))
	require.NoError(t, e.DragStart(0))
	require.NoError(t, e.DragCancel())

	assert.Equal(t, editor.DragIdle, e.DragPhase())
	assert.Equal(t, before.Revision, e.Revision())
	assert.Equal(t, topTexts(before.Doc), topTexts(e.Snapshot().Doc))

	// Отмена в Idle — no-op
	require.NoError(t, e.DragCancel())
}

func TestDragAbortedByMutation(t *testing.T) {
	e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd"), para("ef")))

	require.NoError(t, e.HoverEnter(0))
	require.NoError(t, e.DragStart(0))

	// Мутация документа во время перетаскивания обрывает его
	require.True(t, e.DeleteBlock(8))
	assert.Equal(t, editor.DragIdle, e.DragPhase())
	require.Len(t, *warnings, 1)
	assert.Equal(t, editor.ReasonDragAborted, (*warnings)[0])
}

func TestDropAfterStaleRevisionReverts(t *testing.T) {
	e, _ := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd"), para("ef")))

	require.NoError(t, e.HoverEnter(0))
	require.NoError(t, e.DragStart(0))
	require.True(t, e.DeleteBlock(8))

	// Автомат уже сброшен мутацией: сброс из Idle — ошибка перехода
	_, err := e.Drop(4)
	require.Error(t, err)
	assert.Equal(t, []string{"ab", "cd"}, topTexts(e.Snapshot().Doc))
}

func TestSuccessfulDropDoesNotSelfAbort(t *testing.T) {
	e, warnings := newTestEngine(t, edtypes.NewDocument(para("ab"), para("cd")))

	require.NoError(t, e.HoverEnter(0))
	require.NoError(t, e.DragStart(0))

	applied, err := e.Drop(8)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Empty(t, *warnings, "committed drop must not raise the abort warning")
}
