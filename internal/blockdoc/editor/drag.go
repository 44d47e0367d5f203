// Конечный автомат перетаскивания блока: Idle → Hovering → Dragging →
// {Committing | Reverting} → Idle. Фаза хранится одним полем, легальность
// переходов проверяется явно: нелегальный переход — ошибка программирования,
// а не пользовательская ошибка.
package editor

import (
	"fmt"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

// DragPhase — фаза жизненного цикла перетаскивания.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragHovering
	DragDragging
	DragCommitting
	DragReverting
)

func (p DragPhase) String() string {
	switch p {
	case DragIdle:
		return "idle"
	case DragHovering:
		return "hovering"
	case DragDragging:
		return "dragging"
	case DragCommitting:
		return "committing"
	case DragReverting:
		return "reverting"
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// dragState — состояние перетаскивания. Исходная позиция и размер блока
// фиксируются в момент начала перетаскивания и не пересчитываются до сброса;
// мутация документа в процессе обрывает перетаскивание (см. Engine.commit).
type dragState struct {
	phase     DragPhase
	hoverPos  int
	sourcePos int
	nodeSize  int
	revision  int64
}

// DragPhase возвращает текущую фазу перетаскивания.
func (e *Engine) DragPhase() DragPhase { return e.drag.phase }

func invalidTransition(from DragPhase, event string) error {
	return fmt.Errorf("invalid drag transition: %s from %s", event, from)
}

// HoverEnter переводит автомат в Hovering при входе указателя в зону
// триггера блока. Повторный вход в Hovering обновляет позицию.
func (e *Engine) HoverEnter(pos int) error {
	if e.drag.phase != DragIdle && e.drag.phase != DragHovering {
		return invalidTransition(e.drag.phase, "hover")
	}
	e.drag.phase = DragHovering
	e.drag.hoverPos = pos
	return nil
}

// HoverLeave возвращает автомат в Idle при уходе указателя с блока и его
// ручки. В Idle — no-op.
func (e *Engine) HoverLeave() error {
	switch e.drag.phase {
	case DragIdle:
		return nil
	case DragHovering:
		e.drag = dragState{}
		return nil
	}
	return invalidTransition(e.drag.phase, "hover leave")
}

// DragStart начинает перетаскивание блока с ручки. Исходная позиция, размер
// блока и ревизия документа захватываются в этот момент и держатся
// неизменными до завершения перетаскивания.
func (e *Engine) DragStart(sourcePos int) error {
	if e.drag.phase != DragHovering {
		return invalidTransition(e.drag.phase, "drag start")
	}
	node := edtypes.NodeAt(e.doc, sourcePos)
	if node == nil {
		return fmt.Errorf("%s: %d", ReasonNoBlockAtPosition, sourcePos)
	}
	e.drag = dragState{
		phase:     DragDragging,
		sourcePos: sourcePos,
		nodeSize:  node.Size(),
		revision:  e.revision,
	}
	return nil
}

// Drop завершает перетаскивание сбросом в targetPos: валидный сброс проходит
// через Committing и фиксирует перемещение, невалидный — через Reverting без
// мутации документа. В обоих случаях автомат возвращается в Idle.
func (e *Engine) Drop(targetPos int) (bool, error) {
	if e.drag.phase != DragDragging {
		return false, invalidTransition(e.drag.phase, "drop")
	}

	if e.drag.revision != e.revision {
		// Документ мутировал после начала перетаскивания: откат.
		e.drag.phase = DragReverting
		e.warn(ReasonDragAborted)
		e.drag = dragState{}
		return false, nil
	}

	sourcePos := e.drag.sourcePos
	if v := ValidateDropPosition(sourcePos, targetPos, e.drag.nodeSize, e.doc.Size()); !v.IsValid {
		e.drag.phase = DragReverting
		if !v.Silent() {
			e.warn(v.Reason)
		}
		e.drag = dragState{}
		return false, nil
	}

	e.drag.phase = DragCommitting
	ok := e.MoveBlock(sourcePos, targetPos)
	e.drag = dragState{}
	return ok, nil
}

// DragCancel обрывает перетаскивание (escape, сброс вне документа): документ
// гарантированно не изменен, автомат возвращается в Idle.
func (e *Engine) DragCancel() error {
	switch e.drag.phase {
	case DragHovering, DragDragging:
		e.drag = dragState{}
		return nil
	case DragIdle:
		return nil
	}
	return invalidTransition(e.drag.phase, "cancel")
}
