// Команды мутации документа. Каждая команда разрешает позиции из актуального
// документа в момент вызова, работает на глубокой копии дерева и фиксирует
// результат одной атомарной транзакцией: частично примененное состояние
// наблюдать невозможно.
package editor

import (
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

// MoveBlock переносит блок, начинающийся в sourcePos, в позицию targetPos.
// Число блоков и содержимое переносимого блока не меняются. Возвращает false
// без мутации документа, если позиция сброса не проходит валидацию.
func (e *Engine) MoveBlock(sourcePos, targetPos int) bool {
	placed, ok := edtypes.PlacedAt(e.doc, sourcePos)
	if !ok {
		return e.commit(txnFail(noBlockAt(sourcePos)))
	}
	size := placed.Node.Size()

	if v := ValidateDropPosition(sourcePos, targetPos, size, e.doc.ContentSize()); !v.IsValid {
		if v.Silent() {
			return e.commit(txnFailSilent(v.Reason))
		}
		return e.commit(txnFail(v.Reason))
	}

	// Удаление сдвигает все последующие позиции влево на размер блока.
	adjusted := targetPos
	if targetPos > sourcePos {
		adjusted -= size
	}

	next := e.doc.Clone()
	moved, ok := spliceOut(next, sourcePos)
	if !ok {
		return e.commit(txnFail(noBlockAt(sourcePos)))
	}
	gap, ok := edtypes.GapAt(next, adjusted)
	if !ok {
		return e.commit(txnFail(ReasonNoInsertionPoint))
	}
	spliceIn(gap, moved)

	pos := adjusted
	return e.commit(txnOK(next, &pos))
}

// DuplicateBlock вставляет полную копию блока сразу после него, в позиции
// pos+nodeSize. При отсутствии блока в pos завершается тихо, без мутации.
func (e *Engine) DuplicateBlock(pos int) bool {
	if _, ok := edtypes.PlacedAt(e.doc, pos); !ok {
		return e.commit(txnFailSilent(noBlockAt(pos)))
	}

	next := e.doc.Clone()
	placed, _ := edtypes.PlacedAt(next, pos)
	copied := placed.Node.Clone()
	spliceIn(edtypes.Gap{Parent: placed.Parent, Index: placed.Index + 1}, copied)

	cursor := pos + placed.Node.Size()
	return e.commit(txnOK(next, &cursor))
}

// DeleteBlock удаляет блок, начинающийся в pos. Курсор ставится в конец
// предыдущего блока, а при его отсутствии остается в pos, указывая на
// следующий блок. Удаление последнего блока документа заменяет его пустым
// параграфом: документ никогда не остается без блоков.
func (e *Engine) DeleteBlock(pos int) bool {
	placed, ok := edtypes.PlacedAt(e.doc, pos)
	if !ok {
		return e.commit(txnFail(noBlockAt(pos)))
	}

	next := e.doc.Clone()
	if _, ok := spliceOut(next, pos); !ok {
		return e.commit(txnFail(noBlockAt(pos)))
	}
	if len(next.Content) == 0 {
		next.Content = []*edtypes.Node{edtypes.NewParagraph()}
		return e.commit(txnOK(next, nil))
	}

	var cursor *int
	if placed.Index > 0 {
		// Конец предыдущего блока: позиция перед его закрывающей границей.
		end := pos - 1
		cursor = &end
	} else if pos < next.ContentSize() {
		p := pos
		cursor = &p
	}
	return e.commit(txnOK(next, cursor))
}

// ResetBlockFormatting снимает все инлайн-марки внутри блока, не трогая текст
// и атрибуты самого блока. Пустой внутренний диапазон — успешный no-op.
func (e *Engine) ResetBlockFormatting(pos int) bool {
	placed, ok := edtypes.PlacedAt(e.doc, pos)
	if !ok {
		return e.commit(txnFail(noBlockAt(pos)))
	}

	from, to := pos+1, pos+placed.Node.Size()-1
	if from >= to {
		return true
	}

	next := e.doc.Clone()
	target, _ := edtypes.PlacedAt(next, pos)
	stripMarks(target.Node)
	return e.commit(txnOK(next, e.cursor))
}

// SetBlockColor устанавливает атрибут backgroundColor блока. Значение
// "transparent" снимает атрибут, любая другая строка сохраняется как есть
// и переживает сериализацию документа.
func (e *Engine) SetBlockColor(pos int, color string) bool {
	if _, ok := edtypes.PlacedAt(e.doc, pos); !ok {
		return e.commit(txnFail(noBlockAt(pos)))
	}

	next := e.doc.Clone()
	placed, _ := edtypes.PlacedAt(next, pos)
	node := placed.Node
	if color == "transparent" {
		delete(node.Attrs, edtypes.AttrBackgroundColor)
		if len(node.Attrs) == 0 {
			node.Attrs = nil
		}
	} else {
		if node.Attrs == nil {
			node.Attrs = make(map[string]any, 1)
		}
		node.Attrs[edtypes.AttrBackgroundColor] = color
	}
	return e.commit(txnOK(next, e.cursor))
}

// spliceOut удаляет из дерева блок, начинающийся в pos, и возвращает его.
func spliceOut(doc *edtypes.Node, pos int) (*edtypes.Node, bool) {
	placed, ok := edtypes.PlacedAt(doc, pos)
	if !ok {
		return nil, false
	}
	parent := placed.Parent
	parent.Content = append(parent.Content[:placed.Index], parent.Content[placed.Index+1:]...)
	return placed.Node, true
}

// spliceIn вставляет блок в точку вставки gap.
func spliceIn(gap edtypes.Gap, node *edtypes.Node) {
	content := gap.Parent.Content
	content = append(content[:gap.Index], append([]*edtypes.Node{node}, content[gap.Index:]...)...)
	gap.Parent.Content = content
}

// stripMarks рекурсивно снимает марки со всех текстовых узлов поддерева.
func stripMarks(node *edtypes.Node) {
	if node.IsText() {
		node.Marks = nil
		return
	}
	for _, child := range node.Content {
		stripMarks(child)
	}
}
