// Преобразование типа блока. Диспетчеризация по целевому типу выполнена
// закрытым switch: добавление нового типа блока требует явной ветки, а не
// молчаливого фолбэка. Текстовое содержимое сохраняется дословно при любом
// преобразовании; меняется только структурная обертка и, для codeBlock,
// инлайн-марки.
package editor

import (
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

// ConvertBlockType преобразует блок, начинающийся в pos, в блок типа
// targetType с атрибутами targetAttrs. Недопустимое преобразование оставляет
// документ нетронутым и сообщает причину. Преобразование в тот же тип с теми
// же атрибутами — успешный no-op без транзакции.
func (e *Engine) ConvertBlockType(pos int, targetType edtypes.NodeType, targetAttrs map[string]any) bool {
	placed, ok := edtypes.PlacedAt(e.doc, pos)
	if !ok {
		return e.commit(txnFail(noBlockAt(pos)))
	}

	check := IsConversionValid(placed.Node.Type, targetType, placed.Node.Attrs, targetAttrs)
	if !check.Valid {
		return e.commit(txnFail(check.Reason))
	}
	if check.NoOp {
		return true
	}
	if check.Lossy && e.warnOnLossy {
		e.warn("conversion flattens nested content")
	}

	next := e.doc.Clone()
	target, _ := edtypes.PlacedAt(next, pos)
	rebuilt := rebuildAs(target.Node, targetType, targetAttrs)

	parent := target.Parent
	content := make([]*edtypes.Node, 0, len(parent.Content)-1+len(rebuilt))
	content = append(content, parent.Content[:target.Index]...)
	content = append(content, rebuilt...)
	content = append(content, parent.Content[target.Index+1:]...)
	parent.Content = content

	cursor := pos
	return e.commit(txnOK(next, &cursor))
}

// rebuildAs строит замену блока node для целевого типа. Возвращает один или,
// для снятия цитаты, несколько блоков.
func rebuildAs(node *edtypes.Node, target edtypes.NodeType, attrs map[string]any) []*edtypes.Node {
	switch target {
	case edtypes.TypeParagraph:
		return []*edtypes.Node{carryColor(node, edtypes.NewParagraph(inlineContent(node)...))}

	case edtypes.TypeHeading:
		h := edtypes.NewHeading(headingLevel(attrs), inlineContent(node)...)
		return []*edtypes.Node{carryColor(node, h)}

	case edtypes.TypeBulletList, edtypes.TypeOrderedList:
		// Смена вида списка сохраняет его элементы.
		if node.Type == edtypes.TypeBulletList || node.Type == edtypes.TypeOrderedList {
			retyped := node.Clone()
			retyped.Type = target
			return []*edtypes.Node{retyped}
		}
		item := &edtypes.Node{
			Type:    edtypes.TypeListItem,
			Content: []*edtypes.Node{edtypes.NewParagraph(inlineContent(node)...)},
		}
		list := &edtypes.Node{Type: target, Content: []*edtypes.Node{item}}
		return []*edtypes.Node{carryColor(node, list)}

	case edtypes.TypeCodeBlock:
		// Код не несет инлайн-марок: форматирование уплощается, текст сохраняется.
		code := &edtypes.Node{Type: edtypes.TypeCodeBlock}
		if text := node.PlainText(); text != "" {
			code.Content = []*edtypes.Node{edtypes.NewText(text)}
		}
		return []*edtypes.Node{carryColor(node, code)}

	case edtypes.TypeBlockquote:
		if node.Type == edtypes.TypeBlockquote {
			// Повторное преобразование в цитату снимает её: содержимое поднимается наружу.
			lifted := make([]*edtypes.Node, len(node.Content))
			for i, child := range node.Content {
				lifted[i] = child.Clone()
			}
			return lifted
		}
		quote := &edtypes.Node{Type: edtypes.TypeBlockquote, Content: paragraphsOf(node)}
		return []*edtypes.Node{carryColor(node, quote)}
	}
	// Недостижимо: isConvertTarget проверен валидацией.
	return []*edtypes.Node{node.Clone()}
}

// inlineContent собирает инлайн-содержимое блока и всех его вложенных блоков
// в порядке следования. Содержимое codeBlock возвращается одним текстовым
// узлом без марок.
func inlineContent(node *edtypes.Node) []*edtypes.Node {
	if node.Type == edtypes.TypeCodeBlock {
		if text := node.PlainText(); text != "" {
			return []*edtypes.Node{edtypes.NewText(text)}
		}
		return nil
	}
	var inline []*edtypes.Node
	for _, child := range node.Content {
		if child.IsBlock() {
			inline = append(inline, inlineContent(child)...)
		} else {
			inline = append(inline, child.Clone())
		}
	}
	return inline
}

// paragraphsOf приводит содержимое блока к последовательности параграфов.
func paragraphsOf(node *edtypes.Node) []*edtypes.Node {
	switch node.Type {
	case edtypes.TypeParagraph:
		return []*edtypes.Node{node.Clone()}
	case edtypes.TypeBulletList, edtypes.TypeOrderedList:
		// Каждый элемент списка становится параграфом.
		var paras []*edtypes.Node
		for _, item := range node.Content {
			paras = append(paras, edtypes.NewParagraph(inlineContent(item)...))
		}
		return paras
	case edtypes.TypeBlockquote:
		lifted := make([]*edtypes.Node, len(node.Content))
		for i, child := range node.Content {
			lifted[i] = child.Clone()
		}
		return lifted
	default:
		return []*edtypes.Node{edtypes.NewParagraph(inlineContent(node)...)}
	}
}

// carryColor переносит цвет фона исходного блока на замену.
func carryColor(src, dst *edtypes.Node) *edtypes.Node {
	if color := edtypes.AttrString(src.Attrs, edtypes.AttrBackgroundColor); color != "" {
		if dst.Attrs == nil {
			dst.Attrs = make(map[string]any, 1)
		}
		dst.Attrs[edtypes.AttrBackgroundColor] = color
	}
	return dst
}
