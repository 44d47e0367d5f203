// Парсинг JSON контента TipTap редактора в блочную модель документа.
//
// Основные возможности:
//   - Десериализация дерева нод с нормализацией структуры
//   - Отбрасывание нод неизвестных типов с предупреждением в лог
//   - Приведение атрибутов к инвариантам движка (уровни заголовков, содержимое кода)
package tiptap

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

var ErrNotDocument = errors.New("root node is not a document")

// ParseJSON парсит JSON контент TipTap редактора в дерево нод.
// Принимает io.Reader с JSON данными и возвращает нормализованный документ.
func ParseJSON(r io.Reader) (*edtypes.Node, error) {
	var root edtypes.Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}

	if root.Type != edtypes.TypeDoc {
		return nil, ErrNotDocument
	}

	doc := edtypes.NewDocument()
	for _, node := range root.Content {
		if block := normalizeBlock(node); block != nil {
			doc.Content = append(doc.Content, block)
		}
	}
	return doc, nil
}

// normalizeBlock приводит блочную ноду к инвариантам движка.
// Возвращает nil для нод, которые движок не поддерживает.
func normalizeBlock(node *edtypes.Node) *edtypes.Node {
	if node == nil {
		return nil
	}

	switch node.Type {
	case edtypes.TypeParagraph:
		return normalizeInlineBlock(node)
	case edtypes.TypeHeading:
		block := normalizeInlineBlock(node)
		level := edtypes.AttrInt(block.Attrs, "level")
		if level < 1 || level > 6 {
			setAttr(block, "level", 2)
		}
		return block
	case edtypes.TypeBulletList, edtypes.TypeOrderedList:
		return normalizeList(node)
	case edtypes.TypeBlockquote:
		return normalizeContainer(node)
	case edtypes.TypeCodeBlock:
		return normalizeCodeBlock(node)
	case edtypes.TypeHorizontalRule:
		return &edtypes.Node{Type: node.Type, Attrs: copyAttrs(node.Attrs)}
	default:
		slog.Warn("Unknown node type", "type", node.Type)
		return nil
	}
}

// normalizeInlineBlock оставляет в содержимом только инлайн-ноды.
func normalizeInlineBlock(node *edtypes.Node) *edtypes.Node {
	block := &edtypes.Node{Type: node.Type, Attrs: copyAttrs(node.Attrs)}
	for _, child := range node.Content {
		if inline := normalizeInline(child); inline != nil {
			block.Content = append(block.Content, inline)
		}
	}
	return block
}

func normalizeInline(node *edtypes.Node) *edtypes.Node {
	if node == nil {
		return nil
	}
	switch node.Type {
	case edtypes.TypeText:
		if node.Text == "" {
			return nil
		}
		text := edtypes.NewText(node.Text)
		text.Marks = node.Marks
		return text
	case edtypes.TypeHardBreak:
		return &edtypes.Node{Type: edtypes.TypeHardBreak}
	default:
		slog.Warn("Unknown inline type", "type", node.Type)
		return nil
	}
}

// normalizeList проверяет, что непосредственные дети списка - listItem.
// Голые блоки внутри списка оборачиваются в listItem, прочее отбрасывается.
func normalizeList(node *edtypes.Node) *edtypes.Node {
	list := &edtypes.Node{Type: node.Type, Attrs: copyAttrs(node.Attrs)}
	for _, child := range node.Content {
		switch child.Type {
		case edtypes.TypeListItem:
			item := &edtypes.Node{Type: edtypes.TypeListItem, Attrs: copyAttrs(child.Attrs)}
			for _, grand := range child.Content {
				if block := normalizeBlock(grand); block != nil {
					item.Content = append(item.Content, block)
				}
			}
			if len(item.Content) == 0 {
				item.Content = append(item.Content, edtypes.NewParagraph())
			}
			list.Content = append(list.Content, item)
		default:
			if block := normalizeBlock(child); block != nil {
				item := &edtypes.Node{Type: edtypes.TypeListItem, Content: []*edtypes.Node{block}}
				list.Content = append(list.Content, item)
			}
		}
	}
	if len(list.Content) == 0 {
		return nil
	}
	return list
}

func normalizeContainer(node *edtypes.Node) *edtypes.Node {
	container := &edtypes.Node{Type: node.Type, Attrs: copyAttrs(node.Attrs)}
	for _, child := range node.Content {
		if block := normalizeBlock(child); block != nil {
			container.Content = append(container.Content, block)
		}
	}
	if len(container.Content) == 0 {
		container.Content = append(container.Content, edtypes.NewParagraph())
	}
	return container
}

// normalizeCodeBlock сводит содержимое к единственной текстовой ноде без марок.
func normalizeCodeBlock(node *edtypes.Node) *edtypes.Node {
	block := &edtypes.Node{Type: edtypes.TypeCodeBlock, Attrs: copyAttrs(node.Attrs)}
	if text := node.PlainText(); text != "" {
		block.Content = append(block.Content, edtypes.NewText(text))
	}
	return block
}

func copyAttrs(attrs map[string]any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func setAttr(node *edtypes.Node, key string, value any) {
	if node.Attrs == nil {
		node.Attrs = make(map[string]any, 1)
	}
	node.Attrs[key] = value
}
