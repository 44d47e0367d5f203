// Пакет edtypes определяет дерево блоков документа редактора и линейную адресацию позиций.
// Документ представляет собой дерево узлов Node под неявным корнем типа doc; каждый блок
// занимает непрерывный диапазон позиций в линейном адресном пространстве документа.
//
// Основные возможности:
//   - Универсальная структура узла с map атрибутов для поддержки различных типов блоков.
//   - Закрытый набор типов блоков и инлайн-марок форматирования.
//   - Вычисление размеров узлов и разрешение позиций (см. position.go).
//   - Глубокое копирование поддеревьев для атомарных транзакций и снапшотов.
package edtypes

import "unicode/utf8"

// NodeType — тип узла дерева документа.
type NodeType string

const (
	TypeDoc            NodeType = "doc"
	TypeParagraph      NodeType = "paragraph"
	TypeHeading        NodeType = "heading"
	TypeBulletList     NodeType = "bulletList"
	TypeOrderedList    NodeType = "orderedList"
	TypeListItem       NodeType = "listItem"
	TypeBlockquote     NodeType = "blockquote"
	TypeCodeBlock      NodeType = "codeBlock"
	TypeHorizontalRule NodeType = "horizontalRule"
	TypeHardBreak      NodeType = "hardBreak"
	TypeText           NodeType = "text"
)

// Типы инлайн-марок (bold, italic, link и т.д.).
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkStrike    = "strike"
	MarkCode      = "code"
	MarkLink      = "link"
	MarkTextStyle = "textStyle"
	MarkHighlight = "highlight"
)

// Имя атрибута цвета фона блока. Значение "transparent" в командах снимает атрибут.
const AttrBackgroundColor = "backgroundColor"

// Mark представляет инлайн-форматирование текстового отрезка.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node представляет узел в дереве документа.
// Используется универсальная структура с map для атрибутов для поддержки различных типов блоков.
type Node struct {
	Type    NodeType       `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// NewDocument создает корневой узел документа с переданными блоками.
func NewDocument(blocks ...*Node) *Node {
	return &Node{Type: TypeDoc, Content: blocks}
}

// NewText создает текстовый узел с марками форматирования.
func NewText(text string, marks ...Mark) *Node {
	return &Node{Type: TypeText, Text: text, Marks: marks}
}

// NewParagraph создает параграф с инлайн-содержимым.
func NewParagraph(content ...*Node) *Node {
	return &Node{Type: TypeParagraph, Content: content}
}

// NewHeading создает заголовок указанного уровня.
func NewHeading(level int, content ...*Node) *Node {
	return &Node{Type: TypeHeading, Attrs: map[string]any{"level": level}, Content: content}
}

// IsText возвращает true для текстовых узлов.
func (n *Node) IsText() bool { return n.Type == TypeText }

// IsAtom возвращает true для неделимых узлов, занимающих одну позицию.
func (n *Node) IsAtom() bool {
	return n.Type == TypeHardBreak || n.Type == TypeHorizontalRule
}

// IsBlock возвращает true для структурных блоков документа.
// Текстовые узлы и инлайн-атомы блоками не являются.
func (n *Node) IsBlock() bool {
	switch n.Type {
	case TypeText, TypeHardBreak, TypeDoc:
		return false
	}
	return true
}

// HasBlockContent возвращает true, если содержимое узла состоит из блоков,
// а не из инлайн-узлов.
func (n *Node) HasBlockContent() bool {
	return len(n.Content) > 0 && n.Content[0].IsBlock()
}

// Clone возвращает глубокую копию поддерева.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		Type: n.Type,
		Text: n.Text,
	}
	if n.Attrs != nil {
		cp.Attrs = make(map[string]any, len(n.Attrs))
		for k, v := range n.Attrs {
			cp.Attrs[k] = v
		}
	}
	if n.Marks != nil {
		cp.Marks = make([]Mark, len(n.Marks))
		for i, m := range n.Marks {
			cp.Marks[i] = Mark{Type: m.Type}
			if m.Attrs != nil {
				cp.Marks[i].Attrs = make(map[string]any, len(m.Attrs))
				for k, v := range m.Attrs {
					cp.Marks[i].Attrs[k] = v
				}
			}
		}
	}
	if n.Content != nil {
		cp.Content = make([]*Node, len(n.Content))
		for i, child := range n.Content {
			cp.Content[i] = child.Clone()
		}
	}
	return cp
}

// PlainText возвращает конкатенацию текстового содержимого поддерева без разделителей.
func (n *Node) PlainText() string {
	if n.IsText() {
		return n.Text
	}
	var out string
	for _, child := range n.Content {
		out += child.PlainText()
	}
	return out
}

// BlockCount возвращает число структурных блоков в поддереве, не считая сам узел.
func (n *Node) BlockCount() int {
	count := 0
	for _, child := range n.Content {
		if child.IsBlock() {
			count += 1 + child.BlockCount()
		}
	}
	return count
}

// TextLen возвращает длину текста узла в рунах.
func (n *Node) TextLen() int {
	return utf8.RuneCountInString(n.Text)
}

// AttrString безопасно извлекает строковый атрибут из map.
func AttrString(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	val, ok := attrs[key]
	if !ok {
		return ""
	}
	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// AttrInt безопасно извлекает целочисленный атрибут из map.
func AttrInt(attrs map[string]any, key string) int {
	if attrs == nil {
		return 0
	}
	val, ok := attrs[key]
	if !ok {
		return 0
	}

	// Может быть float64 из JSON
	if f, ok := val.(float64); ok {
		return int(f)
	}

	if i, ok := val.(int); ok {
		return i
	}

	return 0
}

// AttrBool безопасно извлекает булевый атрибут из map.
func AttrBool(attrs map[string]any, key string) bool {
	if attrs == nil {
		return false
	}
	val, ok := attrs[key]
	if !ok {
		return false
	}
	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}
