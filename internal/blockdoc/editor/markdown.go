// Сериализация документа в Markdown. Движок гарантирует, что каждый блок,
// который он производит, сериализуем: все устанавливаемые атрибуты переживают
// экспорт и обратный разбор внешней парой конвертеров.
package editor

import (
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

// ToMarkdown сериализует документ в Markdown.
func ToMarkdown(doc *edtypes.Node) (string, error) {
	var buf strings.Builder
	m := md.NewMarkdown(&buf)

	for _, block := range doc.Content {
		appendBlock(m, block)
	}

	if err := m.Build(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func appendBlock(m *md.Markdown, block *edtypes.Node) {
	switch block.Type {
	case edtypes.TypeParagraph:
		m.PlainText(inlineMarkdown(block))
	case edtypes.TypeHeading:
		appendHeading(m, block)
	case edtypes.TypeBulletList:
		m.BulletList(listItems(block)...)
	case edtypes.TypeOrderedList:
		m.OrderedList(listItems(block)...)
	case edtypes.TypeBlockquote:
		var lines []string
		for _, child := range block.Content {
			lines = append(lines, inlineMarkdown(child))
		}
		m.Blockquote(strings.Join(lines, "\n"))
	case edtypes.TypeCodeBlock:
		lang := edtypes.AttrString(block.Attrs, "language")
		m.CodeBlocks(md.SyntaxHighlight(lang), block.PlainText())
	case edtypes.TypeHorizontalRule:
		m.HorizontalRule()
	}
}

func appendHeading(m *md.Markdown, block *edtypes.Node) {
	text := inlineMarkdown(block)
	switch headingLevel(block.Attrs) {
	case 1:
		m.H1(text)
	case 2:
		m.H2(text)
	case 3:
		m.H3(text)
	case 4:
		m.H4(text)
	case 5:
		m.H5(text)
	default:
		m.H6(text)
	}
}

func listItems(list *edtypes.Node) []string {
	items := make([]string, 0, len(list.Content))
	for _, item := range list.Content {
		items = append(items, inlineMarkdown(item))
	}
	return items
}

// inlineMarkdown собирает инлайн-содержимое блока с марками в Markdown-синтаксисе.
func inlineMarkdown(block *edtypes.Node) string {
	var out strings.Builder
	var walk func(n *edtypes.Node)
	walk = func(n *edtypes.Node) {
		switch {
		case n.IsText():
			out.WriteString(markedText(n))
		case n.Type == edtypes.TypeHardBreak:
			out.WriteString("  \n")
		default:
			for _, child := range n.Content {
				walk(child)
			}
		}
	}
	walk(block)
	return out.String()
}

func markedText(n *edtypes.Node) string {
	text := n.Text
	for _, mark := range n.Marks {
		switch mark.Type {
		case edtypes.MarkBold:
			text = md.Bold(text)
		case edtypes.MarkItalic:
			text = md.Italic(text)
		case edtypes.MarkCode:
			text = md.Code(text)
		case edtypes.MarkStrike:
			text = md.Strikethrough(text)
		case edtypes.MarkLink:
			if href := edtypes.AttrString(mark.Attrs, "href"); href != "" {
				text = md.Link(text, href)
			}
		}
	}
	return text
}
