// Подготовка содержимого блока для буфера обмена. Движок отдает оба
// представления — плоский текст и HTML; запись в системный буфер и фолбэк
// на plain text выполняет внешний коллаборатор. Работает со снапшотом
// поддерева: асинхронная запись не держит документ.
package editor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
	policy "github.com/aisa-it/blockdoc/internal/blockdoc/redactor-policy"
)

var minifier *minify.M = minify.New()

func init() {
	minifier.AddFunc("text/html", mhtml.Minify)
}

// ClipboardPayload — оба представления скопированного блока.
type ClipboardPayload struct {
	PlainText string `json:"plain_text"`
	HTML      string `json:"html"`
}

// CopyBlock строит представления блока для буфера обмена. HTML проходит
// через политику санитизации и минификацию.
func CopyBlock(node *edtypes.Node) (ClipboardPayload, error) {
	snapshot := node.Clone()

	rendered := renderHTML(snapshot)
	var buf bytes.Buffer
	if err := html.Render(&buf, rendered); err != nil {
		return ClipboardPayload{}, err
	}
	minified, err := minifier.String("text/html", buf.String())
	if err != nil {
		return ClipboardPayload{}, err
	}

	return ClipboardPayload{
		PlainText: renderPlainText(snapshot),
		HTML:      policy.UgcPolicy.Sanitize(minified),
	}, nil
}

// renderPlainText возвращает текст блока с переводами строк между
// текстовыми блоками.
func renderPlainText(node *edtypes.Node) string {
	var lines []string
	var walk func(n *edtypes.Node)
	walk = func(n *edtypes.Node) {
		switch n.Type {
		case edtypes.TypeParagraph, edtypes.TypeHeading, edtypes.TypeCodeBlock:
			lines = append(lines, n.PlainText())
		case edtypes.TypeHorizontalRule:
			// без текстового представления
		default:
			for _, child := range n.Content {
				walk(child)
			}
		}
	}
	walk(node)
	return strings.Join(lines, "\n")
}

// renderHTML строит HTML-дерево для блока.
func renderHTML(node *edtypes.Node) *html.Node {
	switch node.Type {
	case edtypes.TypeText:
		return renderTextHTML(node)
	case edtypes.TypeHardBreak:
		return element(atom.Br, nil)
	case edtypes.TypeHorizontalRule:
		return element(atom.Hr, nil)
	case edtypes.TypeCodeBlock:
		pre := element(atom.Pre, node)
		code := element(atom.Code, nil)
		code.AppendChild(&html.Node{Type: html.TextNode, Data: node.PlainText()})
		pre.AppendChild(code)
		return pre
	}

	el := element(blockAtom(node), node)
	for _, child := range node.Content {
		el.AppendChild(renderHTML(child))
	}
	return el
}

func blockAtom(node *edtypes.Node) atom.Atom {
	switch node.Type {
	case edtypes.TypeParagraph:
		return atom.P
	case edtypes.TypeHeading:
		switch headingLevel(node.Attrs) {
		case 1:
			return atom.H1
		case 2:
			return atom.H2
		case 3:
			return atom.H3
		case 4:
			return atom.H4
		case 5:
			return atom.H5
		default:
			return atom.H6
		}
	case edtypes.TypeBulletList:
		return atom.Ul
	case edtypes.TypeOrderedList:
		return atom.Ol
	case edtypes.TypeListItem:
		return atom.Li
	case edtypes.TypeBlockquote:
		return atom.Blockquote
	}
	return atom.Div
}

// element создает элемент и, если блок окрашен, добавляет стиль фона.
func element(a atom.Atom, node *edtypes.Node) *html.Node {
	el := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if node != nil {
		if color := edtypes.AttrString(node.Attrs, edtypes.AttrBackgroundColor); color != "" {
			el.Attr = append(el.Attr, html.Attribute{Key: "style", Val: fmt.Sprintf("background-color: %s", color)})
		}
	}
	return el
}

// renderTextHTML оборачивает текстовый узел тегами его марок.
func renderTextHTML(node *edtypes.Node) *html.Node {
	current := &html.Node{Type: html.TextNode, Data: node.Text}
	for i := len(node.Marks) - 1; i >= 0; i-- {
		wrapper := markElement(node.Marks[i])
		if wrapper == nil {
			continue
		}
		wrapper.AppendChild(current)
		current = wrapper
	}
	return current
}

func markElement(mark edtypes.Mark) *html.Node {
	switch mark.Type {
	case edtypes.MarkBold:
		return element(atom.Strong, nil)
	case edtypes.MarkItalic:
		return element(atom.Em, nil)
	case edtypes.MarkUnderline:
		return element(atom.U, nil)
	case edtypes.MarkStrike:
		return element(atom.S, nil)
	case edtypes.MarkCode:
		return element(atom.Code, nil)
	case edtypes.MarkLink:
		a := element(atom.A, nil)
		if href := edtypes.AttrString(mark.Attrs, "href"); href != "" {
			a.Attr = append(a.Attr, html.Attribute{Key: "href", Val: href})
		}
		return a
	case edtypes.MarkTextStyle:
		span := element(atom.Span, nil)
		if color := edtypes.AttrString(mark.Attrs, "color"); color != "" {
			span.Attr = append(span.Attr, html.Attribute{Key: "style", Val: fmt.Sprintf("color: %s", color)})
		}
		return span
	case edtypes.MarkHighlight:
		m := element(atom.Mark, nil)
		if color := edtypes.AttrString(mark.Attrs, "color"); color != "" {
			m.Attr = append(m.Attr, html.Attribute{Key: "data-color", Val: color})
		}
		return m
	}
	return nil
}
