// Линейная адресация позиций в дереве документа.
//
// Каждый блок занимает nodeSize позиций: contentSize плюс по одной позиции
// на открывающую и закрывающую границу. Текстовые узлы занимают по позиции
// на руну и границ не имеют, атомы (hardBreak, horizontalRule) занимают одну
// позицию. Корень doc границ не несет: размер документа равен размеру его
// содержимого.
//
// Позиции действительны только до следующей зафиксированной транзакции:
// команды обязаны разрешать их из актуального документа в момент вызова.
package edtypes

// Placed — блок с вычисленным положением в линейном адресном пространстве.
type Placed struct {
	Node   *Node
	Parent *Node
	Index  int
	Pos    int
}

// Gap — точка вставки между блоками: контейнер и индекс в его содержимом.
type Gap struct {
	Parent *Node
	Index  int
	Pos    int
}

// Size возвращает число позиций, занимаемых узлом вместе с его границами.
func (n *Node) Size() int {
	switch {
	case n.IsText():
		return n.TextLen()
	case n.IsAtom():
		return 1
	case n.Type == TypeDoc:
		return n.ContentSize()
	default:
		return n.ContentSize() + 2
	}
}

// ContentSize возвращает суммарный размер содержимого узла без его границ.
func (n *Node) ContentSize() int {
	total := 0
	for _, child := range n.Content {
		total += child.Size()
	}
	return total
}

// Index обходит дерево и возвращает все блоки документа со стартовыми позициями
// в порядке следования. Индекс перестраивается на каждую команду и не переживает
// транзакций.
func Index(doc *Node) []Placed {
	var placed []Placed
	var walk func(parent *Node, start int)
	walk = func(parent *Node, start int) {
		offset := start
		for i, child := range parent.Content {
			if child.IsBlock() {
				placed = append(placed, Placed{Node: child, Parent: parent, Index: i, Pos: offset})
				walk(child, offset+1)
			}
			offset += child.Size()
		}
	}
	walk(doc, 0)
	return placed
}

// PlacedAt возвращает блок, начинающийся точно в позиции pos, вместе с его
// родителем и индексом. Если блока с такой стартовой позицией нет, ok == false.
func PlacedAt(doc *Node, pos int) (Placed, bool) {
	for _, p := range Index(doc) {
		if p.Pos == pos {
			return p, true
		}
		if p.Pos > pos {
			break
		}
	}
	return Placed{}, false
}

// NodeAt возвращает блок, начинающийся в позиции pos, либо nil.
func NodeAt(doc *Node, pos int) *Node {
	p, ok := PlacedAt(doc, pos)
	if !ok {
		return nil
	}
	return p.Node
}

// GapAt разрешает позицию pos в точку вставки между блоками. Позиция валидна,
// если она попадает на границу между дочерними блоками какого-либо контейнера;
// предпочтение отдается самому внешнему контейнеру.
func GapAt(doc *Node, pos int) (Gap, bool) {
	return gapIn(doc, 0, pos)
}

func gapIn(container *Node, start, pos int) (Gap, bool) {
	offset := start
	for i, child := range container.Content {
		if pos == offset {
			return Gap{Parent: container, Index: i, Pos: pos}, true
		}
		end := offset + child.Size()
		if pos < end {
			// Позиция внутри ребёнка: спускаемся только в контейнеры с блочным содержимым.
			if !child.IsBlock() || !child.HasBlockContent() {
				return Gap{}, false
			}
			return gapIn(child, offset+1, pos)
		}
		offset = end
	}
	if pos == offset {
		return Gap{Parent: container, Index: len(container.Content), Pos: pos}, true
	}
	return Gap{}, false
}
