package tiptap

import (
	"encoding/json"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

// Serialize сериализует дерево нод в TipTap JSON.
// Пустые наборы атрибутов и марок опускаются на уровне тегов модели,
// поэтому очищенный backgroundColor не оставляет за собой пустой attrs.
func Serialize(doc *edtypes.Node) ([]byte, error) {
	return json.Marshal(doc)
}

// SerializeIndent сериализует документ с отступами для отладки и docsgen.
func SerializeIndent(doc *edtypes.Node) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
