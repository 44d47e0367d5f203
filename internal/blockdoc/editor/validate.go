// Чистые правила валидации перемещений и преобразований блоков.
// Функции не имеют побочных эффектов и ничего не знают о рендеринге:
// они проверяются независимо на произвольных кортежах позиций.
package editor

import (
	"reflect"

	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
)

// Причины отклонения операций. Тексты являются контрактом для слоя представления.
const (
	ReasonOutsideBounds      = "outside document bounds"
	ReasonDropOnSelf         = "cannot drop onto itself"
	ReasonAlreadyAtPosition  = "already at this position"
	ReasonAlreadyThisType    = "already this type"
	ReasonListItemConversion = "list items convert only as part of their parent list"
	ReasonUnknownTargetType  = "unsupported target block type"
	ReasonNoBlockAtPosition  = "no block at this position"
	ReasonNoInsertionPoint   = "no insertion point at this position"
	ReasonDragAborted        = "drag aborted by document mutation"
)

// DropValidation — результат проверки позиции сброса перетаскиваемого блока.
type DropValidation struct {
	IsValid bool   `json:"is_valid"`
	Reason  string `json:"reason,omitempty"`
}

// Silent возвращает true для отклонений, о которых пользователю не сообщается
// (сброс в исходную позицию — ожидаемый no-op, а не ошибка).
func (v DropValidation) Silent() bool {
	return v.Reason == ReasonAlreadyAtPosition
}

// ValidateDropPosition проверяет, допустим ли перенос блока размером nodeSize,
// начинающегося в sourcePos, в позицию targetPos документа размером docSize.
//
// Порядок проверок фиксирован: границы документа, затем no-op по краям
// собственного диапазона (тихий отказ), затем попадание внутрь собственного
// диапазона.
func ValidateDropPosition(sourcePos, targetPos, nodeSize, docSize int) DropValidation {
	if sourcePos < 0 || targetPos < 0 || targetPos > docSize {
		return DropValidation{Reason: ReasonOutsideBounds}
	}
	if targetPos == sourcePos || targetPos == sourcePos+nodeSize {
		return DropValidation{Reason: ReasonAlreadyAtPosition}
	}
	if targetPos > sourcePos && targetPos < sourcePos+nodeSize {
		return DropValidation{Reason: ReasonDropOnSelf}
	}
	return DropValidation{IsValid: true}
}

// ConversionCheck — результат проверки смены типа блока.
type ConversionCheck struct {
	Valid  bool   `json:"valid"`
	NoOp   bool   `json:"no_op"`
	Lossy  bool   `json:"lossy"`
	Reason string `json:"reason,omitempty"`
}

// Допустимые целевые типы преобразования. Закрытое множество: добавление
// нового типа блока требует ветки в rebuildAs.
func isConvertTarget(t edtypes.NodeType) bool {
	switch t {
	case edtypes.TypeParagraph, edtypes.TypeHeading, edtypes.TypeBulletList,
		edtypes.TypeOrderedList, edtypes.TypeCodeBlock, edtypes.TypeBlockquote:
		return true
	}
	return false
}

// IsConversionValid решает, допустимо ли преобразование блока sourceType в
// targetType. Элементы списков преобразуются только вместе с родительским
// списком. Совпадение типа и значимых атрибутов — валидный no-op, кроме
// цитаты: повторное преобразование в blockquote — это её снятие.
func IsConversionValid(sourceType, targetType edtypes.NodeType, sourceAttrs, targetAttrs map[string]any) ConversionCheck {
	if sourceType == edtypes.TypeListItem {
		return ConversionCheck{Reason: ReasonListItemConversion}
	}
	if !isConvertTarget(targetType) {
		return ConversionCheck{Reason: ReasonUnknownTargetType}
	}
	if sourceType == targetType && targetType != edtypes.TypeBlockquote &&
		reflect.DeepEqual(convertAttrs(targetType, sourceAttrs), convertAttrs(targetType, targetAttrs)) {
		return ConversionCheck{Valid: true, NoOp: true, Reason: ReasonAlreadyThisType}
	}
	return ConversionCheck{Valid: true, Lossy: conversionLossy(sourceType, targetType)}
}

// convertAttrs нормализует значимые для преобразования атрибуты типа.
// Цвет фона и прочие косметические атрибуты на тип блока не влияют.
func convertAttrs(t edtypes.NodeType, attrs map[string]any) map[string]any {
	if t == edtypes.TypeHeading {
		return map[string]any{"level": headingLevel(attrs)}
	}
	return nil
}

// headingLevel возвращает уровень заголовка из атрибутов, ограниченный 1..6.
func headingLevel(attrs map[string]any) int {
	level := edtypes.AttrInt(attrs, "level")
	if level < 1 {
		return 2
	}
	if level > 6 {
		return 6
	}
	return level
}

// conversionLossy отмечает преобразования, уплощающие вложенную структуру.
// Разрешены, но слой представления может предупреждать пользователя.
func conversionLossy(source, target edtypes.NodeType) bool {
	switch source {
	case edtypes.TypeBulletList, edtypes.TypeOrderedList:
		// Смена вида списка сохраняет элементы, остальное уплощает.
		return target != edtypes.TypeBulletList && target != edtypes.TypeOrderedList
	case edtypes.TypeBlockquote:
		return target != edtypes.TypeBlockquote
	}
	return false
}
