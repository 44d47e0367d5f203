// Структуры запросов блочных команд с тегами валидации.
package blockdoc

type MoveBlockRequest struct {
	SourcePos int `json:"source_pos" validate:"gte=0"`
	TargetPos int `json:"target_pos" validate:"gte=0"`
}

type BlockPositionRequest struct {
	Pos int `json:"pos" validate:"gte=0"`
}

type ConvertBlockRequest struct {
	Pos        int            `json:"pos" validate:"gte=0"`
	TargetType string         `json:"target_type" validate:"required,blockType"`
	Attrs      map[string]any `json:"attrs,omitempty"`
}

type SetBlockColorRequest struct {
	Pos   int    `json:"pos" validate:"gte=0"`
	Color string `json:"color" validate:"required,blockColor"`
}

type ValidateDropRequest struct {
	SourcePos int `json:"source_pos" validate:"gte=0"`
	TargetPos int `json:"target_pos" validate:"gte=0"`
}

type ValidateConversionRequest struct {
	Pos        int            `json:"pos" validate:"gte=0"`
	TargetType string         `json:"target_type" validate:"required"`
	Attrs      map[string]any `json:"attrs,omitempty"`
}

type DropRequest struct {
	TargetPos int `json:"target_pos" validate:"gte=0"`
}

type FormulaRequest struct {
	Formula string `json:"formula" validate:"required"`
}
