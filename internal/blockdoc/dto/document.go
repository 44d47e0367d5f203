// Содержит структуры данных (DTO) для обмена состоянием документных сессий между сервисом и клиентами.
//
// Основные возможности:
//   - Представление сессии документа (DocumentResponse).
//   - Результаты команд с предупреждениями (CommandResponse).
//   - Результаты проверки позиции и конвертации (ValidationResponse).
//   - Буфер обмена (ClipboardResponse) и экспорт (MarkdownResponse).
package dto

import (
	"encoding/json"
)

type DocumentResponse struct {
	Id        string          `json:"id"`
	Document  json.RawMessage `json:"document"`
	Revision  int64           `json:"revision"`
	Cursor    *int            `json:"cursor,omitempty" extensions:"x-nullable"`
	DragPhase string          `json:"drag_phase"`
}

type CommandResponse struct {
	DocumentResponse
	Applied  bool     `json:"applied"`
	Warnings []string `json:"warnings,omitempty"`
}

type ValidationResponse struct {
	Valid  bool   `json:"valid"`
	Silent bool   `json:"silent,omitempty"`
	NoOp   bool   `json:"no_op,omitempty"`
	Lossy  bool   `json:"lossy,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type ClipboardResponse struct {
	PlainText string `json:"plain_text"`
	HTML      string `json:"html"`
}

type MarkdownResponse struct {
	Markdown string `json:"markdown"`
}

type FormulaResponse struct {
	SVG string `json:"svg"`
}

type SessionCountResponse struct {
	Count int `json:"count"`
}
