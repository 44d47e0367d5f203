// Пакет содержит определения ошибок, используемых в blockdoc для обработки ситуаций, возникающих при работе с документами, блочными командами, drag-n-drop сессиями и внешними сервисами.  Каждая ошибка имеет код, статус HTTP и описание, что позволяет удобно обрабатывать исключения и предоставлять информативные сообщения пользователю.
//
// Основные возможности:
//   - Определение типов ошибок, связанных с документами, позициями блоков, конвертацией типов, drag-n-drop взаимодействием и рендерингом формул.
//   - Предоставление кодов ошибок, соответствующих кодам HTTP статусов.
//   - Включение сообщений об ошибках для удобной обработки и отображения пользователю.
//   - Функция для форматирования сообщений об ошибках с использованием аргументов.
package apierrors

import (
	"fmt"
	"net/http"
	"strings"
)

type DefinedError struct {
	Code       int    `json:"code"`
	StatusCode int    `json:"-"`
	Err        string `json:"error"`
	RuErr      string `json:"ru_error,omitempty"`
}

func (e DefinedError) Error() string {
	return e.Err
}

var (
	// 1*** - document errors
	ErrDocumentNotFound   = DefinedError{Code: 1001, StatusCode: http.StatusNotFound, Err: "document not found", RuErr: "Документ не найден"}
	ErrDocumentBadRequest = DefinedError{Code: 1002, StatusCode: http.StatusBadRequest, Err: "malformed document body", RuErr: "Некорректное тело документа"}
	ErrDocumentTooLarge   = DefinedError{Code: 1003, StatusCode: http.StatusRequestEntityTooLarge, Err: "document exceeds size limit", RuErr: "Документ превышает допустимый размер"}
	ErrDocumentValidate   = DefinedError{Code: 1004, StatusCode: http.StatusBadRequest, Err: "document failed validation", RuErr: "Документ не прошел валидацию"}

	// 2*** - block and position errors
	ErrBlockNotFound           = DefinedError{Code: 2001, StatusCode: http.StatusNotFound, Err: "no block at position %s", RuErr: "Блок на позиции %s не найден"}
	ErrDropOutOfBounds         = DefinedError{Code: 2002, StatusCode: http.StatusBadRequest, Err: "position is outside document bounds", RuErr: "Позиция за пределами документа"}
	ErrDropOnSelf              = DefinedError{Code: 2003, StatusCode: http.StatusBadRequest, Err: "cannot drop onto itself", RuErr: "Нельзя переместить блок внутрь самого себя"}
	ErrConversionUnsupported   = DefinedError{Code: 2004, StatusCode: http.StatusBadRequest, Err: "block type cannot be converted", RuErr: "Блок этого типа не поддерживает конвертацию"}
	ErrConversionTargetInvalid = DefinedError{Code: 2005, StatusCode: http.StatusBadRequest, Err: "unknown conversion target", RuErr: "Неизвестный целевой тип блока"}
	ErrBlockColorInvalid       = DefinedError{Code: 2006, StatusCode: http.StatusBadRequest, Err: "invalid block color", RuErr: "Некорректный цвет блока"}
	ErrNoInsertionPoint        = DefinedError{Code: 2007, StatusCode: http.StatusBadRequest, Err: "no insertion point at position", RuErr: "На этой позиции нет точки вставки"}

	// 3*** - drag session errors
	ErrDragTransition = DefinedError{Code: 3001, StatusCode: http.StatusConflict, Err: "invalid drag transition", RuErr: "Недопустимый переход drag-n-drop сессии"}

	// 4*** - formula errors
	ErrFormulaRenderFail = DefinedError{Code: 4001, StatusCode: http.StatusBadGateway, Err: "formula rendering failed", RuErr: "Не удалось отрисовать формулу"}

	// 5*** - generic errors
	ErrGeneric    = DefinedError{Code: 5000, StatusCode: http.StatusInternalServerError, Err: "internal error", RuErr: "Внутренняя ошибка сервиса"}
	ErrValidation = DefinedError{Code: 5001, StatusCode: http.StatusBadRequest, Err: "validation failed: %s", RuErr: "Ошибка валидации: %s"}
)

func (e DefinedError) WithFormattedMessage(args ...interface{}) DefinedError {
	if len(args) > 0 {
		e.Err = fmt.Sprintf(e.Err, args...)
		e.RuErr = fmt.Sprintf(e.RuErr, args...)
	} else {
		e.Err = strings.Replace(e.Err, "%s", "", -1)
		e.RuErr = strings.Replace(e.RuErr, "%s", "", -1)
	}
	return e
}
