// Обработчики drag-n-drop взаимодействия с документной сессией.
// Каждый endpoint транслирует событие указателя в переход конечного
// автомата перетаскивания; нелегальные переходы возвращают 409.
package blockdoc

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aisa-it/blockdoc/internal/blockdoc/apierrors"
	"github.com/aisa-it/blockdoc/internal/blockdoc/dto"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor"
)

func (s *Services) addDragServices(docGroup *echo.Group) {
	docGroup.POST("/drag/hover-enter/", s.dragHoverEnter)
	docGroup.POST("/drag/hover-leave/", s.dragHoverLeave)
	docGroup.POST("/drag/start/", s.dragStart)
	docGroup.POST("/drag/drop/", s.dragDrop)
	docGroup.POST("/drag/cancel/", s.dragCancel)
}

// dragHoverEnter godoc
// @id dragHoverEnter
// @Summary drag: вход указателя в зону блока
// @Description Переводит сессию в Hovering; повторный вход обновляет позицию
// @Tags Drag
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body BlockPositionRequest true "Позиция блока"
// @Success 200 {object} dto.DocumentResponse "состояние сессии"
// @Failure 409 {object} apierrors.DefinedError "Недопустимый переход"
// @Router /api/documents/{docId}/drag/hover-enter/ [post]
func (s *Services) dragHoverEnter(c echo.Context) error {
	var req BlockPositionRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	return s.execDragEvent(c, func(e *editor.Engine) error {
		return e.HoverEnter(req.Pos)
	})
}

// dragHoverLeave godoc
// @id dragHoverLeave
// @Summary drag: уход указателя с блока
// @Tags Drag
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Success 200 {object} dto.DocumentResponse "состояние сессии"
// @Failure 409 {object} apierrors.DefinedError "Недопустимый переход"
// @Router /api/documents/{docId}/drag/hover-leave/ [post]
func (s *Services) dragHoverLeave(c echo.Context) error {
	return s.execDragEvent(c, func(e *editor.Engine) error {
		return e.HoverLeave()
	})
}

// dragStart godoc
// @id dragStart
// @Summary drag: начало перетаскивания блока
// @Description Захватывает исходную позицию, размер блока и ревизию документа
// @Tags Drag
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body BlockPositionRequest true "Исходная позиция блока"
// @Success 200 {object} dto.DocumentResponse "состояние сессии"
// @Failure 404 {object} apierrors.DefinedError "Блок не найден"
// @Failure 409 {object} apierrors.DefinedError "Недопустимый переход"
// @Router /api/documents/{docId}/drag/start/ [post]
func (s *Services) dragStart(c echo.Context) error {
	var req BlockPositionRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	return s.execDragEvent(c, func(e *editor.Engine) error {
		return e.DragStart(req.Pos)
	})
}

// dragDrop godoc
// @id dragDrop
// @Summary drag: сброс блока на целевую позицию
// @Description Валидный сброс фиксирует перемещение, невалидный откатывается без мутации
// @Tags Drag
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body DropRequest true "Целевая позиция"
// @Success 200 {object} dto.CommandResponse "результат сброса"
// @Failure 409 {object} apierrors.DefinedError "Недопустимый переход"
// @Router /api/documents/{docId}/drag/drop/ [post]
func (s *Services) dragDrop(c echo.Context) error {
	var req DropRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	docId := c.(DocumentContext).DocId
	var applied bool
	snap, warnings, err := s.store.Exec(docId, func(e *editor.Engine) error {
		var err error
		applied, err = e.Drop(req.TargetPos)
		return err
	})
	if err != nil {
		return s.dragError(c, err)
	}
	countCommand("drop", applied)

	docResp, err := documentResponse(docId, snap)
	if err != nil {
		return EError(c, err)
	}
	resp := dto.CommandResponse{DocumentResponse: docResp, Applied: applied}
	for _, w := range warnings {
		resp.Warnings = append(resp.Warnings, w.Reason)
	}
	return c.JSON(http.StatusOK, resp)
}

// dragCancel godoc
// @id dragCancel
// @Summary drag: отмена перетаскивания
// @Description Возвращает автомат в Idle; документ гарантированно не изменен
// @Tags Drag
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Success 200 {object} dto.DocumentResponse "состояние сессии"
// @Failure 409 {object} apierrors.DefinedError "Недопустимый переход"
// @Router /api/documents/{docId}/drag/cancel/ [post]
func (s *Services) dragCancel(c echo.Context) error {
	return s.execDragEvent(c, func(e *editor.Engine) error {
		return e.DragCancel()
	})
}

func (s *Services) execDragEvent(c echo.Context, event func(*editor.Engine) error) error {
	docId := c.(DocumentContext).DocId

	snap, _, err := s.store.Exec(docId, event)
	if err != nil {
		return s.dragError(c, err)
	}

	resp, err := documentResponse(docId, snap)
	if err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// dragError различает ошибки сессии и нелегальные переходы автомата.
func (s *Services) dragError(c echo.Context, err error) error {
	if defined, ok := err.(apierrors.DefinedError); ok {
		return EErrorDefined(c, defined)
	}
	if strings.HasPrefix(err.Error(), editor.ReasonNoBlockAtPosition) {
		pos := strings.TrimPrefix(err.Error(), editor.ReasonNoBlockAtPosition+": ")
		return EErrorDefined(c, apierrors.ErrBlockNotFound.WithFormattedMessage(pos))
	}
	er := apierrors.ErrDragTransition
	er.Err = err.Error()
	return EErrorDefined(c, er)
}
