// Пакет blockdoc предоставляет функциональность для управления документными сессиями, включая создание, получение состояния, выполнение блочных команд и экспорт содержимого. Он предназначен для структурного редактирования документов по линейным позициям блоков, обеспечивая атомарность каждой команды.
package blockdoc

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"

	"github.com/aisa-it/blockdoc/internal/blockdoc/apierrors"
	"github.com/aisa-it/blockdoc/internal/blockdoc/dto"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/edtypes"
	"github.com/aisa-it/blockdoc/internal/blockdoc/editor/tiptap"
)

type DocumentContext struct {
	echo.Context
	DocId uuid.UUID
}

func (s *Services) DocumentMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		docId, err := uuid.FromString(c.Param("docId"))
		if err != nil {
			return EErrorDefined(c, apierrors.ErrDocumentNotFound)
		}
		return next(DocumentContext{c, docId})
	}
}

func (s *Services) AddDocumentServices(g *echo.Group) {
	g.POST("documents/", s.createDocument)
	g.GET("documents/", s.getSessionCount)

	docGroup := g.Group("documents/:docId", s.DocumentMiddleware)

	docGroup.GET("/", s.getDocument)
	docGroup.DELETE("/", s.deleteDocument)

	docGroup.POST("/blocks/move/", s.moveBlock)
	docGroup.POST("/blocks/duplicate/", s.duplicateBlock)
	docGroup.POST("/blocks/delete/", s.deleteBlock)
	docGroup.POST("/blocks/reset-formatting/", s.resetBlockFormatting)
	docGroup.POST("/blocks/convert/", s.convertBlockType)
	docGroup.POST("/blocks/color/", s.setBlockColor)

	docGroup.POST("/blocks/validate-drop/", s.validateDrop)
	docGroup.POST("/blocks/validate-conversion/", s.validateConversion)

	docGroup.GET("/blocks/:pos/clipboard/", s.copyBlock)
	docGroup.GET("/markdown/", s.exportMarkdown)

	s.addDragServices(docGroup)
}

// createDocument godoc
// @id createDocument
// @Summary документы: создание сессии редактирования
// @Description Создает сессию редактирования поверх переданного TipTap JSON. Пустое тело создает пустой документ
// @Tags Documents
// @Accept json
// @Produce json
// @Param warn_on_lossy query bool false "Предупреждать о преобразованиях, уплощающих структуру (по умолчанию true)"
// @Success 201 {object} dto.DocumentResponse "состояние новой сессии"
// @Failure 400 {object} apierrors.DefinedError "Некорректное тело документа"
// @Router /api/documents/ [post]
func (s *Services) createDocument(c echo.Context) error {
	var doc *edtypes.Node
	if c.Request().ContentLength != 0 {
		var err error
		doc, err = tiptap.ParseJSON(c.Request().Body)
		if err != nil {
			return EErrorDefined(c, apierrors.ErrDocumentBadRequest)
		}
	}

	var opts []editor.Option
	if v := c.QueryParam("warn_on_lossy"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts = append(opts, editor.WithWarnOnLossy(b))
		}
	}

	docId, err := s.store.Create(doc, opts...)
	if err != nil {
		return EError(c, err)
	}

	var resp dto.DocumentResponse
	if err := s.store.View(docId, func(e *editor.Engine) error {
		resp, err = documentResponse(docId, e.Snapshot())
		return err
	}); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// getDocument godoc
// @id getDocument
// @Summary документы: получение состояния сессии
// @Description Возвращает текущий документ, номер ревизии и фазу перетаскивания
// @Tags Documents
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Success 200 {object} dto.DocumentResponse "состояние сессии"
// @Failure 404 {object} apierrors.DefinedError "Сессия не найдена"
// @Router /api/documents/{docId}/ [get]
func (s *Services) getDocument(c echo.Context) error {
	docId := c.(DocumentContext).DocId

	var resp dto.DocumentResponse
	if err := s.store.View(docId, func(e *editor.Engine) error {
		var err error
		resp, err = documentResponse(docId, e.Snapshot())
		return err
	}); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// deleteDocument godoc
// @id deleteDocument
// @Summary документы: завершение сессии
// @Description Удаляет сессию редактирования из памяти
// @Tags Documents
// @Param docId path string true "Id сессии документа"
// @Success 204 "сессия удалена"
// @Router /api/documents/{docId}/ [delete]
func (s *Services) deleteDocument(c echo.Context) error {
	s.store.Delete(c.(DocumentContext).DocId)
	return c.NoContent(http.StatusNoContent)
}

// getSessionCount godoc
// @id getSessionCount
// @Summary документы: число активных сессий
// @Tags Documents
// @Produce json
// @Success 200 {object} dto.SessionCountResponse "число сессий"
// @Router /api/documents/ [get]
func (s *Services) getSessionCount(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.SessionCountResponse{Count: s.store.Count()})
}

// moveBlock godoc
// @id moveBlock
// @Summary блоки: перемещение блока
// @Description Перемещает блок с исходной позиции на целевую одной транзакцией
// @Tags Blocks
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body MoveBlockRequest true "Позиции"
// @Success 200 {object} dto.CommandResponse "результат команды"
// @Failure 400 {object} apierrors.DefinedError "Недопустимая позиция"
// @Failure 404 {object} apierrors.DefinedError "Сессия или блок не найдены"
// @Router /api/documents/{docId}/blocks/move/ [post]
func (s *Services) moveBlock(c echo.Context) error {
	var req MoveBlockRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	return s.execCommand(c, "move", func(e *editor.Engine) bool {
		return e.MoveBlock(req.SourcePos, req.TargetPos)
	})
}

// duplicateBlock godoc
// @id duplicateBlock
// @Summary блоки: дублирование блока
// @Description Вставляет глубокую копию блока сразу после оригинала
// @Tags Blocks
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body BlockPositionRequest true "Позиция блока"
// @Success 200 {object} dto.CommandResponse "результат команды"
// @Failure 404 {object} apierrors.DefinedError "Сессия не найдена"
// @Router /api/documents/{docId}/blocks/duplicate/ [post]
func (s *Services) duplicateBlock(c echo.Context) error {
	var req BlockPositionRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	return s.execCommand(c, "duplicate", func(e *editor.Engine) bool {
		return e.DuplicateBlock(req.Pos)
	})
}

// deleteBlock godoc
// @id deleteBlock
// @Summary блоки: удаление блока
// @Description Удаляет блок; последний блок документа заменяется пустым параграфом
// @Tags Blocks
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body BlockPositionRequest true "Позиция блока"
// @Success 200 {object} dto.CommandResponse "результат команды"
// @Failure 404 {object} apierrors.DefinedError "Сессия или блок не найдены"
// @Router /api/documents/{docId}/blocks/delete/ [post]
func (s *Services) deleteBlock(c echo.Context) error {
	var req BlockPositionRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	return s.execCommand(c, "delete", func(e *editor.Engine) bool {
		return e.DeleteBlock(req.Pos)
	})
}

// resetBlockFormatting godoc
// @id resetBlockFormatting
// @Summary блоки: сброс инлайн-форматирования
// @Description Снимает все инлайн-марки с текста внутри блока
// @Tags Blocks
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body BlockPositionRequest true "Позиция блока"
// @Success 200 {object} dto.CommandResponse "результат команды"
// @Failure 404 {object} apierrors.DefinedError "Сессия или блок не найдены"
// @Router /api/documents/{docId}/blocks/reset-formatting/ [post]
func (s *Services) resetBlockFormatting(c echo.Context) error {
	var req BlockPositionRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	return s.execCommand(c, "reset_formatting", func(e *editor.Engine) bool {
		return e.ResetBlockFormatting(req.Pos)
	})
}

// convertBlockType godoc
// @id convertBlockType
// @Summary блоки: смена типа блока
// @Description Преобразует блок в целевой тип с сохранением текстового содержимого
// @Tags Blocks
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body ConvertBlockRequest true "Позиция и целевой тип"
// @Success 200 {object} dto.CommandResponse "результат команды"
// @Failure 400 {object} apierrors.DefinedError "Недопустимое преобразование"
// @Failure 404 {object} apierrors.DefinedError "Сессия или блок не найдены"
// @Router /api/documents/{docId}/blocks/convert/ [post]
func (s *Services) convertBlockType(c echo.Context) error {
	var req ConvertBlockRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}
	return s.execCommand(c, "convert", func(e *editor.Engine) bool {
		return e.ConvertBlockType(req.Pos, edtypes.NodeType(req.TargetType), req.Attrs)
	})
}

// setBlockColor godoc
// @id setBlockColor
// @Summary блоки: смена цвета фона блока
// @Description Устанавливает цвет фона блока; transparent снимает подсветку
// @Tags Blocks
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body SetBlockColorRequest true "Позиция и цвет"
// @Success 200 {object} dto.CommandResponse "результат команды"
// @Failure 400 {object} apierrors.DefinedError "Некорректный цвет"
// @Failure 404 {object} apierrors.DefinedError "Сессия или блок не найдены"
// @Router /api/documents/{docId}/blocks/color/ [post]
func (s *Services) setBlockColor(c echo.Context) error {
	var req SetBlockColorRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrBlockColorInvalid)
	}
	return s.execCommand(c, "set_color", func(e *editor.Engine) bool {
		return e.SetBlockColor(req.Pos, req.Color)
	})
}

// validateDrop godoc
// @id validateDrop
// @Summary блоки: проверка позиции сброса
// @Description Проверяет допустимость сброса блока на целевую позицию без мутации документа
// @Tags Blocks
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body ValidateDropRequest true "Позиции"
// @Success 200 {object} dto.ValidationResponse "результат проверки"
// @Failure 404 {object} apierrors.DefinedError "Сессия не найдена"
// @Router /api/documents/{docId}/blocks/validate-drop/ [post]
func (s *Services) validateDrop(c echo.Context) error {
	var req ValidateDropRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	var resp dto.ValidationResponse
	if err := s.store.View(c.(DocumentContext).DocId, func(e *editor.Engine) error {
		snap := e.Snapshot()
		placed, ok := edtypes.PlacedAt(snap.Doc, req.SourcePos)
		if !ok {
			resp = dto.ValidationResponse{Reason: editor.ReasonNoBlockAtPosition}
			return nil
		}
		v := editor.ValidateDropPosition(req.SourcePos, req.TargetPos, placed.Node.Size(), snap.Doc.Size())
		resp = dto.ValidationResponse{Valid: v.IsValid, Silent: v.Silent(), Reason: v.Reason}
		return nil
	}); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// validateConversion godoc
// @id validateConversion
// @Summary блоки: проверка смены типа
// @Description Проверяет допустимость преобразования блока в целевой тип без мутации документа
// @Tags Blocks
// @Accept json
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param data body ValidateConversionRequest true "Позиция и целевой тип"
// @Success 200 {object} dto.ValidationResponse "результат проверки"
// @Failure 404 {object} apierrors.DefinedError "Сессия или блок не найдены"
// @Router /api/documents/{docId}/blocks/validate-conversion/ [post]
func (s *Services) validateConversion(c echo.Context) error {
	var req ValidateConversionRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	var resp dto.ValidationResponse
	if err := s.store.View(c.(DocumentContext).DocId, func(e *editor.Engine) error {
		snap := e.Snapshot()
		node := edtypes.NodeAt(snap.Doc, req.Pos)
		if node == nil {
			resp = dto.ValidationResponse{Reason: editor.ReasonNoBlockAtPosition}
			return nil
		}
		check := editor.IsConversionValid(node.Type, edtypes.NodeType(req.TargetType), node.Attrs, req.Attrs)
		resp = dto.ValidationResponse{Valid: check.Valid, NoOp: check.NoOp, Lossy: check.Lossy, Reason: check.Reason}
		return nil
	}); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// copyBlock godoc
// @id copyBlock
// @Summary блоки: копирование блока в буфер обмена
// @Description Возвращает блок в виде plain text и санитизированного HTML
// @Tags Blocks
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Param pos path int true "Позиция блока"
// @Success 200 {object} dto.ClipboardResponse "содержимое буфера"
// @Failure 404 {object} apierrors.DefinedError "Сессия или блок не найдены"
// @Router /api/documents/{docId}/blocks/{pos}/clipboard/ [get]
func (s *Services) copyBlock(c echo.Context) error {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil || pos < 0 {
		return EErrorDefined(c, apierrors.ErrBlockNotFound.WithFormattedMessage(c.Param("pos")))
	}

	var resp dto.ClipboardResponse
	if err := s.store.View(c.(DocumentContext).DocId, func(e *editor.Engine) error {
		node := edtypes.NodeAt(e.Snapshot().Doc, pos)
		if node == nil {
			return apierrors.ErrBlockNotFound.WithFormattedMessage(strconv.Itoa(pos))
		}
		payload, err := editor.CopyBlock(node)
		if err != nil {
			return err
		}
		resp = dto.ClipboardResponse{PlainText: payload.PlainText, HTML: payload.HTML}
		return nil
	}); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// exportMarkdown godoc
// @id exportMarkdown
// @Summary документы: экспорт в Markdown
// @Tags Documents
// @Produce json
// @Param docId path string true "Id сессии документа"
// @Success 200 {object} dto.MarkdownResponse "markdown документа"
// @Failure 404 {object} apierrors.DefinedError "Сессия не найдена"
// @Router /api/documents/{docId}/markdown/ [get]
func (s *Services) exportMarkdown(c echo.Context) error {
	var resp dto.MarkdownResponse
	if err := s.store.View(c.(DocumentContext).DocId, func(e *editor.Engine) error {
		markdown, err := editor.ToMarkdown(e.Snapshot().Doc)
		if err != nil {
			return err
		}
		resp = dto.MarkdownResponse{Markdown: markdown}
		return nil
	}); err != nil {
		return EError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// execCommand выполняет блочную команду над сессией и формирует ответ.
// Громкий отказ команды транслируется в DefinedError по причине отказа,
// тихий no-op возвращается как applied=false без ошибки.
func (s *Services) execCommand(c echo.Context, name string, cmd func(*editor.Engine) bool) error {
	docId := c.(DocumentContext).DocId

	var applied bool
	snap, warnings, err := s.store.Exec(docId, func(e *editor.Engine) error {
		applied = cmd(e)
		return nil
	})
	if err != nil {
		return EError(c, err)
	}
	countCommand(name, applied)

	if !applied && len(warnings) > 0 {
		return EErrorDefined(c, definedForReason(warnings[0].Reason))
	}

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

func documentResponse(docId uuid.UUID, snap editor.Snapshot) (dto.DocumentResponse, error) {
	raw, err := tiptap.Serialize(snap.Doc)
	if err != nil {
		return dto.DocumentResponse{}, err
	}
	return dto.DocumentResponse{
		Id:        docId.String(),
		Document:  raw,
		Revision:  snap.Revision,
		Cursor:    snap.Cursor,
		DragPhase: snap.DragPhase.String(),
	}, nil
}

// definedForReason сопоставляет причину отказа команды с API-ошибкой.
func definedForReason(reason string) apierrors.DefinedError {
	switch {
	case reason == editor.ReasonOutsideBounds:
		return apierrors.ErrDropOutOfBounds
	case reason == editor.ReasonDropOnSelf:
		return apierrors.ErrDropOnSelf
	case reason == editor.ReasonListItemConversion:
		return apierrors.ErrConversionUnsupported
	case reason == editor.ReasonUnknownTargetType:
		return apierrors.ErrConversionTargetInvalid
	case reason == editor.ReasonNoInsertionPoint:
		return apierrors.ErrNoInsertionPoint
	case strings.HasPrefix(reason, editor.ReasonNoBlockAtPosition):
		pos := strings.TrimPrefix(reason, editor.ReasonNoBlockAtPosition+": ")
		return apierrors.ErrBlockNotFound.WithFormattedMessage(pos)
	}
	err := apierrors.ErrGeneric
	err.StatusCode = http.StatusBadRequest
	err.Err = reason
	return err
}
