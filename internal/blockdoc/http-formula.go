// Рендеринг формул через внешний сервис.
package blockdoc

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aisa-it/blockdoc/internal/blockdoc/apierrors"
	"github.com/aisa-it/blockdoc/internal/blockdoc/dto"
	"github.com/aisa-it/blockdoc/pkg/formula"
)

func (s *Services) AddFormulaServices(g *echo.Group) {
	g.POST("formula/", s.renderFormula)
}

// renderFormula godoc
// @id renderFormula
// @Summary Формулы: рендеринг формулы в SVG
// @Description Проксирует формулу во внешний рендерер. Без настроенного FORMULA_URL всегда возвращает 502.
// @Tags Formula
// @Accept json
// @Produce json
// @Param data body FormulaRequest true "Исходный текст формулы"
// @Success 200 {object} dto.FormulaResponse "SVG разметка"
// @Failure 400 {object} apierrors.DefinedError "Некорректный запрос"
// @Failure 502 {object} apierrors.DefinedError "Рендерер недоступен"
// @Router /api/formula/ [post]
func (s *Services) renderFormula(c echo.Context) error {
	var req FormulaRequest
	if err := c.Bind(&req); err != nil {
		return EError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return EErrorDefined(c, apierrors.ErrValidation.WithFormattedMessage(err.Error()))
	}

	svg, err := formula.Renderer.RenderSVG(c.Request().Context(), req.Formula)
	if err != nil {
		if errors.Is(err, formula.ErrRenderUnavailable) {
			return EErrorDefined(c, apierrors.ErrFormulaRenderFail)
		}
		return EError(c, err)
	}

	return c.JSON(http.StatusOK, dto.FormulaResponse{SVG: svg})
}
