package formula

import (
	"context"
	"log/slog"

	"github.com/aisa-it/blockdoc/internal/blockdoc/config"
)

type RendererInt interface {
	RenderSVG(ctx context.Context, formula string) (string, error)
}

var Renderer RendererInt = NoopRenderer{}

func Init(cfg *config.Config) {
	if cfg.FormulaURL == nil {
		slog.Info("Formula rendering disabled")
		return
	}
	Renderer = NewExternalRenderer(cfg.FormulaURL, cfg.FormulaToken)
}
