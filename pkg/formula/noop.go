package formula

import "context"

// NoopRenderer используется, когда внешний рендерер формул не настроен.
type NoopRenderer struct{}

func (NoopRenderer) RenderSVG(_ context.Context, _ string) (string, error) {
	return "", ErrRenderUnavailable
}
