package formula

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrRenderUnavailable = errors.New("formula renderer unavailable")

type ExternalRenderer struct {
	host   *url.URL
	token  string
	client *http.Client
}

func NewExternalRenderer(host *url.URL, token string) *ExternalRenderer {
	return &ExternalRenderer{
		host:  host,
		token: token,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (r *ExternalRenderer) RenderSVG(ctx context.Context, formula string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.host.ResolveReference(&url.URL{Path: "/render/svg"}).String(),
		strings.NewReader(formula))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Error("Request formula render", "err", err)
		return "", ErrRenderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("Formula render failed", "status", resp.StatusCode)
		return "", ErrRenderUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
