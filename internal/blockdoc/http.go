// Пакет blockdoc предоставляет HTTP-сервис структурного редактирования документов. Он включает в себя функциональность для создания документных сессий, выполнения блочных команд (перемещение, дублирование, удаление, смена типа и цвета), валидации позиций перетаскивания и экспорта содержимого. Также предоставляет API для интеграции с внешним рендерером формул.
//
// Основные возможности:
//   - Управление сессиями редактирования документов в памяти.
//   - Выполнение атомарных команд над блоками документа.
//   - Поддержка drag-n-drop взаимодействия через конечный автомат сессии.
//   - Экспорт блоков в HTML-буфер обмена и документов в Markdown.
package blockdoc

// @title BlockDoc API
// @version 1.0
// @description Block document mutation service.
// @BasePath /
// @query.collection.format multi
import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aisa-it/blockdoc/internal/blockdoc/config"
	store "github.com/aisa-it/blockdoc/internal/blockdoc/memory-store"
	"github.com/aisa-it/blockdoc/pkg/formula"
)

//go:generate go run ../../../cmd/docsgen/main.go -src apierrors/apierrors.go -out ../../../docs/api_errors.md

type Services struct {
	store *store.DocumentStore
}

var cfg *config.Config
var appVersion string

// ServerHeader middleware adds a `Server` header to the response.
func ServerHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderServer, "BlockDoc")
		return next(c)
	}
}

func Server(c *config.Config, version string) {
	cfg = c
	appVersion = version

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}

		// Ignore 404
		if code == http.StatusNotFound {
			c.NoContent(http.StatusNotFound)
			return
		}
		slog.Error("Unhandled error in endpoint", "url", c.Request().URL, "err", err)
		EErrorMsgStatus(c, nil, code)
	}

	formula.Init(cfg)

	s := &Services{
		store: store.NewDocumentStore(time.Duration(cfg.DocumentTTL) * time.Minute),
	}

	// Global middlewares
	e.Use(ServerHeader)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Limit: fmt.Sprintf("%dB", cfg.MaxBodySize),
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     9,
		MinLength: 2048,
	}))
	if cfg.MetricsEnable {
		e.Use(echoprometheus.NewMiddleware("blockdoc"))
	}
	e.Pre(middleware.AddTrailingSlash())

	e.Validator = NewRequestValidator()

	apiGroup := e.Group("/api/")

	s.AddDocumentServices(apiGroup)
	s.AddFormulaServices(apiGroup)

	// Version endpoint
	apiGroup.GET("version/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"version": version,
			"demo":    cfg.Demo,
		})
	})

	// Health endpoint
	apiGroup.GET("_health/", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Prometheus metrics
	if cfg.MetricsEnable {
		go func() {
			bootTimeGauge := prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "blockdoc",
				Name:      "boot_time",
				Help:      "Server startup time",
			})
			bootTimeGauge.Set(float64(time.Now().UnixMilli()))

			if err := prometheus.Register(bootTimeGauge); err != nil {
				slog.Error("Register boot time gauge", "err", err)
				os.Exit(1)
			}
			if err := registerMetrics(); err != nil {
				slog.Error("Register command metrics", "err", err)
				os.Exit(1)
			}

			metrics := echo.New()
			metrics.HideBanner = true
			metrics.GET("/metrics", echoprometheus.NewHandler())
			if err := metrics.Start(":2112"); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server fail", "err", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down gracefully, press Ctrl+C again to force")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown", "err", err)
		}
	}()

	if err := e.Start(cfg.ListenAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server fail", "err", err)
	}
}
