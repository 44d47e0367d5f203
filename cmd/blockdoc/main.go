// Основной пакет сервиса BlockDoc. Отвечает за запуск приложения, чтение
// конфигурации, настройку логирования и запуск HTTP-сервера.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aisa-it/blockdoc/internal/blockdoc"
	"github.com/aisa-it/blockdoc/internal/blockdoc/config"
)

var version string = "DEV"

// Пример запуска: go run main.go --trace
func main() {
	trace := flag.Bool("trace", false, "Verbose logs")
	flag.Parse()

	PrintBanner()

	cfg := config.ReadConfig()

	if *trace {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Set prod log format
	if version != "DEV" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
	}

	slog.Info("BlockDoc start.", "listen", cfg.ListenAddress)

	blockdoc.Server(cfg, version)
}

// PrintBanner выводит заголовок приложения с версией. Использует color codes
// для выделения версии.
func PrintBanner() {
	banner := `
 ____  _            _    ____
| __ )| | ___   ___| | _|  _ \  ___   ___
|  _ \| |/ _ \ / __| |/ / | | |/ _ \ / __|
| |_) | | (_) | (__|   <| |_| | (_) | (__
|____/|_|\___/ \___|_|\_\____/ \___/ \___| %s
Block document mutation service
----------------------------------------------------
`
	colorReset := "\033[0m"
	colorYellow := "\033[33m"

	formattedVersion := version
	if version == "DEV" {
		formattedVersion = colorYellow + version + colorReset
	}

	fmt.Printf(banner, formattedVersion)
}
