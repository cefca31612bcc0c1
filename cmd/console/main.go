package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jwebster45206/castle-clerk/internal/analytics"
	"github.com/jwebster45206/castle-clerk/internal/config"
	"github.com/jwebster45206/castle-clerk/internal/geo"
	"github.com/jwebster45206/castle-clerk/internal/logger"
	"github.com/jwebster45206/castle-clerk/internal/share"
)

const analyticsQueueSize = 256

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprint(os.Stderr, fatalView(fmt.Errorf("%v", r)))
			code = 1
		}
	}()

	// A missing .env is normal; the console has nowhere to log it yet.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprint(os.Stderr, fatalView(err))
		return 1
	}

	// Logs must stay off the terminal the TUI is drawing on.
	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprint(os.Stderr, fatalView(err))
		return 1
	}
	defer logFile.Close()
	log := logger.SetupWriter(cfg, logFile)

	var sink analytics.Sink = analytics.NewLogSink(log)
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisSink, err := analytics.NewRedisSink(ctx, cfg.RedisURL, log)
		cancel()
		if err != nil {
			log.Warn("Analytics storage unavailable, logging events instead", "error", err)
		} else {
			sink = analytics.NewAsyncSink(redisSink, analyticsQueueSize, log)
		}
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Error("Error closing analytics sink", "error", err)
		}
	}()

	ui := NewConsoleUI(Deps{
		Config:  cfg,
		Sink:    sink,
		Locator: geo.NewClient(cfg.GeoURL, cfg.GeoTimeout, log),
		Share:   share.NewClipboard(),
		Logger:  log,
	})

	p := tea.NewProgram(ui,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("Program exited with error", "error", err)
		fmt.Fprint(os.Stderr, fatalView(err))
		return 1
	}
	return 0
}
