// Interactive terminal viewer for province maps: drag to pan, wheel to
// zoom, click a province to highlight it.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kass/go-province-map/pkg/config"
	"github.com/kass/go-province-map/pkg/mapview"
)

func main() {
	configFile := flag.String("config", "province-map.yaml", "Config file path")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level)
	defer logger.Sync()

	mv := mapview.New(cfg, logger)

	var path string
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	p := tea.NewProgram(newModel(mv, path),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger writes diagnostics to a side file so they do not tear up the
// alt screen.
func newLogger(level string) *zap.Logger {
	lvl := zapcore.WarnLevel
	_ = lvl.Set(level)

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapCfg.OutputPaths = []string{"province-map.log"}
	zapCfg.ErrorOutputPaths = []string{"province-map.log"}

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
