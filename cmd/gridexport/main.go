// Package main 导出网格布局的命令行工具
//
// Usage:
//
//	go run ./cmd/gridexport --config data/grids/courtyard.yaml [flags]
//
// Flags:
//
//	--config <path>   网格配置文件（YAML），为空时使用内置默认配置
//	--size <name>     指定候选尺寸（宽深的公约数，如 --size=3）
//	--out <path>      YAML 输出路径，为空时写到标准输出
//	--plot <path>     额外保存布局示意图（.png/.svg/.pdf）
//	--verbose         输出日志
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/gridlayout/pkg/config"
	"github.com/decker502/gridlayout/pkg/export"
)

func main() {
	configPath := flag.String("config", "", "Grid config file (YAML)")
	sizeName := flag.String("size", "", "Cell size option to enable (divisor name)")
	outPath := flag.String("out", "", "Output YAML path (default stdout)")
	plotPath := flag.String("plot", "", "Optional layout plot path (.png/.svg/.pdf)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(*configPath, *sizeName, *outPath, *plotPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, sizeName, outPath, plotPath string) error {
	cfg := config.DefaultGridConfig()
	if configPath != "" {
		loaded, err := config.LoadGridConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	log.Printf("[gridexport] Grid %q: %vx%v cellSize=%v origin=%s",
		cfg.ID, cfg.Width, cfg.Depth, cfg.CellSize, cfg.Origin)

	doc, layout, err := export.BuildDocument(cfg, sizeName, time.Now())
	if err != nil {
		return err
	}
	log.Printf("[gridexport] Layout %s: %dx%d cells", doc.LayoutID, doc.CountX, doc.CountZ)

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer f.Close()
		w = f
	}
	if err := export.WriteYAML(w, doc); err != nil {
		return err
	}

	if plotPath != "" {
		title := cfg.Name
		if title == "" {
			title = cfg.ID
		}
		if err := export.SavePlot(layout, title, plotPath); err != nil {
			return err
		}
		log.Printf("[gridexport] Plot saved to %s", plotPath)
	}
	return nil
}
