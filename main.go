// Package main 网格预览工具
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>     网格配置文件（默认使用内置 data/grids/default.yaml）
//	--app-name <name>   gdata 存储名称，用于跨会话保留选中的格子尺寸
//	--play              以运行模式启动
//	--verbose           输出详细日志
//
// Controls:
//
//	Left/Right        - 切换候选格子尺寸
//	Up/Down           - 调整网格宽度（按住 Shift 调整深度）
//	O                 - 切换起点角
//	P                 - 切换编辑/运行模式
//	B / C / G / I     - 显示或隐藏 边界 / 四角 / 格子 / 格子标签
//	F                 - 镜头适配整个网格
//	Mouse Wheel       - 缩放
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/gridlayout/pkg/app"
	"github.com/decker502/gridlayout/pkg/config"
	"github.com/decker502/gridlayout/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configFlag  = flag.String("config", "", "Grid config YAML path (default: embedded data/grids/default.yaml)")
	appNameFlag = flag.String("app-name", "gridlayout", "gdata storage name for persisted size selection (empty disables persistence)")
	playFlag    = flag.Bool("play", false, "Start in play mode")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		AppName:    *appNameFlag,
		PlayMode:   *playFlag,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，直接输出到 stderr
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Grid Layout Preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
