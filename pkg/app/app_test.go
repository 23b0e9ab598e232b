package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/gridlayout/pkg/components"
	"github.com/decker502/gridlayout/pkg/embedded"
	"github.com/decker502/gridlayout/pkg/grid"
)

// TestLoadConfigEmbedded 内置配置优先
func TestLoadConfigEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/grids/default.yaml": {Data: []byte("id: embedded\nwidth: 6\ndepth: 4\n")},
	})
	defer embedded.Init(nil)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.ID != "embedded" || cfg.Width != 6 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

// TestLoadConfigFallback 未初始化内置资源时使用内建默认值
func TestLoadConfigFallback(t *testing.T) {
	embedded.Init(nil)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.ID != "default" || cfg.Width != 10 || cfg.Depth != 10 {
		t.Errorf("unexpected default config: %+v", cfg)
	}
}

// TestLoadConfigFile 从磁盘加载
func TestLoadConfigFile(t *testing.T) {
	embedded.Init(nil)
	path := filepath.Join(t.TempDir(), "g.yaml")
	if err := os.WriteFile(path, []byte("id: disk\nwidth: 3\ndepth: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.ID != "disk" {
		t.Errorf("ID = %q, want disk", cfg.ID)
	}
}

// TestStatusLines 状态栏内容
func TestStatusLines(t *testing.T) {
	spec := grid.Spec{Width: 12, Depth: 18, CellSize: 6, MaxDimension: 999, Origin: grid.TopLeft}
	layout, err := grid.Layout(grid.Vec3{}, spec)
	if err != nil {
		t.Fatal(err)
	}
	options, _, _ := grid.SelectSize(grid.EnumerateDivisorSizes(12, 18), "6")

	g := &components.GridComponent{
		ID:          "courtyard",
		Spec:        spec,
		SizeOptions: options,
		Layout:      layout,
		Hover:       grid.CellIndex{X: 1, Z: 0},
		HasHover:    true,
	}

	lines := StatusLines(g, true, "play mode")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "PLAY  grid courtyard  12x18  cell 6  cells 2x3  origin topLeft") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "sizes: 1 2 3 [6]" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "hover: 1, 0\n(3.0, 0.0, 6.0)") {
		t.Errorf("line 2 = %q", lines[2])
	}
	if lines[3] != "play mode" {
		t.Errorf("line 3 = %q", lines[3])
	}
}

// TestCameraBounds 镜头适配遵循网格的四角模式
func TestCameraBounds(t *testing.T) {
	spec := grid.Spec{Width: 4, Depth: 6, CellSize: 2, MaxDimension: 999, Origin: grid.BottomRight}
	anchor := grid.Vec3{X: 1, Z: 1}

	g := &components.GridComponent{Spec: spec, BoundsMode: grid.BoundsLegacy}
	b := CameraBounds(g, anchor)
	if b.BottomRight != b.BottomLeft {
		t.Errorf("legacy bounds without layout: BottomRight = %v, want %v", b.BottomRight, b.BottomLeft)
	}

	layout, err := grid.LayoutWithMode(anchor, spec, grid.BoundsLegacy)
	if err != nil {
		t.Fatal(err)
	}
	g.Layout = layout
	if got := CameraBounds(g, grid.Vec3{X: 100}); got != layout.Bounds {
		t.Errorf("CameraBounds should use layout bounds, got %+v", got)
	}
}
