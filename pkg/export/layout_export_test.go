package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/decker502/gridlayout/pkg/config"
	"github.com/decker502/gridlayout/pkg/grid"
)

func exportConfig() *config.GridConfig {
	cfg := config.DefaultGridConfig()
	cfg.ID = "courtyard"
	cfg.Width = 12
	cfg.Depth = 18
	cfg.Origin = grid.TopLeft
	return cfg
}

// TestBuildDocument 测试文档内容
func TestBuildDocument(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	doc, layout, err := BuildDocument(exportConfig(), "6", now)
	require.NoError(t, err)

	_, err = uuid.Parse(doc.LayoutID)
	assert.NoError(t, err, "layoutId should be a UUID")
	assert.Equal(t, "courtyard", doc.GridID)
	assert.Equal(t, now, doc.GeneratedAt)
	assert.Equal(t, 6.0, doc.CellSize)
	assert.Equal(t, 2, doc.CountX)
	assert.Equal(t, 3, doc.CountZ)
	assert.Len(t, doc.Cells, 6)
	assert.Equal(t, layout.CellCount(), len(doc.Cells))
	assert.Equal(t, "mirrored", doc.BoundsMode)

	// 左上起点：第一个格子紧贴左上角
	assert.Equal(t, Point{X: -3, Y: 0, Z: 6}, doc.Cells[0].Position)
	assert.Equal(t, Point{X: -6, Y: 0, Z: 9}, doc.Corners.TopLeft)

	active, ok := grid.ActiveOption(doc.SizeOptions)
	require.True(t, ok)
	assert.Equal(t, "6", active.Name)
}

// TestBuildDocumentUnknownSize 非公约数尺寸报错
func TestBuildDocumentUnknownSize(t *testing.T) {
	_, _, err := BuildDocument(exportConfig(), "5", time.Now())
	assert.Error(t, err)
}

// TestWriteYAML 导出的 YAML 可被重新解析
func TestWriteYAML(t *testing.T) {
	doc, _, err := BuildDocument(exportConfig(), "", time.Now())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, doc))

	var decoded Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc.LayoutID, decoded.LayoutID)
	assert.Equal(t, grid.TopLeft, decoded.Origin)
	assert.Equal(t, 12*18, len(decoded.Cells))
	assert.Contains(t, buf.String(), "origin: topLeft")
}

// TestSavePlot 生成 PNG 文件
func TestSavePlot(t *testing.T) {
	_, layout, err := BuildDocument(exportConfig(), "3", time.Now())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "layout.png")
	require.NoError(t, SavePlot(layout, "courtyard", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

// TestNewPlotEmptyLayout 零格子时只绘制边界
func TestNewPlotEmptyLayout(t *testing.T) {
	layout, err := grid.Layout(grid.Vec3{}, grid.Spec{Width: 0, Depth: 0, CellSize: 1, MaxDimension: 10})
	require.NoError(t, err)

	p, err := NewPlot(layout, "empty")
	require.NoError(t, err)
	assert.NotNil(t, p)
}
