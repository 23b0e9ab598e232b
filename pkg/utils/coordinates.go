// Package utils 提供预览工具中常用的工具函数
//
// coordinates.go 负责世界坐标（XZ 平面）与屏幕坐标之间的转换。
//
// # 坐标系统概述
//
//   - **世界坐标**：网格所在的 XZ 平面，Forward(+Z) 为网格"上方"
//   - **屏幕坐标**：相对于窗口左上角，Y 轴向下
//
// # 核心转换公式
//
//	screenX = ScreenWidth/2  + (worldX - CenterX) * PixelsPerUnit
//	screenY = ScreenHeight/2 - (worldZ - CenterZ) * PixelsPerUnit
//
// 世界 Y 坐标（高度）在俯视投影中被忽略。
package utils

import (
	"errors"
	"math"

	"github.com/decker502/gridlayout/pkg/components"
	"github.com/decker502/gridlayout/pkg/grid"
)

// ErrInvalidScale 表示镜头缩放比例不合法
var ErrInvalidScale = errors.New("camera pixels per unit must be positive")

// WorldToScreen 将世界坐标转换为屏幕坐标
func WorldToScreen(cam *components.CameraComponent, p grid.Vec3) (screenX, screenY float64) {
	screenX = float64(cam.ScreenWidth)/2 + (p.X-cam.CenterX)*cam.PixelsPerUnit
	screenY = float64(cam.ScreenHeight)/2 - (p.Z-cam.CenterZ)*cam.PixelsPerUnit
	return screenX, screenY
}

// ScreenToWorld 将屏幕坐标转换为世界坐标（Y 取 height）
// 缩放比例 ≤ 0 时返回 ErrInvalidScale
func ScreenToWorld(cam *components.CameraComponent, screenX, screenY, height float64) (grid.Vec3, error) {
	if cam.PixelsPerUnit <= 0 {
		return grid.Vec3{}, ErrInvalidScale
	}
	x := cam.CenterX + (screenX-float64(cam.ScreenWidth)/2)/cam.PixelsPerUnit
	z := cam.CenterZ - (screenY-float64(cam.ScreenHeight)/2)/cam.PixelsPerUnit
	return grid.Vec3{X: x, Y: height, Z: z}, nil
}

// FitCamera 调整镜头使整个网格可见
// 参数:
//   - bounds: 网格四角
//   - margin: 屏幕边缘保留的像素
//   - minPPU/maxPPU: 缩放比例上下限
func FitCamera(cam *components.CameraComponent, bounds grid.Bounds, margin, minPPU, maxPPU float64) {
	cam.CenterX = bounds.Anchor.X
	cam.CenterZ = bounds.Anchor.Z

	availW := float64(cam.ScreenWidth) - 2*margin
	availH := float64(cam.ScreenHeight) - 2*margin
	if availW <= 0 || availH <= 0 {
		cam.PixelsPerUnit = minPPU
		return
	}

	ppu := maxPPU
	if bounds.HalfWidth > 0 {
		ppu = math.Min(ppu, availW/(2*bounds.HalfWidth))
	}
	if bounds.HalfDepth > 0 {
		ppu = math.Min(ppu, availH/(2*bounds.HalfDepth))
	}
	cam.PixelsPerUnit = math.Max(minPPU, ppu)
}
