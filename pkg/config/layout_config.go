package config

// 预览窗口布局配置常量
// 世界坐标为网格所在的 XZ 平面，屏幕坐标由镜头投影得到
const (
	// WindowWidth/WindowHeight 是预览窗口的逻辑尺寸
	WindowWidth  = 1024
	WindowHeight = 768

	// CameraMargin 镜头自适应时屏幕四周保留的像素
	CameraMargin = 40.0

	// MinPixelsPerUnit/MaxPixelsPerUnit 镜头缩放范围
	MinPixelsPerUnit = 0.5
	MaxPixelsPerUnit = 200.0

	// ZoomStep 每次滚轮缩放的倍率
	ZoomStep = 1.1

	// CornerGizmoRadius 四角标记圆的半径（世界单位）
	CornerGizmoRadius = 0.5

	// MinLabelPixels 格子在屏幕上小于该像素时不绘制标签
	MinLabelPixels = 48.0

	// LabelOffsetX/LabelOffsetY 标签相对格子中心的像素偏移（调试字体约 6x16）
	LabelOffsetX = 24
	LabelOffsetY = 16
)
