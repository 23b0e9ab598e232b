package components

// CameraComponent 俯视预览镜头
// 世界坐标 (CenterX, CenterZ) 映射到屏幕中心，Forward 方向朝屏幕上方
type CameraComponent struct {
	// CenterX/CenterZ 屏幕中心对应的世界坐标
	CenterX float64
	CenterZ float64

	// PixelsPerUnit 每个世界单位对应的像素数
	PixelsPerUnit float64

	// ScreenWidth/ScreenHeight 逻辑屏幕尺寸
	ScreenWidth  int
	ScreenHeight int
}
