// Package app 提供网格预览工具的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，main.go 只负责解析参数和启动 ebiten。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"

	"github.com/decker502/gridlayout/pkg/components"
	"github.com/decker502/gridlayout/pkg/config"
	"github.com/decker502/gridlayout/pkg/ecs"
	"github.com/decker502/gridlayout/pkg/embedded"
	"github.com/decker502/gridlayout/pkg/entities"
	"github.com/decker502/gridlayout/pkg/game"
	"github.com/decker502/gridlayout/pkg/grid"
	"github.com/decker502/gridlayout/pkg/systems"
	"github.com/decker502/gridlayout/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultConfigPath 内置默认网格配置
const DefaultConfigPath = "data/grids/default.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 网格配置文件路径，为空则使用内置默认配置
	// 以 "data/" 开头且内置文件存在时从内置文件系统读取
	ConfigPath string
	// AppName gdata 存储使用的应用名，为空则不持久化
	AppName string
	// PlayMode 以运行模式启动
	PlayMode bool
}

// App 是网格预览工具的核心包装器，实现 ebiten.Game 接口
type App struct {
	entityManager *ecs.EntityManager
	gridSystem    *systems.GridSystem
	renderSystem  *systems.GridRenderSystem
	camera        *components.CameraComponent
	gridConfig    *config.GridConfig
	statusMessage string
	verbose       bool
}

// NewApp 创建并初始化预览应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gridConfig, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("网格配置加载失败: %w", err)
	}
	log.Printf("[App] Loaded grid %q (%vx%v)", gridConfig.ID, gridConfig.Width, gridConfig.Depth)

	store := game.NewSelectionStore(nil)
	if cfg.AppName != "" {
		opened, err := game.OpenSelectionStore(cfg.AppName)
		if err != nil {
			log.Printf("[App] Warning: %v (selections will not persist)", err)
		}
		store = opened
	}

	em := ecs.NewEntityManager()
	gridSystem := systems.NewGridSystem(em, gridConfig, store, entities.NewCellFactory(em))

	a := &App{
		entityManager: em,
		gridSystem:    gridSystem,
		renderSystem:  systems.NewGridRenderSystem(em, gridSystem),
		camera: &components.CameraComponent{
			PixelsPerUnit: config.MaxPixelsPerUnit,
			ScreenWidth:   config.WindowWidth,
			ScreenHeight:  config.WindowHeight,
		},
		gridConfig: gridConfig,
		verbose:    cfg.Verbose,
	}

	if err := gridSystem.GenerateEditor(); err != nil {
		a.statusMessage = err.Error()
	}
	if cfg.PlayMode {
		if err := gridSystem.EnterPlayMode(); err != nil {
			a.statusMessage = err.Error()
		}
	}
	a.fitCamera()

	return a, nil
}

// LoadConfig 加载网格配置
// 路径为空时使用内置默认配置；内置文件系统中存在的 "data/" 路径优先从内置读取
func LoadConfig(path string) (*config.GridConfig, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return config.ParseGridConfig(data, path)
	}
	if path == DefaultConfigPath {
		log.Printf("[App] Embedded default config unavailable, using built-in defaults")
		return config.DefaultGridConfig(), nil
	}
	return config.LoadGridConfig(path)
}

// Update 处理输入并更新网格
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleKeys()
	a.handleMouse()

	deltaTime := 1.0 / 60.0
	a.gridSystem.Update(deltaTime)
	return nil
}

// handleKeys 键盘操作
func (a *App) handleKeys() {
	gs := a.gridSystem
	g := gs.Grid()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.cycleSize(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.cycleSize(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		a.resize(1, ebiten.IsKeyPressed(ebiten.KeyShift))
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		a.resize(-1, ebiten.IsKeyPressed(ebiten.KeyShift))
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		gs.SetOrigin(g.Spec.Origin.Next())
		a.statusMessage = "origin: " + g.Spec.Origin.String()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.togglePlayMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		a.fitCamera()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		a.toggleRender(func(o *config.RenderOptions) { o.DisplayGridBounds = !o.DisplayGridBounds })
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		a.toggleRender(func(o *config.RenderOptions) { o.DisplayCorners = !o.DisplayCorners })
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		a.toggleRender(func(o *config.RenderOptions) { o.DisplayCells = !o.DisplayCells })
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		a.toggleRender(func(o *config.RenderOptions) { o.DisplayCellInfo = !o.DisplayCellInfo })
	}
}

// handleMouse 鼠标悬停和滚轮缩放
func (a *App) handleMouse() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		factor := config.ZoomStep
		if dy < 0 {
			factor = 1 / factor
		}
		ppu := a.camera.PixelsPerUnit * factor
		if ppu >= config.MinPixelsPerUnit && ppu <= config.MaxPixelsPerUnit {
			a.camera.PixelsPerUnit = ppu
		}
	}

	cx, cy := ebiten.CursorPosition()
	world, err := utils.ScreenToWorld(a.camera, float64(cx), float64(cy), a.gridSystem.Anchor().Y)
	if err != nil {
		return
	}
	a.gridSystem.UpdateHover(world)
}

func (a *App) cycleSize(delta int) {
	opt, ok := a.gridSystem.CycleSize(delta)
	if !ok {
		a.statusMessage = "no size options for current grid"
		return
	}
	a.statusMessage = fmt.Sprintf("cell size: %s", opt.Name)
}

func (a *App) resize(delta float64, depth bool) {
	spec := a.gridSystem.Grid().Spec
	w, d := spec.Width, spec.Depth
	if depth {
		d += delta
	} else {
		w += delta
	}
	if err := a.gridSystem.SetDimensions(w, d); err != nil {
		a.statusMessage = err.Error()
		return
	}
	a.statusMessage = fmt.Sprintf("grid size: %vx%v", w, d)
}

func (a *App) togglePlayMode() {
	if a.gridSystem.IsPlaying() {
		a.gridSystem.ExitPlayMode()
		a.statusMessage = "editor mode"
		return
	}
	if err := a.gridSystem.EnterPlayMode(); err != nil {
		a.statusMessage = err.Error()
		return
	}
	a.statusMessage = "play mode"
}

func (a *App) toggleRender(fn func(*config.RenderOptions)) {
	opts := a.gridSystem.Grid().Render
	fn(&opts)
	a.gridSystem.SetRenderOptions(opts)
}

// fitCamera 调整镜头以显示整个网格
func (a *App) fitCamera() {
	bounds := CameraBounds(a.gridSystem.Grid(), a.gridSystem.Anchor())
	utils.FitCamera(a.camera, bounds, config.CameraMargin, config.MinPixelsPerUnit, config.MaxPixelsPerUnit)
}

// CameraBounds 返回镜头适配使用的网格四角
// 已生成布局时直接使用布局的四角，否则按网格的四角模式重新计算
func CameraBounds(g *components.GridComponent, anchor grid.Vec3) grid.Bounds {
	if g.Layout != nil {
		return g.Layout.Bounds
	}
	return grid.ComputeBoundsWithMode(anchor, g.Spec, g.BoundsMode)
}

// Draw 绘制网格和状态栏
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 40, G: 44, B: 52, A: 255})
	a.renderSystem.Draw(screen, a.camera)

	for i, line := range StatusLines(a.gridSystem.Grid(), a.gridSystem.IsPlaying(), a.statusMessage) {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*16)
	}
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// GridSystem 返回网格系统
func (a *App) GridSystem() *systems.GridSystem {
	return a.gridSystem
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// StatusLines 生成状态栏文本
func StatusLines(g *components.GridComponent, playing bool, message string) []string {
	mode := "EDITOR"
	if playing {
		mode = "PLAY"
	}

	countX, countZ := 0, 0
	if g.Layout != nil {
		countX, countZ = g.Layout.CountX, g.Layout.CountZ
	}

	names := make([]string, 0, len(g.SizeOptions))
	for _, opt := range g.SizeOptions {
		if opt.Enabled {
			names = append(names, "["+opt.Name+"]")
		} else {
			names = append(names, opt.Name)
		}
	}

	lines := []string{
		fmt.Sprintf("%s  grid %s  %vx%v  cell %v  cells %dx%d  origin %s",
			mode, g.ID, g.Spec.Width, g.Spec.Depth, g.Spec.CellSize, countX, countZ, g.Spec.Origin),
		"sizes: " + strings.Join(names, " "),
	}
	if g.HasHover && g.Layout != nil {
		if cell, ok := g.Layout.Cell(g.Hover); ok {
			lines = append(lines, "hover: "+entities.FormatCellLabel(cell.Index, cell.WorldPosition))
		}
	}
	if message != "" {
		lines = append(lines, message)
	}
	return lines
}
