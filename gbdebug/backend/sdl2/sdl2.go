//go:build sdl2

package sdl2

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/input"
	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/input/event"
	"github.com/valerio/gbdebug/gbdebug/state"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// fontCandidates are tried in order when no font is configured.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
	"/usr/share/fonts/dejavu/DejaVuSansMono.ttf",
	"/System/Library/Fonts/Menlo.ttc",
	"C:\\Windows\\Fonts\\consola.ttf",
}

var (
	backgroundColor = sdl.Color{R: 30, G: 30, B: 36, A: 255}
	panelColor      = sdl.Color{R: 45, G: 45, B: 54, A: 255}
	borderColor     = sdl.Color{R: 110, G: 110, B: 130, A: 255}
	titleColor      = sdl.Color{R: 255, G: 220, B: 120, A: 255}
	textColor       = sdl.Color{R: 230, G: 230, B: 230, A: 255}
	disabledColor   = sdl.Color{R: 128, G: 128, B: 128, A: 255}
	buttonColor     = sdl.Color{R: 70, G: 90, B: 140, A: 255}
)

// Backend renders the debugger panels in an SDL2 window, drawing text with
// SDL_ttf. Panel placements are scaled by the font's cell size.
// Note: building this requires SDL2 and SDL2_ttf development libraries.
// Default builds use a stub, see build tags (sdl2).
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	font     *ttf.Font
	config   backend.Config

	cellW, cellH int32
	closing      bool

	handler   *input.Handler
	triggered map[action.Action]bool
	scroller  *backend.Scroller

	// left clicks of this frame, consumed by widgets
	clicks []sdl.Point

	area backend.Placement
	row  int
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Canvas  = (*Backend)(nil)
)

func New() *Backend {
	return &Backend{}
}

// Init creates the window, renderer and font. On failure everything that
// was created is released again.
func (s *Backend) Init(config backend.Config) (err error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to initialize SDL2_ttf: %w", err)
	}
	defer func() {
		if err != nil {
			s.release()
		}
	}()

	s.window, err = sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(config.Width),
		int32(config.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	s.renderer, err = sdl.CreateRenderer(s.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	s.font, err = openFont(config.FontPath, config.FontSize)
	if err != nil {
		return err
	}

	w, _, err := s.font.SizeUTF8("M")
	if err != nil {
		return fmt.Errorf("failed to measure font: %w", err)
	}
	s.cellW, s.cellH = int32(w), int32(s.font.LineSkip())

	s.config = config
	s.closing = false
	s.handler = input.NewHandler()
	s.triggered = make(map[action.Action]bool)
	s.scroller = backend.NewScroller()

	slog.Info("SDL2 backend initialized", "width", config.Width, "height", config.Height, "cell", fmt.Sprintf("%dx%d", s.cellW, s.cellH))
	return nil
}

func openFont(path string, size int) (*ttf.Font, error) {
	paths := fontCandidates
	if path != "" {
		paths = []string{path}
	}

	var errs []error
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			errs = append(errs, err)
			continue
		}
		font, err := ttf.OpenFont(p, size)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		return font, nil
	}
	return nil, fmt.Errorf("failed to open font: %w", errors.Join(errs...))
}

func (s *Backend) Cleanup() error {
	if s.window == nil {
		return nil
	}
	slog.Info("Cleaning up SDL2 backend")
	s.release()
	return nil
}

func (s *Backend) release() {
	if s.font != nil {
		s.font.Close()
		s.font = nil
	}
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	ttf.Quit()
	sdl.Quit()
}

func (s *Backend) PollEvent() backend.Event {
	if ev := sdl.PollEvent(); ev != nil {
		return ev
	}
	return nil
}

func (s *Backend) ProcessEvent(ev backend.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.closing = true
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_CLOSE {
			s.closing = true
		}
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			s.handleKeyDown(e.Keysym)
		}
	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
			s.clicks = append(s.clicks, sdl.Point{X: e.X, Y: e.Y})
		}
	}
}

func (s *Backend) handleKeyDown(key sdl.Keysym) {
	name := keyName(key)
	act, ok := input.GetDefaultMapping(name)
	if !ok || !s.handler.ProcessEvent(act, event.Press) {
		return
	}
	slog.Debug("Key press", "key", name, "action", action.GetInfo(act).Description)
	s.triggered[act] = true
}

// keyName converts an SDL key to the names used by the default key map.
// Letters are lowercase unless shift is held.
func keyName(key sdl.Keysym) string {
	name := sdl.GetKeyName(key.Sym)
	runes := []rune(name)
	if len(runes) == 1 && unicode.IsLetter(runes[0]) {
		if key.Mod&uint16(sdl.KMOD_SHIFT) != 0 {
			return strings.ToUpper(name)
		}
		return strings.ToLower(name)
	}
	return name
}

func (s *Backend) BeginFrame() {
	if s.renderer == nil {
		return
	}
	s.setColor(backgroundColor)
	s.renderer.Clear()
}

func (s *Backend) EndFrame() {
	if s.renderer != nil {
		s.renderer.Present()
	}
	clear(s.triggered)
	s.clicks = s.clicks[:0]
}

func (s *Backend) ShouldClose() bool {
	return s.closing
}

// GetWindow returns the *sdl.Window.
func (s *Backend) GetWindow() any {
	return s.window
}

func (s *Backend) Canvas() backend.Canvas {
	return s
}

func (s *Backend) BeginPanel(title string, placement backend.Placement) {
	s.area = placement
	s.row = placement.Y + 1

	rect := s.cellRect(placement.X, placement.Y, placement.Width, placement.Height)
	s.setColor(panelColor)
	s.renderer.FillRect(&rect)
	s.setColor(borderColor)
	s.renderer.DrawRect(&rect)

	s.drawText(placement.X+1, placement.Y, title, titleColor)
}

func (s *Backend) EndPanel() {}

func (s *Backend) Text(text string) {
	s.line(text, textColor)
}

func (s *Backend) TextColored(color state.Color, text string) {
	s.line(text, toSDLColor(color))
}

func (s *Backend) TextDisabled(text string) {
	s.line(text, disabledColor)
}

func (s *Backend) Separator() {
	if s.rowVisible() {
		y := int32(s.row)*s.cellH + s.cellH/2
		x0 := int32(s.area.X) * s.cellW
		x1 := int32(s.area.X+s.area.Width) * s.cellW
		s.setColor(borderColor)
		s.renderer.DrawLine(x0, y, x1, y)
	}
	s.row++
}

func (s *Backend) Button(label string, act action.Action, enabled bool) bool {
	if !s.rowVisible() {
		s.row++
		return false
	}

	width := len([]rune(label)) + 2
	rect := s.cellRect(s.area.X+1, s.row, width, 1)
	color := disabledColor
	if enabled {
		s.setColor(buttonColor)
		s.renderer.FillRect(&rect)
		color = textColor
	}
	s.drawText(s.area.X+2, s.row, label, color)
	s.row++

	return enabled && (s.triggered[act] || s.clicked(rect))
}

// Combo advances to the next item when clicked, wrapping around.
func (s *Backend) Combo(label string, items []string, current int) int {
	if current < 0 || current >= len(items) {
		s.line(label, textColor)
		return current
	}
	text := fmt.Sprintf("%s: < %s >", label, items[current])
	rect := s.cellRect(s.area.X+1, s.row, len([]rune(text)), 1)
	s.line(text, textColor)
	if s.clicked(rect) {
		return (current + 1) % len(items)
	}
	return current
}

func (s *Backend) Triggered(act action.Action) bool {
	return s.triggered[act]
}

func (s *Backend) BeginScroll(id string, total int) (first, last int) {
	height := s.area.Y + s.area.Height - 1 - s.row
	if height < 1 {
		height = 1
	}
	return s.scroller.Visible(id, total, height, s.Triggered)
}

func (s *Backend) EndScroll() {}

func (s *Backend) rowVisible() bool {
	return s.row < s.area.Y+s.area.Height-1
}

func (s *Backend) line(text string, color sdl.Color) {
	if s.rowVisible() {
		s.drawText(s.area.X+1, s.row, text, color)
	}
	s.row++
}

func (s *Backend) clicked(rect sdl.Rect) bool {
	for _, p := range s.clicks {
		if p.InRect(&rect) {
			return true
		}
	}
	return false
}

func (s *Backend) drawText(col, row int, text string, color sdl.Color) {
	if text == "" || s.font == nil {
		return
	}

	surface, err := s.font.RenderUTF8Blended(text, color)
	if err != nil {
		slog.Debug("Failed to render text", "error", err)
		return
	}
	defer surface.Free()

	texture, err := s.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		slog.Debug("Failed to create text texture", "error", err)
		return
	}
	defer texture.Destroy()

	// clip to the panel's inner width
	maxW := int32(s.area.X+s.area.Width-1-col) * s.cellW
	w := min(surface.W, maxW)
	if w <= 0 {
		return
	}
	src := sdl.Rect{W: w, H: surface.H}
	dst := sdl.Rect{X: int32(col) * s.cellW, Y: int32(row) * s.cellH, W: w, H: surface.H}
	s.renderer.Copy(texture, &src, &dst)
}

func (s *Backend) cellRect(col, row, width, height int) sdl.Rect {
	return sdl.Rect{
		X: int32(col) * s.cellW,
		Y: int32(row) * s.cellH,
		W: int32(width) * s.cellW,
		H: int32(height) * s.cellH,
	}
}

func (s *Backend) setColor(c sdl.Color) {
	s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}

func toSDLColor(c state.Color) sdl.Color {
	return sdl.Color{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float32) uint8 {
	return uint8(max(0, min(v, 1)) * 255)
}
