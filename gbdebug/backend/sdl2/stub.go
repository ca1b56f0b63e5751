//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/state"
)

// Backend stub for when SDL2 is not available. Init always fails, so the
// debugger never opens with it.
type Backend struct{}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Canvas  = (*Backend)(nil)
)

func New() *Backend {
	return &Backend{}
}

// Init returns an error wrapping backend.ErrUnavailable.
func (s *Backend) Init(config backend.Config) error {
	return fmt.Errorf("SDL2 backend: %w - build with -tags sdl2 to enable", backend.ErrUnavailable)
}

func (s *Backend) Cleanup() error {
	return nil
}

func (s *Backend) PollEvent() backend.Event {
	return nil
}

func (s *Backend) ProcessEvent(backend.Event) {
}

func (s *Backend) BeginFrame() {
}

func (s *Backend) EndFrame() {
}

func (s *Backend) ShouldClose() bool {
	return true
}

func (s *Backend) GetWindow() any {
	return nil
}

func (s *Backend) Canvas() backend.Canvas {
	return s
}

func (s *Backend) BeginPanel(string, backend.Placement) {
}

func (s *Backend) EndPanel() {
}

func (s *Backend) Text(string) {
}

func (s *Backend) TextColored(state.Color, string) {
}

func (s *Backend) TextDisabled(string) {
}

func (s *Backend) Separator() {
}

func (s *Backend) Button(string, action.Action, bool) bool {
	return false
}

func (s *Backend) Combo(_ string, _ []string, current int) int {
	return current
}

func (s *Backend) Triggered(action.Action) bool {
	return false
}

func (s *Backend) BeginScroll(string, int) (int, int) {
	return 0, 0
}

func (s *Backend) EndScroll() {
}
