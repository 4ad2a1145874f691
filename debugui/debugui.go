// Package debugui provides Dear ImGui debug windows for a running board:
// a board inspector, a chain history, and frame/system timings.
package debugui

// Window is a single ImGui window drawn once per frame.
type Window interface {
	Render(deltaTime float32)
}

// Overlay draws a fixed set of windows. The caller brackets Render with the
// backend's BeginFrame/EndFrame.
type Overlay struct {
	windows []Window
	visible bool
}

// NewOverlay returns a visible overlay for windows.
func NewOverlay(windows ...Window) *Overlay {
	return &Overlay{windows: windows, visible: true}
}

// Toggle flips overlay visibility.
func (o *Overlay) Toggle() {
	o.visible = !o.visible
}

// Visible reports whether Render draws anything.
func (o *Overlay) Visible() bool {
	return o.visible
}

func (o *Overlay) Render(deltaTime float32) {
	if !o.visible {
		return
	}
	for _, w := range o.windows {
		w.Render(deltaTime)
	}
}
