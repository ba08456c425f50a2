// Package studio is a headless core for a layered-canvas design tool:
// a layer store with masks and effects, an undo/redo log, color state,
// a software compositor, and a client for an external image-generation
// service. It renders to raster buffers; it has no UI of its own.
package studio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/studio/compositor"
	"github.com/gogpu/studio/generate"
	"github.com/gogpu/studio/history"
	"github.com/gogpu/studio/layer"
	"github.com/gogpu/studio/raster"
)

// ErrNoGenerationClient is returned when a session without a configured
// generation client is asked to generate.
var ErrNoGenerationClient = errors.New("studio: no generation client configured")

// Generation is one completed generation, kept in the session's
// generation history, most recent first.
type Generation struct {
	ID      string
	URL     string
	Prompt  string
	Seed    int
	LayerID string
	Time    time.Time
}

// Session ties the document state together: layers, history, colors, the
// viewport, the compositor, and the generation client. A session is owned
// by a single goroutine; the generation client it wraps is the only part
// that is internally synchronized.
type Session struct {
	Layers  *layer.Store
	History *history.Engine
	Colors  *Colors
	View    *View

	comp  *compositor.Compositor
	gen   *generate.Client
	notes notifier

	generations []Generation
	activeTool  string
}

// SessionOption configures a session.
type SessionOption func(*Session)

// WithGenerationClient wires an image-generation client into the session.
func WithGenerationClient(c *generate.Client) SessionOption {
	return func(s *Session) { s.gen = c }
}

// WithColorPicker installs a host color sampler for the eyedropper.
func WithColorPicker(p PickerFunc) SessionOption {
	return func(s *Session) { s.Colors.SetPicker(p) }
}

// WithNotificationSink forwards notifications as they are raised, in
// addition to queuing them for Notifications.
func WithNotificationSink(sink func(Notification)) SessionOption {
	return func(s *Session) { s.notes.sink = sink }
}

// WithBackground sets the canvas background color.
func WithBackground(r, g, b, a uint8) SessionOption {
	return func(s *Session) {
		s.comp = compositor.New(s.comp.Width(), s.comp.Height(),
			compositor.WithBackground(r, g, b, a))
	}
}

// NewSession creates a session with an empty document of the given canvas
// size.
func NewSession(width, height int, opts ...SessionOption) *Session {
	s := &Session{
		Layers:     layer.NewStore(),
		History:    history.New(),
		Colors:     NewColors(),
		View:       NewView(),
		comp:       compositor.New(width, height),
		activeTool: "select",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Width returns the canvas width in pixels.
func (s *Session) Width() int { return s.comp.Width() }

// Height returns the canvas height in pixels.
func (s *Session) Height() int { return s.comp.Height() }

// Render composites the document into a fresh pixmap.
func (s *Session) Render() *raster.Pixmap {
	return s.comp.Render(s.Layers)
}

// RegisterSource makes image pixels available to image layers that
// reference src.
func (s *Session) RegisterSource(src string, pm *raster.Pixmap) {
	s.comp.RegisterSource(src, pm)
}

// IsGenerating reports whether a generation request is in flight.
func (s *Session) IsGenerating() bool {
	return s.gen != nil && s.gen.InFlight()
}

// ActiveTool returns the selected tool name.
func (s *Session) ActiveTool() string { return s.activeTool }

// SetTool selects a tool.
func (s *Session) SetTool(tool string) { s.activeTool = tool }

// Generations returns the generation history, most recent first.
func (s *Session) Generations() []Generation {
	out := make([]Generation, len(s.generations))
	copy(out, s.generations)
	return out
}

// Notifications returns and clears the pending notifications.
func (s *Session) Notifications() []Notification {
	return s.notes.drain()
}

// Generate sends a generation request, and on success places the first
// returned image on the canvas as a new layer at (100, 100) at half its
// generated size, records the generation, and logs a history action whose
// Revert/Apply hide and reshow the layer. Failures raise a notification
// and return the error.
func (s *Session) Generate(ctx context.Context, req *generate.Request) (*Generation, error) {
	if s.gen == nil {
		return nil, ErrNoGenerationClient
	}
	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.notes.push("Generation failed", err.Error(), "Retry")
		return nil, err
	}
	return s.placeResult(res, history.ActionGeneration, "Generated image")
}

// Refine re-generates from refinement guidance and places the result the
// same way Generate does.
func (s *Session) Refine(ctx context.Context, req *generate.RefineRequest) (*Generation, error) {
	if s.gen == nil {
		return nil, ErrNoGenerationClient
	}
	res, err := s.gen.Refine(ctx, req)
	if err != nil {
		s.notes.push("Refinement failed", err.Error(), "Retry")
		return nil, err
	}
	return s.placeResult(res, history.ActionRefinement, "Refined image")
}

func (s *Session) placeResult(res *generate.Result, t history.ActionType, desc string) (*Generation, error) {
	if len(res.Images) == 0 {
		err := errors.New("studio: generation returned no images")
		s.notes.push("Generation failed", err.Error(), "Retry")
		return nil, err
	}
	img := res.Images[0]

	w := float64(img.Width) / 2
	h := float64(img.Height) / 2
	if w < 1 {
		w = 100
	}
	if h < 1 {
		h = 100
	}
	layerID := s.Layers.AddLayer(
		layer.WithType(layer.TypeImage),
		layer.WithName("Generated image"),
		layer.WithPosition(100, 100),
		layer.WithSize(w, h),
		layer.WithData(layer.Data{Src: img.URL}),
	)

	gen := Generation{
		ID:      uuid.NewString(),
		URL:     img.URL,
		Prompt:  res.Prompt,
		Seed:    res.Seed,
		LayerID: layerID,
		Time:    time.Now(),
	}
	s.generations = append([]Generation{gen}, s.generations...)

	shown, hidden := true, false
	s.History.Add(history.Action{
		Type:        t,
		Description: fmt.Sprintf("%s: %s", desc, res.Prompt),
		Data:        gen,
		Apply: func() {
			s.Layers.UpdateLayer(layerID, layer.Update{Visible: &shown})
		},
		Revert: func() {
			s.Layers.UpdateLayer(layerID, layer.Update{Visible: &hidden})
		},
	})

	Logger().Info("generation placed", "layer", layerID, "url", img.URL)
	return &gen, nil
}

// Undo reverts the latest action and returns the action that is now
// current, or nil when at the baseline.
func (s *Session) Undo() *history.Action { return s.History.Undo() }

// Redo re-applies the next action and returns it, or nil at the tail.
func (s *Session) Redo() *history.Action { return s.History.Redo() }
