package layer

import (
	"fmt"
	"sort"

	"github.com/gogpu/studio/effect"
	"github.com/gogpu/studio/mask"
)

// Store owns the layer list, the group records, and the current selection.
// It maintains two invariants across every mutation:
//
//   - zIndex density: the zIndex values of all layers are exactly
//     {0, 1, ..., n-1}, matching list position;
//   - group membership: an id in a group's Children always references an
//     existing layer whose ParentID is that group.
//
// The store is not safe for concurrent use; the studio mutates it from a
// single event loop.
type Store struct {
	layers   []*Layer
	groups   []*Group
	selected []string
	masks    *mask.Source
	nextID   int
}

// NewStore creates an empty store with its own id space.
func NewStore() *Store {
	return &Store{masks: mask.NewSource()}
}

// Masks returns the store's mask factory, shared so that duplicated layers
// draw mask ids from the same sequence.
func (s *Store) Masks() *mask.Source { return s.masks }

func (s *Store) newID() string {
	s.nextID++
	return fmt.Sprintf("layer_%d", s.nextID)
}

// Option customizes a layer at creation time; unset fields keep their
// defaults.
type Option func(*Layer)

// WithName sets the layer name.
func WithName(name string) Option { return func(l *Layer) { l.Name = name } }

// WithType sets the layer type.
func WithType(t Type) Option { return func(l *Layer) { l.Type = t } }

// WithVisible sets initial visibility.
func WithVisible(v bool) Option { return func(l *Layer) { l.Visible = v } }

// WithLocked sets the initial lock state.
func WithLocked(v bool) Option { return func(l *Layer) { l.Locked = v } }

// WithOpacity sets the initial opacity, clamped to [0, 100].
func WithOpacity(o int) Option { return func(l *Layer) { l.Opacity = clampInt(o, 0, 100) } }

// WithBlendMode sets the initial blend mode.
func WithBlendMode(m BlendMode) Option { return func(l *Layer) { l.BlendMode = m } }

// WithPosition sets the initial canvas position.
func WithPosition(x, y float64) Option {
	return func(l *Layer) { l.Position = Point{X: x, Y: y} }
}

// WithSize sets the initial extent. Non-positive dimensions are ignored,
// keeping the default size, matching the resize guard in Update.
func WithSize(w, h float64) Option {
	return func(l *Layer) {
		if w > 0 && h > 0 {
			l.Size = Size{Width: w, Height: h}
		}
	}
}

// WithRotation sets the initial rotation in degrees.
func WithRotation(deg float64) Option { return func(l *Layer) { l.Rotation = deg } }

// WithData sets the type-specific payload.
func WithData(d Data) Option { return func(l *Layer) { l.Data = d } }

// AddLayer creates a layer, appends it at the top of the z-order, and
// replaces the selection with the new layer. It never fails; ids are
// unique for the life of the store.
//
// Defaults: image type, visible, unlocked, opacity 100, normal blend,
// position (0,0), size 100x100, no rotation, empty effect and mask lists.
func (s *Store) AddLayer(opts ...Option) string {
	l := &Layer{
		ID:        s.newID(),
		Name:      fmt.Sprintf("Layer %d", len(s.layers)+1),
		Type:      TypeImage,
		Visible:   true,
		Locked:    false,
		Opacity:   100,
		BlendMode: BlendNormal,
		Position:  Point{},
		Size:      Size{Width: 100, Height: 100},
		Effects:   []effect.Effect{},
		Masks:     []*mask.Mask{},
		ZIndex:    len(s.layers),
	}
	for _, opt := range opts {
		opt(l)
	}
	s.layers = append(s.layers, l)
	s.selected = []string{l.ID}
	return l.ID
}

// RemoveLayer removes a layer from the list, the selection, and its
// group's children. A group left empty by the removal is deleted. Missing
// ids are a no-op.
func (s *Store) RemoveLayer(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	l := s.layers[idx]
	s.layers = append(s.layers[:idx], s.layers[idx+1:]...)
	s.deselect(id)
	if l.ParentID != "" {
		s.removeFromGroup(l.ParentID, id)
	}
	s.renumber()
}

// UpdateLayer shallow-merges an update into the layer. Missing ids are a
// no-op, not an error.
func (s *Store) UpdateLayer(id string, u Update) {
	l := s.find(id)
	if l == nil {
		return
	}
	u.apply(l)
}

// DuplicateLayer deep-copies a layer under a new id with the name suffixed
// " copy" and the position offset by (+10, +10), appends it at the top of
// the z-order, and selects it. It returns the new id, or "" when the
// source id is missing.
func (s *Store) DuplicateLayer(id string) string {
	src := s.find(id)
	if src == nil {
		return ""
	}
	dup := src.clone(s.masks)
	dup.ID = s.newID()
	dup.Name = src.Name + " copy"
	dup.Position = Point{X: src.Position.X + 10, Y: src.Position.Y + 10}
	dup.ZIndex = len(s.layers)
	s.layers = append(s.layers, dup)
	s.selected = []string{dup.ID}
	return dup.ID
}

// Position selects where a reordered layer lands relative to its target.
type Position string

// Reorder positions.
const (
	Above Position = "above"
	Below Position = "below"
)

// ReorderLayers moves the dragged layer adjacent to the target: Above
// inserts before the target's pre-removal index, Below after it. Every
// layer's zIndex is then renumbered to match list order, keeping the dense
// 0..n-1 sequence. Missing ids are a no-op.
func (s *Store) ReorderLayers(draggedID, targetID string, pos Position) {
	draggedIdx := s.indexOf(draggedID)
	targetIdx := s.indexOf(targetID)
	if draggedIdx < 0 || targetIdx < 0 || draggedID == targetID {
		return
	}

	dragged := s.layers[draggedIdx]
	s.layers = append(s.layers[:draggedIdx], s.layers[draggedIdx+1:]...)

	insert := targetIdx
	if pos == Below {
		insert = targetIdx + 1
	}
	if insert > len(s.layers) {
		insert = len(s.layers)
	}

	s.layers = append(s.layers, nil)
	copy(s.layers[insert+1:], s.layers[insert:])
	s.layers[insert] = dragged

	s.renumber()
}

// CreateGroup records a group over the given layer ids and points each
// referenced layer's ParentID at it. The store places no minimum on the
// id count; ids that reference no layer are skipped.
func (s *Store) CreateGroup(layerIDs []string, name string) string {
	if name == "" {
		name = "Group"
	}
	g := &Group{
		ID:        s.newID(),
		Name:      name,
		Visible:   true,
		Locked:    false,
		Opacity:   100,
		BlendMode: BlendNormal,
		Expanded:  true,
	}
	for _, id := range layerIDs {
		if l := s.find(id); l != nil {
			l.ParentID = g.ID
			g.Children = append(g.Children, id)
		}
	}
	s.groups = append(s.groups, g)
	return g.ID
}

// UngroupLayers clears ParentID on the group's children and deletes the
// group record. Missing group ids are a no-op.
func (s *Store) UngroupLayers(groupID string) {
	gi := s.groupIndex(groupID)
	if gi < 0 {
		return
	}
	for _, id := range s.groups[gi].Children {
		if l := s.find(id); l != nil {
			l.ParentID = ""
		}
	}
	s.groups = append(s.groups[:gi], s.groups[gi+1:]...)
}

// SelectLayer updates the selection. Without multiSelect the selection
// becomes just the given id; with it, the id's membership is toggled.
func (s *Store) SelectLayer(id string, multiSelect bool) {
	if !multiSelect {
		s.selected = []string{id}
		return
	}
	for i, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	s.selected = append(s.selected, id)
}

// SelectAll selects every layer in list order.
func (s *Store) SelectAll() {
	s.selected = make([]string, len(s.layers))
	for i, l := range s.layers {
		s.selected[i] = l.ID
	}
}

// DeselectAll clears the selection.
func (s *Store) DeselectAll() {
	s.selected = nil
}

// Selected returns the selected ids in insertion order.
func (s *Store) Selected() []string {
	return append([]string(nil), s.selected...)
}

// Layer returns the layer with the given id, or nil. The pointer aliases
// store state; use UpdateLayer for mutations that should be observable as
// single operations.
func (s *Store) Layer(id string) *Layer {
	return s.find(id)
}

// Layers returns the layer list in z-order (ascending paint order).
func (s *Store) Layers() []*Layer {
	return append([]*Layer(nil), s.layers...)
}

// VisibleLayers returns the visible layers sorted by ascending zIndex —
// the compositor's paint order.
func (s *Store) VisibleLayers() []*Layer {
	out := make([]*Layer, 0, len(s.layers))
	for _, l := range s.layers {
		if l.Visible {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// HitOrder returns all layers sorted by descending zIndex, topmost first —
// the selection/hit-test order.
func (s *Store) HitOrder() []*Layer {
	out := append([]*Layer(nil), s.layers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex > out[j].ZIndex })
	return out
}

// Group returns the group with the given id, or nil.
func (s *Store) Group(id string) *Group {
	if gi := s.groupIndex(id); gi >= 0 {
		return s.groups[gi]
	}
	return nil
}

// Groups returns the group records.
func (s *Store) Groups() []*Group {
	return append([]*Group(nil), s.groups...)
}

// Len returns the number of layers.
func (s *Store) Len() int { return len(s.layers) }

func (s *Store) find(id string) *Layer {
	if idx := s.indexOf(id); idx >= 0 {
		return s.layers[idx]
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, l := range s.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) groupIndex(id string) int {
	for i, g := range s.groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) deselect(id string) {
	for i, sel := range s.selected {
		if sel == id {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
}

// removeFromGroup drops id from the group's children, deleting the group
// once its last member is gone.
func (s *Store) removeFromGroup(groupID, id string) {
	gi := s.groupIndex(groupID)
	if gi < 0 {
		return
	}
	g := s.groups[gi]
	for i, child := range g.Children {
		if child == id {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			break
		}
	}
	if len(g.Children) == 0 {
		s.groups = append(s.groups[:gi], s.groups[gi+1:]...)
	}
}

// renumber reassigns every layer's zIndex to its list position, restoring
// the dense 0..n-1 sequence.
func (s *Store) renumber() {
	for i, l := range s.layers {
		l.ZIndex = i
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
