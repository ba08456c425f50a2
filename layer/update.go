package layer

import (
	"github.com/gogpu/studio/effect"
	"github.com/gogpu/studio/mask"
)

// Update is a partial layer mutation with shallow-merge semantics: nil
// fields are left unchanged. Numeric fields saturate to their valid range
// rather than failing.
type Update struct {
	Name      *string
	Visible   *bool
	Locked    *bool
	Opacity   *int
	BlendMode *BlendMode
	Position  *Point
	Size      *Size
	Rotation  *float64
	Data      *Data
	Effects   *[]effect.Effect
	Masks     *[]*mask.Mask
}

func (u Update) apply(l *Layer) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Visible != nil {
		l.Visible = *u.Visible
	}
	if u.Locked != nil {
		l.Locked = *u.Locked
	}
	if u.Opacity != nil {
		l.Opacity = clampInt(*u.Opacity, 0, 100)
	}
	if u.BlendMode != nil {
		l.BlendMode = *u.BlendMode
	}
	if u.Position != nil {
		l.Position = *u.Position
	}
	if u.Size != nil {
		sz := *u.Size
		if sz.Width > 0 && sz.Height > 0 {
			l.Size = sz
		}
	}
	if u.Rotation != nil {
		l.Rotation = *u.Rotation
	}
	if u.Data != nil {
		l.Data = *u.Data
	}
	if u.Effects != nil {
		l.Effects = *u.Effects
	}
	if u.Masks != nil {
		l.Masks = *u.Masks
	}
}

// ToggleVisibility flips a layer's visibility. Missing ids are a no-op.
func (s *Store) ToggleVisibility(id string) {
	if l := s.find(id); l != nil {
		l.Visible = !l.Visible
	}
}

// ToggleLock flips a layer's lock state. The lock gates UI interaction;
// store operations themselves ignore it.
func (s *Store) ToggleLock(id string) {
	if l := s.find(id); l != nil {
		l.Locked = !l.Locked
	}
}

// SetOpacity sets a layer's opacity, clamped to [0, 100].
func (s *Store) SetOpacity(id string, opacity int) {
	if l := s.find(id); l != nil {
		l.Opacity = clampInt(opacity, 0, 100)
	}
}

// SetBlendMode sets a layer's blend mode.
func (s *Store) SetBlendMode(id string, m BlendMode) {
	if l := s.find(id); l != nil {
		l.BlendMode = m
	}
}

// AddEffect appends an effect to a layer's stack.
func (s *Store) AddEffect(id string, e effect.Effect) {
	if l := s.find(id); l != nil {
		l.Effects = append(l.Effects, e)
	}
}

// RemoveEffect removes the effect with the given id from a layer's stack.
func (s *Store) RemoveEffect(id, effectID string) {
	l := s.find(id)
	if l == nil {
		return
	}
	for i, e := range l.Effects {
		if e.ID == effectID {
			l.Effects = append(l.Effects[:i], l.Effects[i+1:]...)
			return
		}
	}
}

// AddMask appends a mask to a layer's mask list. Masks apply in list
// order.
func (s *Store) AddMask(id string, m *mask.Mask) {
	if l := s.find(id); l != nil {
		l.Masks = append(l.Masks, m)
	}
}

// RemoveMask removes the mask with the given id from a layer's list.
func (s *Store) RemoveMask(id, maskID string) {
	l := s.find(id)
	if l == nil {
		return
	}
	for i, m := range l.Masks {
		if m.ID == maskID {
			l.Masks = append(l.Masks[:i], l.Masks[i+1:]...)
			return
		}
	}
}

// UpdateMask applies a partial update to one of the layer's masks.
func (s *Store) UpdateMask(id, maskID string, u mask.Update) {
	l := s.find(id)
	if l == nil {
		return
	}
	for _, m := range l.Masks {
		if m.ID == maskID {
			m.Apply(u)
			return
		}
	}
}

// DuplicateMask deep-copies one of the layer's masks, appending the copy
// after the original. It returns the new mask id, or "" when either id is
// missing.
func (s *Store) DuplicateMask(id, maskID string) string {
	l := s.find(id)
	if l == nil {
		return ""
	}
	for i, m := range l.Masks {
		if m.ID == maskID {
			dup := s.masks.Duplicate(m)
			l.Masks = append(l.Masks[:i+1], append([]*mask.Mask{dup}, l.Masks[i+1:]...)...)
			return dup.ID
		}
	}
	return ""
}
