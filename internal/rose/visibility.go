package rose

// Visibility records which height layers are shown. All layers start
// visible unless listed as hidden at construction; afterwards the only
// mutation is Toggle. A nil *Visibility reads as all layers visible and
// cannot be toggled.
type Visibility struct {
	hidden [NumLayers]bool
}

// NewVisibility returns a store with every layer visible except those
// listed in hidden.
func NewVisibility(hidden ...Layer) *Visibility {
	v := &Visibility{}
	for _, l := range hidden {
		if l.Valid() {
			v.hidden[l] = true
		}
	}
	return v
}

// Toggle flips layer l and returns its new visibility. On a nil store it
// changes nothing.
func (v *Visibility) Toggle(l Layer) bool {
	if !l.Valid() {
		return false
	}
	if v == nil {
		return true
	}
	v.hidden[l] = !v.hidden[l]
	return !v.hidden[l]
}

// IsVisible reports whether layer l is shown.
func (v *Visibility) IsVisible(l Layer) bool {
	if !l.Valid() {
		return false
	}
	if v == nil {
		return true
	}
	return !v.hidden[l]
}

// Visible returns the shown layers in defined order.
func (v *Visibility) Visible() []Layer {
	var out []Layer
	for _, l := range Layers() {
		if v.IsVisible(l) {
			out = append(out, l)
		}
	}
	return out
}

// Hidden returns the hidden layers in defined order.
func (v *Visibility) Hidden() []Layer {
	var out []Layer
	for _, l := range Layers() {
		if !v.IsVisible(l) {
			out = append(out, l)
		}
	}
	return out
}

// Any reports whether at least one layer is shown.
func (v *Visibility) Any() bool {
	return len(v.Visible()) > 0
}

// Clone returns an independent copy.
func (v *Visibility) Clone() *Visibility {
	if v == nil {
		return NewVisibility()
	}
	c := *v
	return &c
}
