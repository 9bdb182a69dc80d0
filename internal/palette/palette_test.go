package palette

import (
	"errors"
	"slices"
	"testing"

	roseerrors "github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/rose"
)

func TestBuiltins(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name  string
		blend rose.BlendMode
	}{
		{Default, rose.BlendNormal},
		{Contrast, rose.BlendMultiply},
		{Mono, rose.BlendScreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := reg.Get(tt.name)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.name, err)
			}
			if p.Name != tt.name {
				t.Errorf("Name = %q", p.Name)
			}
			for _, l := range rose.Layers() {
				if got := p.Layers.Blend(l); got != tt.blend {
					t.Errorf("%v blend = %q, want %q", l, got, tt.blend)
				}
			}
			if !IsBuiltin(tt.name) {
				t.Errorf("IsBuiltin(%q) = false", tt.name)
			}
		})
	}
}

func TestContrastKeepsDefaultHues(t *testing.T) {
	reg := NewRegistry()
	def, _ := reg.Get(Default)
	con, _ := reg.Get(Contrast)

	for _, l := range rose.Layers() {
		if def.Layers[l].Colors != con.Layers[l].Colors {
			t.Errorf("%v colors differ between default and contrast", l)
		}
	}
}

func TestMonoIsGrey(t *testing.T) {
	p, _ := NewRegistry().Get(Mono)
	for _, l := range rose.Layers() {
		for b, c := range p.Layers[l].Colors {
			if c.R != c.G || c.G != c.B {
				t.Errorf("%v bin %d = %v, not grey", l, b, c)
			}
		}
	}
}

func TestRegistryCustom(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Get("warm"); !errors.Is(err, roseerrors.ErrPaletteNotFound) {
		t.Fatalf("Get(warm) error = %v, want ErrPaletteNotFound", err)
	}
	if reg.IsValid("warm") {
		t.Error("IsValid(warm) before registering")
	}

	warm := &Palette{Name: "warm", Layers: rose.DefaultLayers()}
	if err := reg.Register(warm); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(&Palette{Name: "alpha"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	want := []string{Default, Contrast, Mono, "alpha", "warm"}
	if got := reg.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	got, err := reg.Get("warm")
	if err != nil {
		t.Fatal(err)
	}
	got.Layers[rose.Layer10m].Name = "mutated"
	again, _ := reg.Get("warm")
	if again.Layers[rose.Layer10m].Name == "mutated" {
		t.Error("Get should return a copy")
	}

	if !reg.Unregister("warm") || reg.Unregister("warm") {
		t.Error("Unregister should remove once")
	}
}

func TestRegisterRejectsBuiltin(t *testing.T) {
	err := NewRegistry().Register(&Palette{Name: Default})
	if !errors.Is(err, roseerrors.ErrPaletteInvalid) {
		t.Errorf("Register(default) error = %v, want ErrPaletteInvalid", err)
	}
}
