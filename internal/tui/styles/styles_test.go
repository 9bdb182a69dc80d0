package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSwatchWidth(t *testing.T) {
	got := Swatch("#FF0000")
	if w := ansi.StringWidth(got); w != 1 {
		t.Errorf("Swatch width = %d, want 1", w)
	}
	if strings.TrimSpace(ansi.Strip(got)) != "" {
		t.Errorf("Swatch content = %q, want blanks", ansi.Strip(got))
	}
}

func TestLegendButtonHiddenDiffers(t *testing.T) {
	if LegendButtonHidden.GetForeground() == LegendButton.GetForeground() {
		t.Error("hidden legend buttons should use a different foreground")
	}
	if !LegendButtonHidden.GetStrikethrough() {
		t.Error("hidden legend buttons should be struck through")
	}
}
