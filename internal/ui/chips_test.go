package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"formbox/internal/option"
)

func TestRenderPillChip(t *testing.T) {
	t.Run("Removable", func(t *testing.T) {
		got := ansi.Strip(renderPillChip("backend", chipStateNormal, true))
		if !strings.Contains(got, "backend "+chipClose) {
			t.Errorf("expected label followed by remove glyph, got %q", got)
		}
		if !strings.HasPrefix(got, pillLeft) || !strings.HasSuffix(got, pillRight) {
			t.Errorf("expected pill caps around %q", got)
		}
	})

	t.Run("NotRemovable", func(t *testing.T) {
		got := ansi.Strip(renderPillChip("backend", chipStateDisabled, false))
		if strings.Contains(got, chipClose) {
			t.Errorf("disabled chip must not offer removal, got %q", got)
		}
	})
}

func TestLayoutChips_Empty(t *testing.T) {
	lines, boxes := layoutChips(nil, 40, -1, true)
	if lines != nil || boxes != nil {
		t.Fatalf("expected no lines for empty value, got %v %v", lines, boxes)
	}
}

func TestLayoutChips_SingleLine(t *testing.T) {
	opts := []option.Option{option.New("api", "api"), option.New("ui", "ui")}
	lines, boxes := layoutChips(opts, 80, -1, true)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(boxes))
	}
	if boxes[0].x != 0 {
		t.Errorf("first chip should start at column 0, got %d", boxes[0].x)
	}
	if want := boxes[0].width + 1; boxes[1].x != want {
		t.Errorf("second chip should start at %d, got %d", want, boxes[1].x)
	}
	if w := lipgloss.Width(lines[0]); w != boxes[1].x+boxes[1].width {
		t.Errorf("line width %d does not end at last chip", w)
	}
}

func TestLayoutChips_WordWrap(t *testing.T) {
	opts := []option.Option{
		option.New("frontend", "fe"),
		option.New("backend", "be"),
		option.New("database", "db"),
	}
	lines, boxes := layoutChips(opts, 25, -1, true)
	if len(lines) < 2 {
		t.Fatalf("expected chips to wrap, got %d line(s)", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > 25 {
			t.Errorf("line %d is %d wide, exceeds 25", i, w)
		}
	}
	if boxes[len(boxes)-1].line == 0 {
		t.Error("expected last chip on a wrapped line")
	}
	for i := 1; i < len(boxes); i++ {
		if boxes[i].line != boxes[i-1].line && boxes[i].x != 0 {
			t.Errorf("chip %d starts a line at column %d", i, boxes[i].x)
		}
	}
}

func TestChipAt(t *testing.T) {
	opts := []option.Option{option.New("api", "api"), option.New("ui", "ui")}
	_, boxes := layoutChips(opts, 80, -1, true)
	second := boxes[1]

	t.Run("BodyHit", func(t *testing.T) {
		b, onClose, ok := chipAt(boxes, second.x+1, 0)
		if !ok || b.value != "ui" {
			t.Fatalf("expected hit on ui chip, got %+v ok=%v", b, ok)
		}
		if onClose {
			t.Error("press on the label must not count as remove")
		}
	})

	t.Run("CloseHit", func(t *testing.T) {
		b, onClose, ok := chipAt(boxes, second.closeX(), 0)
		if !ok || !onClose || b.value != "ui" {
			t.Fatalf("expected remove hit on ui, got %+v onClose=%v ok=%v", b, onClose, ok)
		}
	})

	t.Run("GapMiss", func(t *testing.T) {
		if _, _, ok := chipAt(boxes, boxes[0].width, 0); ok {
			t.Error("the space between chips is not a chip")
		}
	})

	t.Run("OtherLineMiss", func(t *testing.T) {
		if _, _, ok := chipAt(boxes, second.x, 1); ok {
			t.Error("expected miss on a line without chips")
		}
	})
}

func TestCloseGlyphColumnMatchesRender(t *testing.T) {
	chip := ansi.Strip(renderPillChip("ops", chipStateNormal, true))
	_, boxes := layoutChips([]option.Option{option.New("ops", "ops")}, 40, -1, true)
	col := boxes[0].closeX()
	runes := []rune(chip)
	if col >= len(runes) {
		t.Fatalf("column %d outside chip %q", col, chip)
	}
	if got := string(runes[col]); got != chipClose {
		t.Errorf("expected %q at column %d, got %q", chipClose, col, got)
	}
}
