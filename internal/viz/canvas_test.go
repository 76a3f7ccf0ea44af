package viz

import (
	"strings"
	"testing"
)

func TestCanvasMark(t *testing.T) {
	c := NewCanvas(10, 5, 0, 10, 0, 10)

	c.Mark(5, 5)
	out := c.String()
	if !strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("expected a set braille cell after Mark")
	}
}

func TestCanvasIgnoresOutOfViewport(t *testing.T) {
	c := NewCanvas(10, 5, 0, 10, 0, 10)

	c.Mark(-1, 5)
	c.Mark(5, 11)
	c.Mark(100, -100)

	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Fatalf("expected empty canvas, found set cell %q", r)
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 4, 0, 1, 0, 1)
	c.Mark(0.5, 0.5)
	c.Clear()

	for _, r := range c.String() {
		if r != 0x2800 && r != '\n' {
			t.Fatal("clear left a set cell")
		}
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 5, 0, 10, 0, 10)
	c.Line(0, 0, 10, 10)

	set := 0
	for _, r := range c.String() {
		if r > 0x2800 && r <= 0x28FF {
			set++
		}
	}
	if set < 5 {
		t.Errorf("expected a drawn diagonal, got %d set cells", set)
	}
}
