package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/motionsim/internal/motion"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("Set(0,0) left the cell empty")
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(8, 0)
	c.Set(0, 8)

	c.Clear()
	for row := range c.Grid {
		for col := range c.Grid[row] {
			if c.Grid[row][col] != 0x2800 {
				t.Fatalf("Clear left cell (%d,%d) = %x", row, col, c.Grid[row][col])
			}
		}
	}
}

func TestCanvasDrawSeries(t *testing.T) {
	records := []motion.Record{
		{Time: 0, ObjPos: 0},
		{Time: 1, ObjPos: 0.5},
		{Time: 2, ObjPos: 1},
	}

	c := NewCanvas(20, 10)
	c.DrawSeries(records, 0, 1, func(r motion.Record) float64 { return r.ObjPos })

	set := 0
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				set++
			}
		}
	}
	if set == 0 {
		t.Fatal("DrawSeries set no pixels")
	}

	out := c.String()
	if strings.Count(out, "\n") != 10 {
		t.Errorf("String() has %d lines, want 10", strings.Count(out, "\n"))
	}
}

func TestCanvasDrawSeries_Degenerate(t *testing.T) {
	c := NewCanvas(10, 5)

	// too few points and inverted range are both no-ops
	c.DrawSeries([]motion.Record{{ObjPos: 1}}, 0, 1, func(r motion.Record) float64 { return r.ObjPos })
	c.DrawSeries([]motion.Record{{}, {}}, 1, 0, func(r motion.Record) float64 { return r.ObjPos })

	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				t.Fatal("degenerate DrawSeries modified the canvas")
			}
		}
	}
}

func TestExtract(t *testing.T) {
	records := []motion.Record{
		{Force: 1.5, ObjVel: -2},
		{Force: 2.5, ObjVel: 3},
	}
	forces := Extract(records, Force)
	if len(forces) != 2 || forces[0] != 1.5 || forces[1] != 2.5 {
		t.Errorf("Extract(Force) = %v", forces)
	}
	vels := Extract(records, ObjVel)
	if vels[0] != -2 || vels[1] != 3 {
		t.Errorf("Extract(ObjVel) = %v", vels)
	}
}
