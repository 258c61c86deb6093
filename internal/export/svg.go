// Package export renders run data as SVG files.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/motionsim/internal/motion"
	"github.com/san-kum/motionsim/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG draws one record field against time as an SVG polyline.
func SeriesToSVG(records []motion.Record, extract func(motion.Record) float64, width, height int, strokeColor string) string {
	if len(records) < 2 {
		return ""
	}

	minY, maxY := extract(records[0]), extract(records[0])
	for _, rec := range records {
		v := extract(rec)
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	minX, maxX := records[0].Time, records[len(records)-1].Time

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, rec := range records {
		x := (rec.Time - minX) / rangeX * float64(width)
		y := float64(height) - (extract(rec)-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// TrackingToSVG overlays commanded and measured positions in one plot.
// Commanded is drawn dashed so the object trace stays readable where the
// two coincide.
func TrackingToSVG(records []motion.Record, width, height int) string {
	if len(records) < 2 {
		return ""
	}

	minY, maxY := records[0].CmdPos, records[0].CmdPos
	for _, rec := range records {
		for _, v := range [2]float64{rec.CmdPos, rec.ObjPos} {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}
	minX, maxX := records[0].Time, records[len(records)-1].Time

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	path := func(extract func(motion.Record) float64) string {
		var p strings.Builder
		for i, rec := range records {
			x := (rec.Time - minX) / rangeX * float64(width)
			y := float64(height) - (extract(rec)-minY)/rangeY*float64(height)
			if i == 0 {
				p.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				p.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		return p.String()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#888899" stroke-width="1.0" stroke-dasharray="4 3" d="%s"/>
`, path(func(r motion.Record) float64 { return r.CmdPos })))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#00ff88" stroke-width="1.5" d="%s"/>
`, path(func(r motion.Record) float64 { return r.ObjPos })))
	sb.WriteString("</svg>")
	return sb.String()
}

// WriteFile writes rendered SVG content to disk.
func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("export: empty svg document")
	}
	return os.WriteFile(path, []byte(svg), 0o644)
}
