package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motionsim/internal/motion"
)

// Series extractors for plotting record fields.
var (
	CmdVel = func(r motion.Record) float64 { return r.CmdVel }
	CmdPos = func(r motion.Record) float64 { return r.CmdPos }
	ObjVel = func(r motion.Record) float64 { return r.ObjVel }
	ObjPos = func(r motion.Record) float64 { return r.ObjPos }
	Force  = func(r motion.Record) float64 { return r.Force }
)

// Extract pulls one field out of a record series.
func Extract(records []motion.Record, f func(motion.Record) float64) []float64 {
	data := make([]float64, len(records))
	for i, rec := range records {
		data[i] = f(rec)
	}
	return data
}

// PlotOverlay renders command and object series in one plot so tracking lag
// and overshoot are visible directly.
func PlotOverlay(records []motion.Record, cmd, obj func(motion.Record) float64, caption string, width, height int) string {
	return asciigraph.PlotMany(
		[][]float64{Extract(records, cmd), Extract(records, obj)},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Gray, asciigraph.Green),
	)
}

// Plot renders a single record field.
func Plot(records []motion.Record, f func(motion.Record) float64, caption string, width, height int) string {
	return asciigraph.Plot(Extract(records, f),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
