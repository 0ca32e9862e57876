package trackplot

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/trackgeo/internal/track"
	"github.com/banshee-data/trackgeo/internal/units"
)

var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// RenderBankMap writes an HTML page plotting every station in the X/Y plane
// coloured by bank angle in degrees.
func RenderBankMap(w io.Writer, stations []track.Station, title string) error {
	if len(stations) == 0 {
		return fmt.Errorf("trackplot: %w: no stations", track.ErrEmptyBoundary)
	}

	data := make([]opts.ScatterData, len(stations))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	minA, maxA := math.Inf(1), math.Inf(-1)
	for i, s := range stations {
		p := s.Position
		deg := units.FromRadians(s.BankAngle, units.Degrees)
		data[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y, deg}}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		minA, maxA = math.Min(minA, deg), math.Max(maxA, deg)
	}
	// Square extent so the track is not distorted.
	half := math.Max(maxX-minX, maxY-minY)/2 + 10
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	if minA == maxA {
		minA, maxA = minA-1, maxA+1
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("stations=%d bank=[%.2f, %.2f] deg", len(stations), minA, maxA)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: cx - half, Max: cx + half, Name: "East (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: cy - half, Max: cy + half, Name: "North (m)", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(minA),
			Max:        float32(maxA),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	scatter.AddSeries("bank_angle", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("trackplot: render: %w", err)
	}
	return nil
}
