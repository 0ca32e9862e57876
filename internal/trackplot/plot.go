// Package trackplot renders reconstruction results for visual review:
// PNG figures via gonum/plot and an interactive HTML map via go-echarts.
package trackplot

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/trackgeo/internal/track"
	"github.com/banshee-data/trackgeo/internal/units"
)

// Overview draws both boundaries and the centerline in the X/Y plane.
func Overview(inside, outside track.Path, stations []track.Station) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Track boundaries and centerline"
	p.X.Label.Text = "East (m)"
	p.Y.Label.Text = "North (m)"

	series := []struct {
		name string
		path track.Path
	}{
		{"inside", inside},
		{"outside", outside},
		{"centerline", track.StationPositions(stations)},
	}
	colors := generateColors(len(series))
	for i, s := range series {
		if len(s.path) == 0 {
			continue
		}
		line, err := plotter.NewLine(planarXYs(s.path))
		if err != nil {
			return nil, fmt.Errorf("trackplot: %s line: %w", s.name, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Add(plotter.NewGrid())

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteOverview renders Overview as a 10x10 inch PNG to w.
func WriteOverview(w io.Writer, inside, outside track.Path, stations []track.Station) error {
	p, err := Overview(inside, outside, stations)
	if err != nil {
		return err
	}
	return writePNG(w, p, 10*vg.Inch, 10*vg.Inch)
}

// BankProfile plots bank angle in degrees against station distance.
func BankProfile(stations []track.Station) (*plot.Plot, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("trackplot: %w: no stations", track.ErrEmptyBoundary)
	}
	p := plot.New()
	p.Title.Text = "Bank angle profile"
	p.X.Label.Text = "Distance (m)"
	p.Y.Label.Text = "Bank angle (deg)"

	pts := make(plotter.XYs, len(stations))
	for i, s := range stations {
		pts[i] = plotter.XY{X: s.Distance, Y: units.FromRadians(s.BankAngle, units.Degrees)}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("trackplot: bank line: %w", err)
	}
	line.Color = generateColors(1)[0]
	line.Width = vg.Points(1)
	p.Add(line, plotter.NewGrid())
	return p, nil
}

// WriteBankProfile renders BankProfile as a 14x6 inch PNG to w.
func WriteBankProfile(w io.Writer, stations []track.Station) error {
	p, err := BankProfile(stations)
	if err != nil {
		return err
	}
	return writePNG(w, p, 14*vg.Inch, 6*vg.Inch)
}

func writePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("trackplot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("trackplot: write png: %w", err)
	}
	return nil
}

func planarXYs(p track.Path) plotter.XYs {
	out := make(plotter.XYs, len(p))
	for i, pt := range p {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}

// generateColors creates a palette of n distinct colors
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.45)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}
	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q
	return uint8(hueToRGB(p, q, h+1.0/3.0) * 255), uint8(hueToRGB(p, q, h) * 255), uint8(hueToRGB(p, q, h-1.0/3.0) * 255)
}

func hueToRGB(p, q, t float64) float64 {
	switch {
	case t < 0:
		t += 1
	case t > 1:
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
