// Package plotting draws channel samples together with their fitted
// polynomials using gonum/plot.
package plotting

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/corefit/pkg/errors"
	"github.com/YuminosukeSato/corefit/polyfit"
)

// Figure size used by Save.
const (
	Width  = 8 * vg.Inch
	Height = 4 * vg.Inch
)

// curveSamples is the number of points a curved fit is drawn with.
const curveSamples = 32

// Render returns a plot with the samples as a scatter and the fits drawn as
// one continuous line in order. Fits with non-finite coefficients are left
// out of the line; the second return value counts them.
func Render(points []polyfit.Point, fits []polyfit.Polynomial, title string) (*plot.Plot, int, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "temperature"
	p.Add(plotter.NewGrid())

	if len(points) > 0 {
		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i].X, xys[i].Y = pt.X, pt.Y
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, 0, errors.Wrap(err, "plot samples")
		}
		scatter.GlyphStyle.Radius = vg.Points(1.5)
		scatter.GlyphStyle.Color = color.RGBA{R: 90, G: 90, B: 90, A: 255}
		p.Add(scatter)
		p.Legend.Add("samples", scatter)
	}

	curve, skipped := sampleFits(fits)
	if len(curve) > 0 {
		line, err := plotter.NewLine(curve)
		if err != nil {
			return nil, skipped, errors.Wrap(err, "plot fit")
		}
		line.LineStyle.Width = vg.Points(1)
		line.LineStyle.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
		p.Add(line)
		p.Legend.Add(string(fits[0].Method), line)
	}
	return p, skipped, nil
}

func sampleFits(fits []polyfit.Polynomial) (plotter.XYs, int) {
	var (
		xys     plotter.XYs
		skipped int
	)
	for _, f := range fits {
		if !f.IsFinite() {
			skipped++
			continue
		}
		n := 2
		if f.Degree() > 1 {
			n = curveSamples
		}
		step := (f.XMax - f.XMin) / float64(n-1)
		for i := 0; i < n; i++ {
			x := f.XMin + float64(i)*step
			xys = append(xys, plotter.XY{X: x, Y: f.Eval(x)})
		}
	}
	return xys, skipped
}

// Save writes p to path at Width×Height. The image format follows the file
// extension (png, svg, pdf, ...).
func Save(p *plot.Plot, path string) error {
	if err := p.Save(Width, Height, path); err != nil {
		return errors.Wrapf(err, "save plot %q", path)
	}
	return nil
}
