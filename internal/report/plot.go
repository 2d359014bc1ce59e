package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"cooling_control/internal/models"
)

const plotFileName = "full_analysis_plot.png"

var (
	colorDisturbance = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	colorTemperature = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorTarget      = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorError       = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	colorCompressor  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// WritePlot renders four time-aligned panels (disturbance, temperature
// against the target, error and compressor state) as one PNG.
func WritePlot(w io.Writer, cfg models.SimulationConfig, samples []models.Sample) error {
	n := len(samples)
	dist := make(plotter.XYs, n)
	temp := make(plotter.XYs, n)
	errs := make(plotter.XYs, n)
	comp := make(plotter.XYs, n)
	for i, s := range samples {
		x := float64(s.Minute)
		dist[i] = plotter.XY{X: x, Y: s.Disturbance}
		temp[i] = plotter.XY{X: x, Y: s.Temperature}
		errs[i] = plotter.XY{X: x, Y: s.Error}
		comp[i].X = x
		if s.CompressorOn {
			comp[i].Y = 1
		}
	}

	distPlot, _, err := linePanel("External disturbance", "Disturbance (°C)", dist, colorDisturbance)
	if err != nil {
		return err
	}
	tempPlot, tempLine, err := linePanel("Temperature vs target", "Temperature (°C)", temp, colorTemperature)
	if err != nil {
		return err
	}
	target := plotter.NewFunction(func(float64) float64 { return cfg.TargetTemperature })
	target.Color = colorTarget
	target.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	tempPlot.Add(target)
	tempPlot.Legend.Add("temperature", tempLine)
	tempPlot.Legend.Add("target", target)
	tempPlot.Legend.Top = true

	errPlot, _, err := linePanel("Control error", "Error (°C)", errs, colorError)
	if err != nil {
		return err
	}

	compPlot, step, err := linePanel("Compressor state", "State", comp, colorCompressor)
	if err != nil {
		return err
	}
	step.StepStyle = plotter.PreStep
	compPlot.X.Label.Text = "Time (min)"
	compPlot.Y.Min, compPlot.Y.Max = -0.1, 1.1
	compPlot.Y.Tick.Marker = plot.ConstantTicks{{Value: 0, Label: "OFF"}, {Value: 1, Label: "ON"}}

	panels := [][]*plot.Plot{{distPlot}, {tempPlot}, {errPlot}, {compPlot}}

	img := vgimg.NewWith(vgimg.UseWH(12*vg.Inch, 14*vg.Inch), vgimg.UseDPI(100))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadTop:    vg.Points(8),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(12),
		PadY:      vg.Points(14),
	}
	canvases := plot.Align(panels, tiles, dc)
	for i, row := range panels {
		row[0].Draw(canvases[i][0])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func linePanel(title, ylabel string, pts plotter.XYs, c color.Color) (*plot.Plot, *plotter.Line, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, nil, fmt.Errorf("plot %s: %w", title, err)
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	p.Add(line)
	return p, line, nil
}
