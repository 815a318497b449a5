// Package preview renders processed camera paths to PNG for inspection.
package preview

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Faultbox/camsynth/internal/motion"
	"github.com/Faultbox/camsynth/pkg/math"
)

var (
	pathColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	waypointColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	objectColor   = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	startColor    = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// View is a 2D projection of world space.
type View struct {
	Name    string
	XLabel  string
	YLabel  string
	Project func(math.Vec3) math.Vec2
}

// TopView looks down the Y axis.
var TopView = View{Name: "top", XLabel: "X", YLabel: "Z", Project: math.Vec3.XZ}

// SideView looks along the Z axis.
var SideView = View{Name: "side", XLabel: "X", YLabel: "Y (height)", Project: math.Vec3.XY}

// Scene is what gets drawn.
type Scene struct {
	Title     string
	Path      *motion.ProcessedPathData
	Waypoints []motion.CameraCommand
	Object    *math.AABB
}

// Size of each saved image.
var (
	Width  = 8 * vg.Inch
	Height = 8 * vg.Inch
)

// Render writes one PNG per view into outputDir, named <name>_<view>.png,
// and returns the written paths.
func Render(s Scene, outputDir, name string, views ...View) ([]string, error) {
	if s.Path == nil || s.Path.SampleCount() == 0 {
		return nil, errors.New("nothing to plot: path has no samples")
	}
	if len(views) == 0 {
		views = []View{TopView, SideView}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var files []string
	for _, v := range views {
		p, err := build(s, v)
		if err != nil {
			return files, fmt.Errorf("%s view: %w", v.Name, err)
		}

		file := filepath.Join(outputDir, fmt.Sprintf("%s_%s.png", name, v.Name))
		if err := p.Save(Width, Height, file); err != nil {
			return files, fmt.Errorf("failed to save %s: %w", file, err)
		}
		files = append(files, file)
	}
	return files, nil
}

func build(s Scene, v View) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s)", s.Title, v.Name)
	p.X.Label.Text = v.XLabel
	p.Y.Label.Text = v.YLabel
	p.Add(plotter.NewGrid())

	if s.Object != nil {
		if err := addObject(p, *s.Object, v); err != nil {
			return nil, err
		}
	}

	n := s.Path.SampleCount()
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		q := v.Project(s.Path.Sample(i))
		pts[i] = plotter.XY{X: q.X, Y: q.Y}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = pathColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("path (%d samples)", n), line)

	start, err := plotter.NewScatter(pts[:1])
	if err != nil {
		return nil, err
	}
	start.GlyphStyle.Color = startColor
	start.GlyphStyle.Radius = vg.Points(4)
	start.GlyphStyle.Shape = draw.BoxGlyph{}
	p.Add(start)
	p.Legend.Add("start", start)

	if len(s.Waypoints) > 0 {
		wps := make(plotter.XYs, len(s.Waypoints))
		for i, c := range s.Waypoints {
			q := v.Project(c.Position)
			wps[i] = plotter.XY{X: q.X, Y: q.Y}
		}
		sc, err := plotter.NewScatter(wps)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = waypointColor
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add("waypoints", sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	return p, nil
}

// addObject draws the projected outline of the box. Edges parallel to the
// view direction collapse to points and are skipped.
func addObject(p *plot.Plot, box math.AABB, v View) error {
	first := true
	for _, e := range box.Edges() {
		a, b := v.Project(e[0]), v.Project(e[1])
		if b.Sub(a).Length() == 0 {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
		if err != nil {
			return err
		}
		l.Color = objectColor
		l.Width = vg.Points(1)
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		if first {
			p.Legend.Add("object", l)
			first = false
		}
	}
	return nil
}
