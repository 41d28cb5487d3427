package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// layerColors cycles AutoCAD colour numbers across cargo specs.
var layerColors = []dxfcolor.ColorNumber{
	dxfcolor.Red,
	dxfcolor.Yellow,
	dxfcolor.Green,
	dxfcolor.Cyan,
	dxfcolor.Blue,
	dxfcolor.Magenta,
}

// ExportPlanDXF writes the plan view (x across, z up, door at the right)
// of one container as a DXF drawing. Each cargo spec gets its own layer so
// CAD consumers can toggle specs independently. Units are centimetres.
func ExportPlanDXF(path string, result model.PackResult) error {
	d := dxf.NewDrawing()

	// Container outline on the default layer.
	c := result.Container
	if err := drawRect(d, 0, 0, float64(c.Length), float64(c.Width)); err != nil {
		return err
	}

	layerFor := make(map[string]string)
	for _, p := range result.Placements {
		layer, ok := layerFor[p.SpecID]
		if !ok {
			layer = layerName(p.Name, len(layerFor))
			col := layerColors[len(layerFor)%len(layerColors)]
			if _, err := d.AddLayer(layer, col, dxf.DefaultLineType, true); err != nil {
				return fmt.Errorf("failed to add layer %q: %w", layer, err)
			}
			layerFor[p.SpecID] = layer
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}
		if err := drawRect(d, float64(p.X), float64(p.Z), float64(p.Length), float64(p.Width)); err != nil {
			return err
		}
	}

	return d.SaveAs(path)
}

// ExportShipmentDXF writes one DXF per container next to the given base
// path: base_1.dxf, base_2.dxf, …
func ExportShipmentDXF(basePath string, sh model.Shipment) error {
	if len(sh.Results) == 0 {
		return fmt.Errorf("no containers to export")
	}
	base := strings.TrimSuffix(basePath, ".dxf")
	for i, result := range sh.Results {
		path := fmt.Sprintf("%s_%d.dxf", base, i+1)
		if err := ExportPlanDXF(path, result); err != nil {
			return fmt.Errorf("container %d: %w", i+1, err)
		}
	}
	return nil
}

// drawRect draws an axis-aligned rectangle as four lines on the current
// layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	lines := [][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for _, l := range lines {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return err
		}
	}
	return nil
}

// layerName builds a DXF-safe layer name from a cargo name.
func layerName(name string, idx int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	s := b.String()
	if s == "" {
		s = "CARGO"
	}
	if len(s) > 24 {
		s = s[:24]
	}
	return fmt.Sprintf("%s_%d", s, idx+1)
}
