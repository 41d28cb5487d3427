package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/StowPlan/internal/engine"
	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testShipment plans a small, fully deterministic two-spec load.
func testShipment(t *testing.T) ([]model.CargoSpec, model.Shipment) {
	t.Helper()
	specs := []model.CargoSpec{
		{ID: "pal", Name: "Euro pallet", Length: 120, Width: 80, Height: 150, Weight: 450, Quantity: 4},
		{ID: "drm", Name: "Drum crate", Length: 60, Width: 60, Height: 90, Weight: 220, Quantity: 2, Unstackable: true},
	}
	sh, err := engine.New(model.DefaultSettings()).Plan(specs, model.Uniform("20GP"))
	require.NoError(t, err)
	require.NotEmpty(t, sh.Results)
	require.Greater(t, sh.PlacedCount(), 0)
	return specs, sh
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "export should create %s", path)
	assert.Greater(t, info.Size(), int64(0), "exported file should not be empty")
}

func TestExportPDF(t *testing.T) {
	_, sh := testShipment(t)
	path := filepath.Join(t.TempDir(), "plan.pdf")

	require.NoError(t, ExportPDF(path, sh))
	requireFile(t, path)
}

func TestExportPDF_EmptyShipment(t *testing.T) {
	err := ExportPDF(filepath.Join(t.TempDir(), "plan.pdf"), model.Shipment{})
	require.Error(t, err)
}

func TestExportPDF_WithResidual(t *testing.T) {
	_, sh := testShipment(t)
	sh.Results[len(sh.Results)-1].Unplaced = []model.Box{
		{ID: "x-1", SpecID: "x", Name: "Leftover", Length: 100, Width: 100, Height: 100, Weight: 80},
	}
	path := filepath.Join(t.TempDir(), "plan.pdf")

	require.NoError(t, ExportPDF(path, sh))
	requireFile(t, path)
}

func TestCollectLabelInfos(t *testing.T) {
	_, sh := testShipment(t)

	labels := CollectLabelInfos(sh)
	require.Len(t, labels, sh.PlacedCount())

	assert.Equal(t, 1, labels[0].Container)
	assert.Equal(t, 1, labels[0].Sequence)
	assert.Equal(t, "20GP", labels[0].Type)
	assert.NotEmpty(t, labels[0].Name)
}

func TestExportLabels(t *testing.T) {
	_, sh := testShipment(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, sh))
	requireFile(t, path)
}

func TestExportLabels_EmptyShipment(t *testing.T) {
	err := ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), model.Shipment{})
	require.Error(t, err)
}

func TestExportWorkbook(t *testing.T) {
	specs, sh := testShipment(t)
	path := filepath.Join(t.TempDir(), "shipment.xlsx")

	require.NoError(t, ExportWorkbook(path, specs, sh))
	requireFile(t, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Manifest")
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Container 1 (20GP)")

	name, err := f.GetCellValue("Manifest", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Euro pallet", name)

	seq, err := f.GetCellValue("Container 1 (20GP)", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1", seq)
}

func TestExportPlanDXF(t *testing.T) {
	_, sh := testShipment(t)
	path := filepath.Join(t.TempDir(), "container.dxf")

	require.NoError(t, ExportPlanDXF(path, sh.Results[0]))
	requireFile(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "LINE")
	assert.Contains(t, content, "EURO_PALLET_1", "cargo specs get their own layers")
}

func TestExportShipmentDXF(t *testing.T) {
	_, sh := testShipment(t)
	base := filepath.Join(t.TempDir(), "plan.dxf")

	require.NoError(t, ExportShipmentDXF(base, sh))
	for i := range sh.Results {
		requireFile(t, filepath.Join(filepath.Dir(base), "plan_"+string(rune('1'+i))+".dxf"))
	}

	require.Error(t, ExportShipmentDXF(base, model.Shipment{}))
}

func TestLayerName(t *testing.T) {
	assert.Equal(t, "EURO_PALLET_1", layerName("Euro pallet", 0))
	assert.Equal(t, "CARGO_3", layerName("###", 2))
	long := layerName("An exceedingly long cargo description name", 0)
	assert.LessOrEqual(t, len(long), 27)
}
