package export

import (
	"fmt"

	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportWorkbook writes the shipment to an Excel workbook: a Manifest
// sheet with the declared cargo, one sheet per container with the loading
// sequence, and a Summary sheet with utilisation figures.
func ExportWorkbook(path string, specs []model.CargoSpec, sh model.Shipment) error {
	f := excelize.NewFile()
	defer f.Close()

	const manifestSheet = "Manifest"
	if err := f.SetSheetName("Sheet1", manifestSheet); err != nil {
		return err
	}

	manifestHeader := []string{"Name", "Length (cm)", "Width (cm)", "Height (cm)", "Weight (kg)", "Quantity", "Unstackable"}
	for i, h := range manifestHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(manifestSheet, cell, h); err != nil {
			return err
		}
	}
	for r, s := range specs {
		values := []any{s.Name, s.Length, s.Width, s.Height, s.Weight, s.Quantity, s.Unstackable}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(manifestSheet, cell, v); err != nil {
				return err
			}
		}
	}

	placementHeader := []string{"Seq", "Name", "X (cm)", "Y (cm)", "Z (cm)", "L (cm)", "W (cm)", "H (cm)", "Rotated", "Weight (kg)"}
	for i, result := range sh.Results {
		sheet := fmt.Sprintf("Container %d (%s)", i+1, result.Container.Type)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		for c, h := range placementHeader {
			cell, _ := excelize.CoordinatesToCellName(c+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return err
			}
		}
		for r, p := range result.Placements {
			values := []any{p.Sequence, p.Name, p.X, p.Y, p.Z, p.Length, p.Width, p.Height, p.Rotated, p.Weight}
			for c, v := range values {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	summaryHeader := []string{"Container", "Type", "Items", "Volume (m3)", "Volume %", "Weight (kg)", "Weight %"}
	for i, h := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return err
		}
	}
	for r, result := range sh.Results {
		values := []any{r + 1, result.Container.Type, len(result.Placements),
			result.UsedVolume, result.VolumeUtilization, result.TotalWeight, result.WeightUtilization}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(summarySheet, cell, v); err != nil {
				return err
			}
		}
	}
	row := len(sh.Results) + 3
	if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Unplaced items"); err != nil {
		return err
	}
	if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), len(sh.Residual())); err != nil {
		return err
	}

	return f.SaveAs(path)
}
