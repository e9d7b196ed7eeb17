// Package export writes archived-tenant history as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hillgate/server/internal/models"
)

// SheetName is the sheet the archived tenants are written to.
const SheetName = "Archived Tenants"

// Columns is the fixed export header. The order is part of the contract with
// the staff who consume the spreadsheet.
var Columns = []string{
	"Tenant Name",
	"National ID",
	"Mobile",
	"Workplace",
	"Cluster",
	"Villa",
	"Start Date",
}

// WriteArchivedTenants writes one row per tenant, fields projected directly
// with no aggregation or formatting beyond the date layout.
func WriteArchivedTenants(w io.Writer, tenants []models.Tenant) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, name := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell name: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, tenant := range tenants {
		values := []interface{}{
			tenant.Name,
			tenant.NationalID,
			tenant.Mobile,
			tenant.Workplace,
			tenant.Cluster,
			tenant.Villa,
			tenant.StartDate.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
