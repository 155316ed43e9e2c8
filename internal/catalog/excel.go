package catalog

import (
	"fmt"
	"io"
	"strings"

	"medguide/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	MedicinesSheet = "Medicines"
	DiseasesSheet  = "Diseases"
)

// MedicineHeader is the column layout shared by export and import.
var MedicineHeader = []string{
	"Name",
	"Generic Name",
	"Description",
	"Category",
	"Manufacturer",
	"Severity Level",
	"Dosage Forms",
	"Indications",
	"Contraindications",
	"Side Effects",
	"Precautions",
	"Interactions",
	"Diseases Treated",
}

var DiseaseHeader = []string{
	"Name",
	"Description",
	"Symptoms",
	"Severity",
	"Treatment Info",
}

const listSeparator = "; "

// ExportMedicinesXLSX renders the medicine catalog as a workbook.
func ExportMedicinesXLSX(medicines []*domain.Medicine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(MedicinesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(MedicinesSheet); err == nil {
		f.SetActiveSheet(index)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, len(MedicineHeader))
	for i, h := range MedicineHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(MedicinesSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(MedicineHeader))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(MedicinesSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}
	if err := f.SetColWidth(MedicinesSheet, "A", lastCol, 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	for i, m := range medicines {
		row := []any{
			m.Name,
			m.GenericName,
			m.Description,
			m.Category,
			m.Manufacturer,
			m.SeverityLevel,
			strings.Join(m.DosageForms, listSeparator),
			m.Indications,
			m.Contraindications,
			m.SideEffects,
			m.Precautions,
			strings.Join(m.Interactions, listSeparator),
			strings.Join(m.DiseasesTreated, listSeparator),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(MedicinesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadXLSX reads the Medicines sheet (or the first sheet) and the optional
// Diseases sheet. Columns are located by header name.
func LoadXLSX(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	medSheet := sheets[0]
	hasDiseases := false
	for _, s := range sheets {
		if s == MedicinesSheet {
			medSheet = s
		}
		if s == DiseasesSheet {
			hasDiseases = true
		}
	}

	c := &Catalog{}
	rows, err := f.GetRows(medSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", medSheet, err)
	}
	for i, rec := range records(rows) {
		m := domain.Medicine{
			Name:              rec["Name"],
			GenericName:       rec["Generic Name"],
			Description:       rec["Description"],
			Category:          rec["Category"],
			Manufacturer:      rec["Manufacturer"],
			SeverityLevel:     rec["Severity Level"],
			DosageForms:       splitList(rec["Dosage Forms"]),
			Indications:       rec["Indications"],
			Contraindications: rec["Contraindications"],
			SideEffects:       rec["Side Effects"],
			Precautions:       rec["Precautions"],
			Interactions:      splitList(rec["Interactions"]),
			DiseasesTreated:   splitList(rec["Diseases Treated"]),
		}
		if err := validateMedicine(&m); err != nil {
			return nil, fmt.Errorf("sheet %q row %d: %w", medSheet, i+2, err)
		}
		c.Medicines = append(c.Medicines, m)
	}

	if hasDiseases {
		rows, err := f.GetRows(DiseasesSheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", DiseasesSheet, err)
		}
		for i, rec := range records(rows) {
			d := domain.Disease{
				Name:          rec["Name"],
				Description:   rec["Description"],
				Symptoms:      splitList(rec["Symptoms"]),
				Severity:      rec["Severity"],
				TreatmentInfo: rec["Treatment Info"],
			}
			if d.Name == "" {
				return nil, fmt.Errorf("sheet %q row %d: name is required", DiseasesSheet, i+2)
			}
			c.Diseases = append(c.Diseases, d)
		}
	}
	return c, nil
}

// records turns a header row plus data rows into name-keyed maps, skipping blank rows.
func records(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	var out []map[string]string
	for _, row := range rows[1:] {
		rec := map[string]string{}
		blank := true
		for col, name := range header {
			if col >= len(row) {
				break
			}
			v := strings.TrimSpace(row[col])
			if v != "" {
				blank = false
			}
			rec[strings.TrimSpace(name)] = v
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
