package catalog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the published AISC shapes workbook, in load order, with the
// family each contributes.
var workbookSheets = []struct {
	name   string
	family Family
}{
	{"Pipe", FamilyPipe},
	{"Square HSS", FamilyHSS},
	{"Rectangular HSS", FamilyHSS},
	{"W-shapes", FamilyW},
}

// depthColumns lists the header names that can carry the section depth,
// which differs by family in the published workbook.
var depthColumns = []string{"d", "Ht", "OD", "B"}

// LoadWorkbook reads sections from an AISC shapes workbook on disk and
// returns a catalog built from the rows that pass validation.
func LoadWorkbook(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog workbook: %w", err)
	}
	defer f.Close()
	return fromWorkbook(f)
}

// ReadWorkbook reads sections from workbook bytes, for uploads and tests.
func ReadWorkbook(r io.Reader) (*Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog workbook: %w", err)
	}
	defer f.Close()
	return fromWorkbook(f)
}

func fromWorkbook(f *excelize.File) (*Catalog, error) {
	var sections []SectionProperties
	for _, sheet := range workbookSheets {
		rows, err := f.GetRows(sheet.name)
		if err != nil || len(rows) < 2 {
			continue // sheet absent or empty; the others may still load
		}
		cols := headerIndex(rows[0])
		for _, row := range rows[1:] {
			s, err := parseSectionRow(row, cols, sheet.family)
			if err != nil {
				continue
			}
			sections = append(sections, s)
		}
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("catalog workbook contains no usable section rows")
	}
	return New(sections)
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	return cols
}

func parseSectionRow(row []string, cols map[string]int, fam Family) (SectionProperties, error) {
	label, err := cell(row, cols, "AISC_Manual_Label")
	if err != nil {
		return SectionProperties{}, err
	}
	w, err := numCell(row, cols, "W")
	if err != nil {
		return SectionProperties{}, err
	}
	a, err := numCell(row, cols, "A")
	if err != nil {
		return SectionProperties{}, err
	}
	sx, err := numCell(row, cols, "Sx")
	if err != nil {
		return SectionProperties{}, err
	}
	ix, err := numCell(row, cols, "Ix")
	if err != nil {
		return SectionProperties{}, err
	}
	rx, err := numCell(row, cols, "rx")
	if err != nil {
		return SectionProperties{}, err
	}
	var depth float64
	for _, name := range depthColumns {
		if d, derr := numCell(row, cols, name); derr == nil && d > 0 {
			depth = d
			break
		}
	}
	if depth <= 0 {
		return SectionProperties{}, fmt.Errorf("row %q: no depth column", label)
	}
	s := SectionProperties{
		Designation: strings.ToUpper(strings.ReplaceAll(label, " ", "")),
		Family:      fam,
		AreaIn2:     a,
		WeightPLF:   w,
		SxIn3:       sx,
		IxIn4:       ix,
		RxIn:        rx,
		DepthIn:     depth,
	}
	if err := validateRow(s); err != nil {
		return SectionProperties{}, err
	}
	return s, nil
}

func cell(row []string, cols map[string]int, name string) (string, error) {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return "", fmt.Errorf("missing column %q", name)
	}
	v := strings.TrimSpace(row[i])
	if v == "" {
		return "", fmt.Errorf("empty column %q", name)
	}
	return v, nil
}

func numCell(row []string, cols map[string]int, name string) (float64, error) {
	s, err := cell(row, cols, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return v, nil
}
