package segment

import "strings"

// detectScanRows bounds how many rows Detect inspects.
const detectScanRows = 60

// Detect classifies a grid. A template header wins; otherwise the first
// rows are scored for label vocabulary in the first two columns and for
// association-style rows. Anything else is treated as phone blocks.
func Detect(grid [][]string) Layout {
	if hasTemplateHeader(grid) {
		return LayoutTemplate
	}
	grid = trimLeadingColumns(grid)

	var labelHits, assocHits int
	for r := 0; r < len(grid) && r < detectScanRows; r++ {
		if isLabelRow(cell(grid, r, 0), cell(grid, r, 1)) {
			labelHits++
		}
		if isAssociationRow(grid[r]) {
			assocHits++
		}
	}

	switch {
	case labelHits >= 2 && labelHits >= assocHits:
		return LayoutLabeled
	case assocHits >= 2:
		return LayoutAssociation
	default:
		return LayoutPhoneBlock
	}
}

// isLabelRow reports a field label with a value beside it or after a colon.
func isLabelRow(left, right string) bool {
	if label, value, ok := splitLabelCell(left); ok {
		left, right = label, value
	}
	switch lookupLabel(left) {
	case fieldNone, fieldIgnored:
		return false
	}
	return strings.TrimSpace(right) != ""
}

// isAssociationRow reports a TEL cell in the third column, or a row with
// at least three filled cells led by a legal-entity name.
func isAssociationRow(row []string) bool {
	if len(row) > 2 && isTelCell(row[2]) {
		return true
	}
	filled := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			filled++
		}
	}
	return filled >= 3 && len(row) > 0 && hasLegalMarker(row[0])
}
