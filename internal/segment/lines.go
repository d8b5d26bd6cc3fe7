package segment

import (
	"strings"

	"github.com/sells-group/gchange/internal/industry"
	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/textnorm"
)

// flattenLines reads the grid row by row and returns every non-empty cell
// as one line, keeping the raw text.
func flattenLines(grid [][]string) []string {
	var lines []string
	for _, row := range grid {
		for _, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			lines = append(lines, cell)
		}
	}
	return lines
}

// trimLeadingColumns drops columns that are empty in every row so that a
// listing pasted from column B is read like one pasted from column A.
func trimLeadingColumns(grid [][]string) [][]string {
	first := -1
	for _, row := range grid {
		for c, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if first < 0 || c < first {
				first = c
			}
			break
		}
	}
	if first <= 0 {
		return grid
	}
	out := make([][]string, len(grid))
	for i, row := range grid {
		if len(row) > first {
			out[i] = row[first:]
		}
	}
	return out
}

// cell returns grid[r][c] or "" when out of range.
func cell(grid [][]string, r, c int) string {
	if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
		return ""
	}
	return grid[r][c]
}

// finish applies the per-field post-processing shared by every layout:
// company and address are normalized, industry is stripped of review
// noise and the phone is kept verbatim.
func finish(company, industryText, address, phoneText string) model.Record {
	return model.NewRecord(
		textnorm.Normalize(company),
		industry.StripReviewNoise(industryText),
		textnorm.Normalize(address),
		strings.TrimSpace(phoneText),
	)
}
