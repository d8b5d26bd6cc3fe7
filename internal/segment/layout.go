// Package segment rebuilds company records from line-oriented directory
// dumps pasted into spreadsheet grids. Each source layout has its own
// Segmenter; Detect picks one when the caller does not.
package segment

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gchange/internal/model"
)

// Layout identifies a source layout.
type Layout int

const (
	// LayoutAuto asks Detect to choose a layout.
	LayoutAuto Layout = iota
	// LayoutTemplate is the fixed-header input sheet (企業様名称/業種/住所/電話番号).
	LayoutTemplate
	// LayoutPhoneBlock is a vertical map-search export anchored on phone lines.
	LayoutPhoneBlock
	// LayoutLabeled is a two-column "label: value" stack.
	LayoutLabeled
	// LayoutAssociation is a four-column association directory.
	LayoutAssociation
)

var layoutNames = map[Layout]string{
	LayoutAuto:        "auto",
	LayoutTemplate:    "template",
	LayoutPhoneBlock:  "phone-block",
	LayoutLabeled:     "labeled",
	LayoutAssociation: "association",
}

// String returns the layout's flag name.
func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLayout maps a flag or config value to a Layout.
func ParseLayout(s string) (Layout, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LayoutAuto, nil
	}
	for l, name := range layoutNames {
		if name == s {
			return l, nil
		}
	}
	return LayoutAuto, eris.Errorf("segment: unknown layout %q (want auto, template, phone-block, labeled or association)", s)
}

// Segmenter turns a raw grid into records. Grids are row-major and row
// order is significant.
type Segmenter interface {
	Segment(grid [][]string) ([]model.Record, error)
}

// For returns the Segmenter for a concrete layout.
func For(l Layout) (Segmenter, error) {
	switch l {
	case LayoutTemplate:
		return Template{}, nil
	case LayoutPhoneBlock:
		return NewPhoneBlock(), nil
	case LayoutLabeled:
		return Labeled{}, nil
	case LayoutAssociation:
		return Association{}, nil
	default:
		return nil, eris.Errorf("segment: no segmenter for layout %s", l)
	}
}

// Run segments grid with layout l, detecting the layout first when l is
// LayoutAuto. It returns the layout actually used. A grid carrying the
// template header always uses the template path.
func Run(grid [][]string, l Layout) ([]model.Record, Layout, error) {
	if l == LayoutAuto || hasTemplateHeader(grid) {
		l = Detect(grid)
	}
	s, err := For(l)
	if err != nil {
		return nil, l, err
	}
	records, err := s.Segment(grid)
	if err != nil {
		return nil, l, err
	}
	return records, l, nil
}
