package chartread

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/normalize"
)

var (
	ErrEmptyChartID  = errors.New("row without chart_id")
	ErrNotContiguous = errors.New("chart rows are not contiguous")
)

// Group is the set of rows belonging to one chart. Patient-level fields
// come from the chart's first row.
type Group struct {
	ChartID             string
	Rows                int
	BonusTenureYears    int
	Insurance           string
	AdditionalInsurance bool

	raw map[string]string
	err error
}

// Chart validates the group's findings into a FindingChart.
func (g *Group) Chart() (model.FindingChart, error) {
	if g.err != nil {
		return model.FindingChart{}, g.err
	}
	return normalize.Chart(g.raw)
}

// Grouper turns the row stream into charts. Rows of one chart must be
// contiguous in the file.
type Grouper struct {
	r    *Reader
	buf  []model.FindingRow
	n, i int
	err  error
	seen map[string]bool
}

func NewGrouper(r *Reader, batchSize int) *Grouper {
	if batchSize < 1 {
		batchSize = 1024
	}
	return &Grouper{r: r, buf: make([]model.FindingRow, batchSize), seen: make(map[string]bool)}
}

// peek returns the current row without consuming it.
func (g *Grouper) peek() (*model.FindingRow, error) {
	for g.i >= g.n {
		if g.err != nil {
			return nil, g.err
		}
		g.n, g.err = g.r.Read(g.buf)
		g.i = 0
	}
	return &g.buf[g.i], nil
}

// Next returns the next chart's rows, or io.EOF after the last one. A
// malformed chart is still returned; its error surfaces from Chart so the
// caller can reject it and carry on.
func (g *Grouper) Next() (*Group, error) {
	first, err := g.peek()
	if err != nil {
		return nil, err
	}
	grp := &Group{
		ChartID:             first.ChartID,
		BonusTenureYears:    int(first.BonusTenureYears),
		Insurance:           first.Insurance,
		AdditionalInsurance: first.AdditionalInsurance,
		raw:                 make(map[string]string),
	}
	switch {
	case grp.ChartID == "":
		grp.err = ErrEmptyChartID
	case g.seen[grp.ChartID]:
		grp.err = fmt.Errorf("chart %s: %w", grp.ChartID, ErrNotContiguous)
	}
	g.seen[grp.ChartID] = true

	for {
		row, err := g.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if row.ChartID != grp.ChartID {
			break
		}
		g.i++
		grp.Rows++

		tooth := strconv.Itoa(int(row.Tooth))
		if _, dup := grp.raw[tooth]; dup && grp.err == nil {
			grp.err = &model.ValidationError{Field: "tooth", Value: tooth, Err: model.ErrInvalidTooth}
		}
		grp.raw[tooth] = row.Finding
	}
	return grp, nil
}
