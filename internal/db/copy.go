package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/hkpcalc/internal/model"
)

// ChannelSource implements pgx.CopyFromSource by reading plan summaries from a
// channel. The bounded channel throttles quoting to the COPY writer's pace.
type ChannelSource struct {
	ch      <-chan *model.PlanSummaryRow
	current *model.PlanSummaryRow
	rows    int64
	err     error
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.PlanSummaryRow) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	s.rows++
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Fail records a producer error. It must be called before the channel is
// closed so that COPY sees it once Next returns false.
func (s *ChannelSource) Fail(err error) {
	s.err = err
}

// Err returns the error recorded by Fail, if any.
func (s *ChannelSource) Err() error {
	return s.err
}

// Rows returns how many rows have been handed to COPY so far.
func (s *ChannelSource) Rows() int64 {
	return s.rows
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)
