package decoder

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
)

// metadataVotes collects the symbol layout as read from the row indicators.
// The left and right indicator of a row carry different parts depending on
// the row's cluster.
type metadataVotes struct {
	columns   votes
	rowsUpper votes // (rows-1)/3
	rowsLower votes // (rows-1)%3
	ecLevel   votes
}

func (m *metadataVotes) left(s symbol) {
	v := s.value % 30
	switch s.cluster {
	case 0:
		m.rowsUpper.add(v)
	case 3:
		m.ecLevel.add(v / 3)
		m.rowsLower.add(v % 3)
	case 6:
		m.columns.add(v + 1)
	}
}

func (m *metadataVotes) right(s symbol) {
	v := s.value % 30
	switch s.cluster {
	case 0:
		m.columns.add(v + 1)
	case 3:
		m.rowsUpper.add(v)
	case 6:
		m.ecLevel.add(v / 3)
		m.rowsLower.add(v % 3)
	}
}

// barcodeMetadata is the resolved layout of one symbol.
type barcodeMetadata struct {
	columns int
	rows    int
	ecLevel int
}

// resolve settles the votes. Some encoders write a short row count into
// the left indicators, so the row count is never taken below the highest
// row actually seen.
func (m *metadataVotes) resolve(sampledColumns, highestRow int) (barcodeMetadata, error) {
	md := barcodeMetadata{columns: sampledColumns}

	if cols := m.columns.best(); len(cols) == 1 && cols[0] != sampledColumns {
		return md, fmt.Errorf("pdf417: indicators report %d columns, grid has %d: %w",
			cols[0], sampledColumns, pdf417go.ErrFormat)
	}

	ec := m.ecLevel.best()
	if len(ec) == 0 {
		return md, fmt.Errorf("pdf417: no error correction level in row indicators: %w", pdf417go.ErrFormat)
	}
	md.ecLevel = ec[0]

	voted := 0
	if upper := m.rowsUpper.best(); len(upper) > 0 {
		lower := 0
		if l := m.rowsLower.best(); len(l) > 0 {
			lower = l[0]
		}
		voted = 3*upper[len(upper)-1] + lower + 1
	}
	md.rows = max(voted, highestRow+1)
	if md.rows < 1 || md.rows > maxRows {
		return md, fmt.Errorf("pdf417: %d rows: %w", md.rows, pdf417go.ErrFormat)
	}
	return md, nil
}
