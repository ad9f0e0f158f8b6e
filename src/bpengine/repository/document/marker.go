package document

import "github.com/uber/bp-engine/src/bpengine/entity"

type marker struct {
	start, end int
	valid      bool
}

// apply moves the marker through the replacement of [offset, offset+oldLen) by newLen characters.
// Insertions at the start push the marker right, insertions at the end are not absorbed. The marker
// becomes invalid when a deletion covers it together with at least one adjacent character, which for a
// line marker means the line and its terminator are gone.
func (m *marker) apply(offset, oldLen, newLen int) {
	if !m.valid {
		return
	}
	editEnd := offset + oldLen
	delta := newLen - oldLen

	switch {
	case editEnd <= m.start:
		m.start += delta
		m.end += delta
	case offset >= m.end:
	case offset <= m.start && editEnd >= m.end:
		if offset < m.start || editEnd > m.end {
			m.valid = false
			return
		}
		m.start, m.end = offset, offset
	case offset <= m.start:
		m.start = offset + newLen
		m.end += delta
	case editEnd <= m.end:
		m.end += delta
	default:
		m.end = offset
	}
}

func (m *marker) textRange() entity.TextRange {
	return entity.TextRange{Start: m.start, End: m.end}
}
