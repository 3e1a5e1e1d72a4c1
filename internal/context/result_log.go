package context

import "learnscript/pkg/lsltypes"

// ResultLog accumulates result entries in line order.
type ResultLog struct {
	entries []lsltypes.ResultEntry
}

// NewResultLog creates an empty log.
func NewResultLog() *ResultLog {
	return &ResultLog{entries: []lsltypes.ResultEntry{}}
}

// Append adds an entry at the end of the log.
func (l *ResultLog) Append(entry lsltypes.ResultEntry) {
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the logged entries.
func (l *ResultLog) Entries() []lsltypes.ResultEntry {
	out := make([]lsltypes.ResultEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *ResultLog) Len() int {
	return len(l.entries)
}

// Errors counts entries with StatusError.
func (l *ResultLog) Errors() int {
	n := 0
	for _, e := range l.entries {
		if e.Status == lsltypes.StatusError {
			n++
		}
	}
	return n
}
