package lsltypes

// ResultStatus classifies a result entry.
type ResultStatus string

// Result statuses.
const (
	StatusOK      ResultStatus = "ok"
	StatusError   ResultStatus = "error"
	StatusIgnored ResultStatus = "ignored"
)

// ResultEntry is the outcome of one acted-upon script line.
type ResultEntry struct {
	// Line is the 1-based line number in the script.
	Line int `json:"line"`

	// Source is the trimmed line text as written.
	Source string `json:"source"`

	// Command is the canonical command, empty for directives and ignored lines.
	Command Command `json:"command,omitempty"`

	Status  ResultStatus `json:"status"`
	Message string       `json:"message"`
}

// String returns the human-readable message.
func (e ResultEntry) String() string {
	return e.Message
}

// Messages flattens entries into the plain result sequence.
func Messages(entries []ResultEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}
