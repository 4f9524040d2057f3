package models

// Row is one entry of a rename mapping. Row i of an engine's output always
// corresponds to input i.
type Row struct {
	Original string `json:"original" yaml:"original"`                 // Input file name
	Proposed string `json:"proposed" yaml:"proposed"`                 // Computed output name
	Valid    bool   `json:"valid" yaml:"valid"`                       // False when the engine could not compute a name
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"` // Why the row is invalid
}

// Changed reports whether the row proposes a different name.
func (r Row) Changed() bool {
	return r.Valid && r.Proposed != r.Original
}

// Originals returns the input names carried by rows, in order.
func Originals(rows []Row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Original
	}
	return names
}
