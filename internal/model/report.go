package model

// SheetReport describes one sheet's detected structure for the parse report.
type SheetReport struct {
	Name          string      `json:"name"`
	Answerable    bool        `json:"answerable"`
	QuestionCount int         `json:"question_count"`
	Layout        *LayoutInfo `json:"detected_layout,omitempty"`
	// Reason explains a non-answerable sheet ("empty sheet",
	// "no response column detected", ...).
	Reason    string `json:"reason,omitempty"`
	Ambiguous bool   `json:"ambiguous,omitempty"`
}

// ParseReport is the parse-mode response. Questions is populated only
// when a sheet filter was supplied.
type ParseReport struct {
	File      string        `json:"file"`
	Sheets    []SheetReport `json:"sheets"`
	Questions []Question    `json:"questions,omitempty"`
	// Batches is the planned hand-off to the external answer generator,
	// included on request alongside the filtered question list.
	Batches []Batch `json:"batches,omitempty"`
}

// RecordStatus is the per-record outcome of a write-back run.
type RecordStatus string

const (
	// StatusApplied means the answer was written to the target cell.
	StatusApplied RecordStatus = "applied"
	// StatusSkippedFormula means the target cell is formula-derived and
	// was left untouched.
	StatusSkippedFormula RecordStatus = "skipped_formula"
	// StatusStaleTarget means the addressed cell no longer matches the
	// current document state (unknown sheet, row out of range).
	StatusStaleTarget RecordStatus = "stale_target"
	// StatusOrphaned means the record matched no extracted question and
	// was rejected rather than written to a guessed cell.
	StatusOrphaned RecordStatus = "orphaned"
)

// RecordResult is the application outcome for one targeted cell.
type RecordResult struct {
	Sheet  string       `json:"sheet"`
	Row    int          `json:"row"`
	Column string       `json:"column"`
	Status RecordStatus `json:"status"`
	Detail string       `json:"detail,omitempty"`
}

// WriteReport is the write-mode response: the new document path plus
// per-record application detail and counts.
type WriteReport struct {
	OutputFile string `json:"output_file"`

	Applied        int `json:"applied"`
	SkippedFormula int `json:"skipped_formula"`
	StaleTarget    int `json:"stale_target"`
	Orphaned       int `json:"orphaned"`

	Records []RecordResult `json:"records"`
}

// Add appends a record result and bumps the matching counter.
func (r *WriteReport) Add(res RecordResult) {
	switch res.Status {
	case StatusApplied:
		r.Applied++
	case StatusSkippedFormula:
		r.SkippedFormula++
	case StatusStaleTarget:
		r.StaleTarget++
	case StatusOrphaned:
		r.Orphaned++
	}
	r.Records = append(r.Records, res)
}
