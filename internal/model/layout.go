package model

// ColumnRole is the semantic purpose assigned to one column of a sheet.
type ColumnRole string

const (
	RoleQuestion   ColumnRole = "question"
	RoleResponse   ColumnRole = "response"
	RoleScore      ColumnRole = "score"
	RoleIdentifier ColumnRole = "identifier"
	RoleCategory   ColumnRole = "category"
	RoleAdditional ColumnRole = "additional"
	RoleIgnored    ColumnRole = "ignored"
)

// ColumnLayout is the detected structure of one sheet. Column fields are
// 1-based indices; 0 means the role was not found. At most one column is
// designated primary per role.
type ColumnLayout struct {
	HeaderRow int                `json:"header_row"`
	Roles     map[int]ColumnRole `json:"-"`

	QuestionCol   int `json:"question_col"`
	ResponseCol   int `json:"response_col"`
	ScoreCol      int `json:"score_col,omitempty"`
	IDCol         int `json:"id_col,omitempty"`
	CategoryCol   int `json:"category_col,omitempty"`
	AdditionalCol int `json:"additional_col,omitempty"`

	// Ambiguous marks layouts resolved through tie-break rules. The best
	// guess is still used; the flag surfaces it for user confirmation.
	Ambiguous     bool   `json:"ambiguous,omitempty"`
	AmbiguityNote string `json:"ambiguity_note,omitempty"`
}

// Answerable reports whether the sheet has both a question and a
// response column resolved.
func (l *ColumnLayout) Answerable() bool {
	return l != nil && l.QuestionCol > 0 && l.ResponseCol > 0
}

// FirstDataRow is the first row below the header.
func (l *ColumnLayout) FirstDataRow() int {
	return l.HeaderRow + 1
}

// LayoutInfo is the wire representation of a detected layout, with
// columns rendered as letters for the JSON report.
type LayoutInfo struct {
	HeaderRow     int    `json:"header_row"`
	QuestionCol   string `json:"question_col"`
	ResponseCol   string `json:"response_col"`
	ScoreCol      string `json:"score_col,omitempty"`
	IDCol         string `json:"id_col,omitempty"`
	AdditionalCol string `json:"additional_col,omitempty"`
}
