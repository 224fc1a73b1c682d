package model

// QuestionType classifies the answer shape a question expects.
type QuestionType string

const (
	// QuestionBinary expects a yes/no answer with a short elaboration.
	QuestionBinary QuestionType = "binary"
	// QuestionNarrative expects free-form prose.
	QuestionNarrative QuestionType = "narrative"
	// QuestionCompanyInfo asks for vendor company details that need
	// manual input rather than generated text.
	QuestionCompanyInfo QuestionType = "company_info"
	// QuestionReference asks for client references or case studies.
	QuestionReference QuestionType = "reference"
)

// Question is one normalized question record extracted from a sheet.
// The (Sheet, Row) pair is the write-back address. Immutable once
// extracted; re-extraction of the same document yields the same set in
// the same order.
type Question struct {
	Sheet string `json:"sheet"`
	Row   int    `json:"row"`
	ID    string `json:"id,omitempty"`

	Text     string       `json:"question_text"`
	Category string       `json:"category"`
	Type     QuestionType `json:"question_type"`

	// ExistingResponse preserves whatever the response cell already held.
	// Extraction never drops rows with existing content; skipping them is
	// the caller's decision.
	ExistingResponse string `json:"existing_response,omitempty"`

	// ResponseCol and ScoreCol are column letters for write-back.
	ResponseCol string `json:"response_col_letter"`
	ScoreCol    string `json:"score_col_letter,omitempty"`

	// ScoreIsFormula marks questions whose score cell is formula-derived;
	// the writer will refuse score writes there.
	ScoreIsFormula bool `json:"score_is_formula,omitempty"`
}

// Batch is a bounded group of questions from one sheet and category,
// handed to the external answer generator as a unit. A failed batch only
// leaves its own questions unanswered.
type Batch struct {
	Sheet     string     `json:"sheet"`
	Category  string     `json:"category"`
	Index     int        `json:"index"`
	Questions []Question `json:"questions"`
}
