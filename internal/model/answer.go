package model

// AnswerRecord is one externally generated answer addressed at a cell.
// Produced by the text-generation collaborator, consumed only by the
// writer. Field names follow the answers JSON contract.
type AnswerRecord struct {
	Row         int    `json:"row"`
	ResponseCol string `json:"response_col_letter"`
	Answer      string `json:"answer"`

	// Score and ScoreCol are optional; both must be present for a score
	// write to happen.
	Score    string `json:"score,omitempty"`
	ScoreCol string `json:"score_col_letter,omitempty"`
}

// AnswerSet is the write-mode input: answers grouped by sheet name.
type AnswerSet struct {
	File    string                    `json:"file,omitempty"`
	Answers map[string][]AnswerRecord `json:"answers"`
}

// Total returns the number of records across all sheets.
func (s AnswerSet) Total() int {
	n := 0
	for _, recs := range s.Answers {
		n += len(recs)
	}
	return n
}
