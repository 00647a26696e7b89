package model

// OptionCount is the fixed number of answer options on a multiple-choice
// question (labelled A-D).
const OptionCount = 4

// AnswerLabels are the valid values for Question.CorrectAnswer.
var AnswerLabels = [OptionCount]string{"A", "B", "C", "D"}

// Question is a single multiple-choice question used by the Reading and
// Listening skills. Identifier is unique within its part, not globally.
type Question struct {
	Identifier    int       `json:"identifier"`
	Prompt        string    `json:"prompt"`
	Options       [4]string `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
}

// OptionFor returns the option text the answer label points at, and whether
// the label is one of A-D.
func (q Question) OptionFor(label string) (string, bool) {
	for i, l := range AnswerLabels {
		if l == label {
			return q.Options[i], true
		}
	}
	return "", false
}

// ReadingPart is a numbered passage with its questions.
type ReadingPart struct {
	PartNumber int        `json:"part_number"`
	Passage    string     `json:"passage"`
	Questions  []Question `json:"questions"`
}

// ReadingContent is the content variant for the Reading skill.
type ReadingContent struct {
	Parts []ReadingPart `json:"parts"`
}

// Clone returns a deep copy so edits never alias the original.
func (c *ReadingContent) Clone() *ReadingContent {
	if c == nil {
		return nil
	}
	out := &ReadingContent{Parts: make([]ReadingPart, len(c.Parts))}
	for i, p := range c.Parts {
		cp := p
		cp.Questions = append([]Question(nil), p.Questions...)
		out.Parts[i] = cp
	}
	return out
}
