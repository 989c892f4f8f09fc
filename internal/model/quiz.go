package model

// OptionsPerQuestion is the fixed number of answer choices
const OptionsPerQuestion = 4

// Question is a single multiple choice question
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
	Explanation   string   `json:"explanation"`
}

// Quiz is a generated set of questions on one topic
type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// IsCorrect reports whether option i is the right answer
func (q *Question) IsCorrect(i int) bool {
	return i == q.CorrectAnswer
}
