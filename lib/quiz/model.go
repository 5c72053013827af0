package quiz

import "fmt"

// Record is one persisted question/answer pair. The ID is assigned by the
// repository and never reused.
type Record struct {
	ID       int64  `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

func (r *Record) String() string {
	return fmt.Sprintf("[%d]: %s => %s", r.ID, r.Question, r.Answer)
}

// Draft is unsaved user input for the add and edit flows. Fields are filled
// in declaration order by form.Form using the prompt tag as label.
type Draft struct {
	Question string `prompt:"Enter a question"`
	Answer   string `prompt:"Enter the answer"`
}
