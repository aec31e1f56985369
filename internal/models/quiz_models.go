package models

type QuizQuestion struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Expected Sentiment `json:"-"`
	Hint     string    `json:"hint,omitempty"`
}

type QuizResult struct {
	Question    QuizQuestion `json:"question"`
	Guess       Sentiment    `json:"guess"`
	Expected    Sentiment    `json:"expected"`
	Model       Sentiment    `json:"model"`
	ModelScore  float64      `json:"model_score"`
	Correct     bool         `json:"correct"`
	ModelAgreed bool         `json:"model_agreed"`
	Score       QuizScore    `json:"score"`
}

type QuizScore struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

func (s QuizScore) Percent() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) * 100 / float64(s.Answered)
}
