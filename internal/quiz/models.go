package quiz

import "errors"

// Difficulty names one of the three question tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Tiers lists every difficulty in presentation order.
func Tiers() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

var (
	ErrUnknownTier      = errors.New("unknown difficulty tier")
	ErrNoQuestions      = errors.New("tier has no questions")
	ErrSessionNotFound  = errors.New("session not found")
	ErrAlreadySubmitted = errors.New("session already submitted")
	ErrUnknownQuestion  = errors.New("question is not part of the session")
	ErrUnknownOption    = errors.New("option is not offered by the question")
	ErrNoSubmission     = errors.New("session has not been submitted")
)

// Option is one selectable answer of a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a single-choice trivia question. CorrectOptionID and the
// review-only fields are cleared before a question is handed to a client
// that is still answering.
type Question struct {
	ID              string   `json:"id"`
	Prompt          string   `json:"prompt"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
	FurtherReading  string   `json:"furtherReadingNote,omitempty"`
}

// Submission is the graded outcome of one quiz run. Its JSON field names are
// the wire names of the results endpoint: the same shape is produced by
// Flow.Submit and accepted from external clients posting their own results.
type Submission struct {
	Difficulty  Difficulty        `json:"difficulty"`
	Answers     map[string]string `json:"userAnswers"`
	Score       int               `json:"score"`
	Total       int               `json:"totalQuestions"`
	QuestionIDs []string          `json:"questionIds"`
	SubmittedAt int64             `json:"submittedAt,omitempty"`
}

// Valid reports whether the submission has the required shape: a known
// difficulty and both collections present (empty is fine, absent is not).
func (s Submission) Valid() bool {
	return s.Difficulty.Valid() && s.Answers != nil && s.QuestionIDs != nil
}

// Session states. A session is created already bound to a difficulty, so
// there is no pre-selection state to persist.
const (
	StatusAnswering = "answering"
	StatusSubmitted = "submitted"
)

// Session is one user's pass through a tier. Answers maps question IDs to
// chosen option IDs; Submission is set once and never cleared.
type Session struct {
	ID          string            `json:"id"`
	Difficulty  Difficulty        `json:"difficulty"`
	QuestionIDs []string          `json:"questionIds"`
	Answers     map[string]string `json:"answers"`
	Status      string            `json:"status"`
	Submission  *Submission       `json:"submission,omitempty"`
	StartedAt   int64             `json:"startedAt"`
}

// ReviewItem pairs one question with the answer the user gave, for the
// post-submit review screen. Correct is derived server side so clients never
// need the answer key to render results.
type ReviewItem struct {
	Question Question `json:"question"`
	Chosen   string   `json:"chosenOptionId,omitempty"`
	Correct  bool     `json:"correct"`
}

// Review is the full post-submit view of a session.
type Review struct {
	SessionID  string       `json:"sessionId"`
	Difficulty Difficulty   `json:"difficulty"`
	Score      int          `json:"score"`
	Total      int          `json:"totalQuestions"`
	Items      []ReviewItem `json:"items"`
}
