package quiz

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// ResultSink receives graded submissions for durable logging. The flow treats
// it as best-effort: a sink failure never blocks the user's result.
type ResultSink interface {
	LogSubmission(ctx context.Context, sub Submission, origin string) error
}

// Flow drives a session from start through answering to submission and
// review. All state lives in the Store; Flow itself is stateless and safe for
// concurrent use.
type Flow struct {
	bank  *Bank
	store Store
	sink  ResultSink
	now   func() time.Time
}

// NewFlow wires the flow. sink may be nil when submissions should not be
// logged anywhere; now defaults to time.Now.
func NewFlow(bank *Bank, store Store, sink ResultSink, now func() time.Time) *Flow {
	if now == nil {
		now = time.Now
	}
	return &Flow{bank: bank, store: store, sink: sink, now: now}
}

// Start opens a session on the given tier with every question unanswered.
func (f *Flow) Start(ctx context.Context, d Difficulty) (Session, error) {
	if !d.Valid() {
		return Session{}, ErrUnknownTier
	}
	qs := f.bank.tiers[d]
	if len(qs) == 0 {
		return Session{}, ErrNoQuestions
	}
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	s := Session{
		ID:          uuid.NewString(),
		Difficulty:  d,
		QuestionIDs: ids,
		Answers:     map[string]string{},
		Status:      StatusAnswering,
		StartedAt:   f.now().Unix(),
	}
	if err := f.store.Put(ctx, s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Get returns the current session state.
func (f *Flow) Get(ctx context.Context, id string) (Session, error) {
	return f.store.Get(ctx, id)
}

// Answer merges the given question→option choices into the session. Users
// may change an answer any number of times before submitting; each question
// keeps only its latest choice.
func (f *Flow) Answer(ctx context.Context, sessionID string, answers map[string]string) (Session, error) {
	s, err := f.store.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if s.Status == StatusSubmitted {
		return Session{}, ErrAlreadySubmitted
	}
	for qid, optionID := range answers {
		q, ok := f.bank.Question(s.Difficulty, qid)
		if !ok || !inSession(s, qid) {
			return Session{}, ErrUnknownQuestion
		}
		if !hasOption(q, optionID) {
			return Session{}, ErrUnknownOption
		}
		s.Answers[qid] = optionID
	}
	if err := f.store.Put(ctx, s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func inSession(s Session, qid string) bool {
	for _, id := range s.QuestionIDs {
		if id == qid {
			return true
		}
	}
	return false
}

// Submit grades the session and freezes it. Unanswered questions score zero;
// the total is always the session's question count. Submitting an already
// submitted session returns the existing result unchanged, so a retried
// request cannot double-log. origin is the client address recorded with the
// logged result.
func (f *Flow) Submit(ctx context.Context, sessionID, origin string) (Session, error) {
	s, err := f.store.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if s.Status == StatusSubmitted {
		return s, nil
	}

	score := 0
	for _, qid := range s.QuestionIDs {
		q, ok := f.bank.Question(s.Difficulty, qid)
		if !ok {
			continue
		}
		if s.Answers[qid] == q.CorrectOptionID {
			score++
		}
	}

	sub := Submission{
		Difficulty:  s.Difficulty,
		Answers:     s.Answers,
		Score:       score,
		Total:       len(s.QuestionIDs),
		QuestionIDs: s.QuestionIDs,
		SubmittedAt: f.now().Unix(),
	}
	s.Status = StatusSubmitted
	s.Submission = &sub

	if err := f.store.Put(ctx, s); err != nil {
		return Session{}, err
	}
	if f.sink != nil {
		if err := f.sink.LogSubmission(ctx, sub, origin); err != nil {
			log.Printf("quiz: logging submission for session %s failed: %v", s.ID, err)
		}
	}
	return s, nil
}

// Review returns the post-submit view: every submitted question with its
// key, explanation and the user's choice. Questions that have since left the
// bank are skipped rather than failing the whole review.
func (f *Flow) Review(ctx context.Context, sessionID string) (Review, error) {
	s, err := f.store.Get(ctx, sessionID)
	if err != nil {
		return Review{}, err
	}
	if s.Submission == nil || !s.Submission.Valid() {
		return Review{}, ErrNoSubmission
	}
	sub := *s.Submission
	items := make([]ReviewItem, 0, len(sub.QuestionIDs))
	for _, qid := range sub.QuestionIDs {
		q, ok := f.bank.Question(s.Difficulty, qid)
		if !ok {
			continue
		}
		chosen := sub.Answers[qid]
		items = append(items, ReviewItem{
			Question: q,
			Chosen:   chosen,
			Correct:  chosen == q.CorrectOptionID,
		})
	}
	return Review{
		SessionID:  s.ID,
		Difficulty: s.Difficulty,
		Score:      sub.Score,
		Total:      sub.Total,
		Items:      items,
	}, nil
}
