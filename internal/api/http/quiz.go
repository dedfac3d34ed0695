package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/moorworks/peatshelf/internal/quiz"
)

// TiersHandler lists the difficulty tiers with their question counts.
func TiersHandler(bank *quiz.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, bank.Tiers())
	}
}

// QuestionsHandler serves one tier's questions without answer keys, for
// clients that render the quiz without opening a session.
func QuestionsHandler(bank *quiz.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := quiz.Difficulty(chi.URLParam(r, "tier"))
		qs, err := bank.Questions(d)
		if err != nil {
			writeError(w, http.StatusNotFound, "unknown tier")
			return
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

// CreateSessionHandler opens a session on the tier named in the body.
func CreateSessionHandler(flow *quiz.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Difficulty quiz.Difficulty `json:"difficulty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		s, err := flow.Start(r.Context(), req.Difficulty)
		if err != nil {
			writeError(w, quizStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, s)
	}
}

// AnswerHandler merges the posted question→option map into the session.
func AnswerHandler(flow *quiz.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var answers map[string]string
		if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		s, err := flow.Answer(r.Context(), id, answers)
		if err != nil {
			writeError(w, quizStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// SubmitHandler grades the session. The caller's address is recorded with
// the logged result.
func SubmitHandler(flow *quiz.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s, err := flow.Submit(r.Context(), id, clientIP(r))
		if err != nil {
			writeError(w, quizStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

// ReviewHandler serves the post-submit review. Sessions that were never
// submitted have no review to show.
func ReviewHandler(flow *quiz.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		rev, err := flow.Review(r.Context(), id)
		if err != nil {
			writeError(w, quizStatus(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rev)
	}
}

func quizStatus(err error) int {
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound), errors.Is(err, quiz.ErrNoSubmission):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrAlreadySubmitted), errors.Is(err, quiz.ErrNoQuestions):
		return http.StatusConflict
	case errors.Is(err, quiz.ErrUnknownTier),
		errors.Is(err, quiz.ErrUnknownQuestion),
		errors.Is(err, quiz.ErrUnknownOption):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
