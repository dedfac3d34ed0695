package http

import (
	"encoding/json"
	"io"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/moorworks/peatshelf/internal/quiz"
	"github.com/moorworks/peatshelf/internal/results"
)

const maxResultBody = 1 << 20

// resultSchema is the wire contract of the results endpoint. Answer values
// are unconstrained: the endpoint archives whatever the client sent, it does
// not regrade. The numeric bounds keep the integer conversion below exact;
// anything outside them is a broken client.
const resultSchema = `{
  "type": "object",
  "required": ["score", "totalQuestions", "difficulty", "userAnswers", "questionIds"],
  "properties": {
    "score": {"type": "number", "minimum": 0, "maximum": 1000000},
    "totalQuestions": {"type": "number", "minimum": 0, "maximum": 1000000},
    "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
    "userAnswers": {"type": "object"},
    "questionIds": {"type": "array", "items": {"type": "string"}}
  }
}`

var resultValidator = mustCompileSchema(resultSchema)

func mustCompileSchema(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic("results: bad schema: " + err.Error())
	}
	return s
}

// LogResultHandler accepts a finished quiz result and records it. Once the
// payload validates the client always gets success: a storage failure is
// logged server side but never bounced back to the user.
func LogResultHandler(store results.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxResultBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, "unable to read request body")
			return
		}
		if !json.Valid(body) {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		res, err := resultValidator.Validate(gojsonschema.NewBytesLoader(body))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "validation failed")
			return
		}
		if !res.Valid() {
			writeError(w, http.StatusBadRequest, "invalid submission: "+schemaErrors(res))
			return
		}

		var payload struct {
			Score          float64         `json:"score"`
			TotalQuestions float64         `json:"totalQuestions"`
			Difficulty     quiz.Difficulty `json:"difficulty"`
			UserAnswers    json.RawMessage `json:"userAnswers"`
			QuestionIDs    []string        `json:"questionIds"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			writeError(w, http.StatusInternalServerError, "unexpected decode failure")
			return
		}

		score := int(math.Round(payload.Score))
		total := int(math.Round(payload.TotalQuestions))
		rec := results.Result{
			Difficulty:  payload.Difficulty,
			Score:       score,
			Total:       total,
			Percentage:  results.Percentage(score, total),
			Answers:     payload.UserAnswers,
			QuestionIDs: payload.QuestionIDs,
			OriginIP:    clientIP(r),
		}
		if err := store.Insert(r.Context(), rec); err != nil {
			// the result reached us; a lost row is an ops problem, not the user's
			log.Printf("results: insert failed: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func schemaErrors(res *gojsonschema.Result) string {
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
