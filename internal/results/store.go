// Package results records graded quiz submissions durably. Logging a result
// is observational: user-facing flows never fail because a result could not
// be written.
package results

import (
	"context"
	"encoding/json"
	"math"

	"github.com/moorworks/peatshelf/internal/quiz"
)

// Result is one logged submission. Answers keeps the submitted userAnswers
// object verbatim, so externally posted payloads survive round trips even
// when their answer values are not plain strings.
type Result struct {
	ID          string          `json:"id"`
	Difficulty  quiz.Difficulty `json:"difficulty"`
	Score       int             `json:"score"`
	Total       int             `json:"totalQuestions"`
	Percentage  int             `json:"percentage"`
	Answers     json.RawMessage `json:"userAnswers"`
	QuestionIDs []string        `json:"questionIds"`
	OriginIP    string          `json:"originIp,omitempty"`
	CreatedAt   int64           `json:"createdAt"`
}

// ListOpts filters and pages List.
type ListOpts struct {
	Difficulty quiz.Difficulty // zero value: all tiers
	Limit      int             // <= 0 falls back to 50; explicit limits are honored as given
	Offset     int
}

// TierSummary aggregates the logged results of one tier.
type TierSummary struct {
	Difficulty    quiz.Difficulty `json:"difficulty"`
	Count         int             `json:"count"`
	AvgPercentage float64         `json:"avgPercentage"`
}

// Store is the durable results log.
type Store interface {
	Insert(ctx context.Context, r Result) error
	List(ctx context.Context, opts ListOpts) ([]Result, error)
	Summary(ctx context.Context) ([]TierSummary, error)
}

// Percentage computes the rounded success percentage. A zero (or negative)
// total yields 0 rather than dividing by it.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
