package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moorworks/peatshelf/internal/quiz"
)

// SQLStore persists results in the quiz_results table. The same statements
// serve both supported drivers; $N placeholders work for pgx and for the
// modernc sqlite driver alike.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Insert(ctx context.Context, r Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	answers := r.Answers
	if len(answers) == 0 {
		answers = json.RawMessage("{}")
	}
	ids := r.QuestionIDs
	if ids == nil {
		ids = []string{}
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode question ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quiz_results
		(id,difficulty,score,total_questions,percentage,answers_json,question_ids_json,origin_ip,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		r.ID, string(r.Difficulty), r.Score, r.Total, r.Percentage,
		string(answers), string(idsJSON), r.OriginIP, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Result, error) {
	q := `SELECT id,difficulty,score,total_questions,percentage,answers_json,question_ids_json,origin_ip,created_at
		FROM quiz_results`
	args := []interface{}{}
	if opts.Difficulty != "" {
		args = append(args, string(opts.Difficulty))
		q += fmt.Sprintf(" WHERE difficulty=$%d", len(args))
	}
	q += " ORDER BY created_at DESC, id"

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	q += fmt.Sprintf(" LIMIT $%d", len(args))
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", err)
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var r Result
		var difficulty, answers, idsJSON string
		if err := rows.Scan(&r.ID, &difficulty, &r.Score, &r.Total, &r.Percentage,
			&answers, &idsJSON, &r.OriginIP, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Difficulty = quiz.Difficulty(difficulty)
		r.Answers = json.RawMessage(answers)
		if err := json.Unmarshal([]byte(idsJSON), &r.QuestionIDs); err != nil {
			return nil, fmt.Errorf("decode question ids of %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Summary(ctx context.Context) ([]TierSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT difficulty, COUNT(*),
		CAST(AVG(percentage) AS DOUBLE PRECISION)
		FROM quiz_results GROUP BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("summarize quiz results: %w", err)
	}
	defer rows.Close()

	byTier := map[quiz.Difficulty]TierSummary{}
	for rows.Next() {
		var ts TierSummary
		var difficulty string
		if err := rows.Scan(&difficulty, &ts.Count, &ts.AvgPercentage); err != nil {
			return nil, err
		}
		ts.Difficulty = quiz.Difficulty(difficulty)
		byTier[ts.Difficulty] = ts
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// presentation order, skipping tiers with no results yet
	out := []TierSummary{}
	for _, d := range quiz.Tiers() {
		if ts, ok := byTier[d]; ok {
			out = append(out, ts)
		}
	}
	return out, nil
}

// LogSubmission adapts the store to the quiz flow's sink: a graded
// submission becomes one inserted row.
func (s *SQLStore) LogSubmission(ctx context.Context, sub quiz.Submission, origin string) error {
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	return s.Insert(ctx, Result{
		Difficulty:  sub.Difficulty,
		Score:       sub.Score,
		Total:       sub.Total,
		Percentage:  Percentage(sub.Score, sub.Total),
		Answers:     answers,
		QuestionIDs: sub.QuestionIDs,
		OriginIP:    origin,
		CreatedAt:   sub.SubmittedAt,
	})
}
