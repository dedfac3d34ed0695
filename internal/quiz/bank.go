package quiz

import (
	"encoding/json"
	"fmt"
	"os"
)

// Bank holds the full question set, keyed by difficulty. It is loaded once at
// startup, validated, and read-only afterwards, so it is safe for concurrent
// use without locking.
type Bank struct {
	tiers map[Difficulty][]Question
}

// TierInfo is the public summary of one difficulty tier.
type TierInfo struct {
	Difficulty Difficulty `json:"difficulty"`
	Questions  int        `json:"questionCount"`
}

// LoadBank reads a question bank file: a JSON object whose keys are the
// difficulty names and whose values are question arrays. Any structural
// problem is an error; a broken bank should stop the daemon rather than serve
// a partial quiz.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var raw map[string][]Question
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse question bank %s: %w", path, err)
	}
	tiers := make(map[Difficulty][]Question, len(raw))
	for key, qs := range raw {
		d := Difficulty(key)
		if !d.Valid() {
			return nil, fmt.Errorf("question bank %s: unknown tier %q", path, key)
		}
		tiers[d] = qs
	}
	return NewBank(tiers)
}

// NewBank validates the given tiers and wraps them. Question IDs must be
// unique across the whole bank so a stored result's questionIds stay
// unambiguous.
func NewBank(tiers map[Difficulty][]Question) (*Bank, error) {
	seen := map[string]Difficulty{}
	for _, d := range Tiers() {
		for i, q := range tiers[d] {
			if q.ID == "" {
				return nil, fmt.Errorf("tier %s question %d: missing id", d, i)
			}
			if prev, dup := seen[q.ID]; dup {
				return nil, fmt.Errorf("duplicate question id %q (tiers %s and %s)", q.ID, prev, d)
			}
			seen[q.ID] = d
			if q.Prompt == "" {
				return nil, fmt.Errorf("question %q: empty prompt", q.ID)
			}
			if len(q.Options) < 2 {
				return nil, fmt.Errorf("question %q: needs at least two options", q.ID)
			}
			if !hasOption(q, q.CorrectOptionID) {
				return nil, fmt.Errorf("question %q: correct option %q not among its options", q.ID, q.CorrectOptionID)
			}
		}
	}
	return &Bank{tiers: tiers}, nil
}

func hasOption(q Question, optionID string) bool {
	if optionID == "" {
		return false
	}
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// Tiers summarizes every difficulty with its question count, in presentation
// order. Empty tiers are included so clients can grey them out.
func (b *Bank) Tiers() []TierInfo {
	out := make([]TierInfo, 0, len(Tiers()))
	for _, d := range Tiers() {
		out = append(out, TierInfo{Difficulty: d, Questions: len(b.tiers[d])})
	}
	return out
}

// Questions returns the tier's questions in bank order, with the answer key
// and review-only fields cleared.
func (b *Bank) Questions(d Difficulty) ([]Question, error) {
	if !d.Valid() {
		return nil, ErrUnknownTier
	}
	qs := b.tiers[d]
	out := make([]Question, len(qs))
	copy(out, qs)
	// hide the key from clients that are still answering
	for i := range out {
		out[i].CorrectOptionID = ""
		out[i].Explanation = ""
		out[i].FurtherReading = ""
	}
	return out, nil
}

// Question returns one question with its answer key intact.
func (b *Bank) Question(d Difficulty, id string) (Question, bool) {
	for _, q := range b.tiers[d] {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
