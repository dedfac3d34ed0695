package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	api "github.com/moorworks/peatshelf/internal/api/http"
	"github.com/moorworks/peatshelf/internal/catalog"
	"github.com/moorworks/peatshelf/internal/quiz"
)

func testBank(t *testing.T) *quiz.Bank {
	t.Helper()
	b, err := quiz.NewBank(map[quiz.Difficulty][]quiz.Question{
		quiz.DifficultyEasy: {
			{
				ID:     "e1",
				Prompt: "What is cut from a bog to burn as fuel?",
				Options: []quiz.Option{
					{ID: "a", Text: "Turf"},
					{ID: "b", Text: "Slate"},
				},
				CorrectOptionID: "a",
				Explanation:     "Turf was the household fuel of the midlands.",
			},
			{
				ID:     "e2",
				Prompt: "Roughly how much of a living bog is water?",
				Options: []quiz.Option{
					{ID: "a", Text: "A tenth"},
					{ID: "b", Text: "Nine tenths"},
				},
				CorrectOptionID: "b",
			},
		},
	})
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	return b
}

func testRouter(t *testing.T) chi.Router {
	t.Helper()
	bank := testBank(t)
	flow := quiz.NewFlow(bank, quiz.NewMemoryStore(time.Minute), nil, nil)

	r := chi.NewRouter()
	r.Route("/api/quiz", func(qr chi.Router) {
		qr.Get("/tiers", api.TiersHandler(bank))
		qr.Get("/{tier}/questions", api.QuestionsHandler(bank))
		qr.Post("/sessions", api.CreateSessionHandler(flow))
		qr.Post("/sessions/{sessionID}/answers", api.AnswerHandler(flow))
		qr.Post("/sessions/{sessionID}/submit", api.SubmitHandler(flow))
		qr.Get("/sessions/{sessionID}/review", api.ReviewHandler(flow))
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCatalogHandler(t *testing.T) {
	entries := []catalog.Entry{
		{Identifier: "a", Title: "Peatland Ecology", Author: "Anna Leahy", Year: 2020, DocumentURL: "https://docs.example/a.pdf"},
		{Identifier: "b", Title: "Turf and Memory", Author: "Seamus Byrne", DocumentURL: "https://docs.example/b.pdf"},
	}
	h := api.CatalogHandler(entries)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/api/catalog?q=peat&sort=year_desc", nil))
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	// the endpoint returns a bare array
	var got []catalog.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("body %s: %v", rec.Body, err)
	}
	if len(got) != 1 || got[0].Identifier != "a" {
		t.Fatalf("got %+v", got)
	}

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/api/catalog?q=granite", nil))
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("no-match body = %q, want []", rec.Body.String())
	}
}

func TestCatalogHandler_EmptyCatalog(t *testing.T) {
	h := api.CatalogHandler(nil)
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("GET", "/api/catalog", nil))
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("body = %q, want []", rec.Body.String())
	}
}

func TestTiersAndQuestions(t *testing.T) {
	r := testRouter(t)

	rec := doJSON(t, r, "GET", "/api/quiz/tiers", "")
	if rec.Code != 200 {
		t.Fatalf("tiers status = %d", rec.Code)
	}
	var tiers []quiz.TierInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &tiers); err != nil {
		t.Fatalf("tiers body: %v", err)
	}
	if len(tiers) != 3 || tiers[0].Questions != 2 {
		t.Fatalf("tiers = %+v", tiers)
	}

	rec = doJSON(t, r, "GET", "/api/quiz/easy/questions", "")
	if rec.Code != 200 {
		t.Fatalf("questions status = %d", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "correctOptionId") || strings.Contains(body, "explanation") {
		t.Fatalf("answer key leaked: %s", body)
	}

	rec = doJSON(t, r, "GET", "/api/quiz/legendary/questions", "")
	if rec.Code != 404 {
		t.Fatalf("unknown tier status = %d", rec.Code)
	}
}

func TestQuizSessionLifecycle(t *testing.T) {
	r := testRouter(t)

	rec := doJSON(t, r, "POST", "/api/quiz/sessions", `{"difficulty":"easy"}`)
	if rec.Code != 201 {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var s quiz.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("create body: %v", err)
	}
	if s.Status != quiz.StatusAnswering || len(s.QuestionIDs) != 2 {
		t.Fatalf("session = %+v", s)
	}

	base := "/api/quiz/sessions/" + s.ID

	// review is not available until the session is submitted
	if rec := doJSON(t, r, "GET", base+"/review", ""); rec.Code != 404 {
		t.Fatalf("early review status = %d", rec.Code)
	}

	if rec := doJSON(t, r, "POST", base+"/answers", `{"e1":"a","e2":"a"}`); rec.Code != 200 {
		t.Fatalf("answers status = %d, body %s", rec.Code, rec.Body)
	}
	if rec := doJSON(t, r, "POST", base+"/answers", `{"e1":"z"}`); rec.Code != 400 {
		t.Fatalf("bad option status = %d", rec.Code)
	}

	rec = doJSON(t, r, "POST", base+"/submit", "")
	if rec.Code != 200 {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("submit body: %v", err)
	}
	if s.Submission == nil || s.Submission.Score != 1 || s.Submission.Total != 2 {
		t.Fatalf("submission = %+v", s.Submission)
	}

	// answering after submit conflicts
	if rec := doJSON(t, r, "POST", base+"/answers", `{"e1":"a"}`); rec.Code != 409 {
		t.Fatalf("post-submit answer status = %d", rec.Code)
	}

	rec = doJSON(t, r, "GET", base+"/review", "")
	if rec.Code != 200 {
		t.Fatalf("review status = %d", rec.Code)
	}
	var rev quiz.Review
	if err := json.Unmarshal(rec.Body.Bytes(), &rev); err != nil {
		t.Fatalf("review body: %v", err)
	}
	if rev.Score != 1 || len(rev.Items) != 2 {
		t.Fatalf("review = %+v", rev)
	}
	if rev.Items[0].Question.CorrectOptionID != "a" || !rev.Items[0].Correct {
		t.Fatalf("review item = %+v", rev.Items[0])
	}
}

func TestQuizSessionErrors(t *testing.T) {
	r := testRouter(t)

	if rec := doJSON(t, r, "POST", "/api/quiz/sessions", `{"difficulty":"legendary"}`); rec.Code != 400 {
		t.Fatalf("bad tier status = %d", rec.Code)
	}
	// hard is a real tier with no questions loaded
	if rec := doJSON(t, r, "POST", "/api/quiz/sessions", `{"difficulty":"hard"}`); rec.Code != 409 {
		t.Fatalf("empty tier status = %d", rec.Code)
	}
	if rec := doJSON(t, r, "POST", "/api/quiz/sessions", `{`); rec.Code != 400 {
		t.Fatalf("bad json status = %d", rec.Code)
	}
	if rec := doJSON(t, r, "POST", "/api/quiz/sessions/ghost/submit", ""); rec.Code != 404 {
		t.Fatalf("missing session status = %d", rec.Code)
	}
}

type fakeBlobStore struct {
	files map[string]string
}

func (f *fakeBlobStore) Get(key string) (io.ReadCloser, error) {
	data, ok := f.files[key]
	if !ok {
		return nil, errors.New("no such file")
	}
	return io.NopCloser(bytes.NewReader([]byte(data))), nil
}

func TestMountCovers(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/covers", func(cr chi.Router) {
		api.MountCovers(cr, &fakeBlobStore{files: map[string]string{
			"1990 - Niamh Carty - Blanket Bog Survey.jpg": "imgbytes",
		}})
	})

	rec := doJSON(t, r, "GET", "/covers/1990%20-%20Niamh%20Carty%20-%20Blanket%20Bog%20Survey.jpg", "")
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("content type = %q", ct)
	}
	if rec.Body.String() != "imgbytes" {
		t.Fatalf("body = %q", rec.Body.String())
	}

	if rec := doJSON(t, r, "GET", "/covers/missing.png", ""); rec.Code != 404 {
		t.Fatalf("missing cover status = %d", rec.Code)
	}
}
