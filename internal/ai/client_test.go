package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskflow/internal/domain"
)

func TestDraftValidate(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		ok    bool
	}{
		{"valid", Draft{Title: "a", Description: "b", Priority: "HIGH", EstimatedTime: 2}, true},
		{"lowercase priority normalized", Draft{Title: "a", Description: "b", Priority: "medium", EstimatedTime: 1}, true},
		{"missing title", Draft{Description: "b", Priority: "LOW", EstimatedTime: 1}, false},
		{"missing description", Draft{Title: "a", Priority: "LOW", EstimatedTime: 1}, false},
		{"unknown priority", Draft{Title: "a", Description: "b", Priority: "URGENT", EstimatedTime: 1}, false},
		{"zero estimate", Draft{Title: "a", Description: "b", Priority: "LOW", EstimatedTime: 0}, false},
		{"negative estimate", Draft{Title: "a", Description: "b", Priority: "LOW", EstimatedTime: -3}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate() = %v; want nil", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("Validate() = nil; want error")
			}
			if tc.ok && tc.draft.Status != domain.StatusToDo {
				t.Fatalf("status = %q; want TO_DO", tc.draft.Status)
			}
		})
	}
}

func TestFilterValid_DiscardsInvalid(t *testing.T) {
	drafts := []Draft{
		{Title: "ok", Description: "d", Priority: "HIGH", EstimatedTime: 1},
		{Title: "", Description: "d", Priority: "HIGH", EstimatedTime: 1},
		{Title: "ok2", Description: "d", Priority: "low", EstimatedTime: 4},
	}
	valid, discarded := FilterValid(drafts)
	if len(valid) != 2 || discarded != 1 {
		t.Fatalf("valid=%d discarded=%d; want 2/1", len(valid), discarded)
	}
	if valid[1].Priority != "LOW" {
		t.Fatalf("priority not normalized: %q", valid[1].Priority)
	}
}

func chatReply(t *testing.T, tasks string) string {
	t.Helper()
	content := `{"tasks": ` + tasks + `}`
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	return string(b)
}

func TestGenerateDrafts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatReply(t, `[
			{"title":"Set up CI","description":"Configure the pipeline","priority":"HIGH","status":"TO_DO","estimated_time":2},
			{"title":"","description":"no title","priority":"LOW","status":"TO_DO","estimated_time":1},
			{"title":"Write docs","description":"User guide","priority":"medium","status":"TO_DO","estimated_time":3.5}
		]`)))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "")
	valid, discarded, err := c.GenerateDrafts(context.Background(), "build a task tracker")
	if err != nil {
		t.Fatalf("GenerateDrafts: %v", err)
	}
	if len(valid) != 2 || discarded != 1 {
		t.Fatalf("valid=%d discarded=%d; want 2/1", len(valid), discarded)
	}
	if valid[0].Title != "Set up CI" || valid[1].Priority != "MEDIUM" {
		t.Fatalf("unexpected drafts: %+v", valid)
	}
}

func TestGenerateDrafts_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "")
	if _, _, err := c.GenerateDrafts(context.Background(), "x"); err == nil {
		t.Fatalf("want error on non-200")
	}
}

func TestGenerateDrafts_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "not json at all"}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "")
	if _, _, err := c.GenerateDrafts(context.Background(), "x"); err == nil {
		t.Fatalf("want error on unparseable draft payload")
	}
}
