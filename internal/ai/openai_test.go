package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIComplete(t *testing.T) {
	var gotReq openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("auth header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-3.5-turbo",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "a summary"}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	}))
	defer server.Close()

	p := &OpenAIProvider{
		apiKey:       "sk-test",
		defaultModel: "gpt-3.5-turbo",
		baseURL:      server.URL,
		client:       server.Client(),
	}

	resp, err := p.Complete(context.Background(), &Request{
		Prompt:      "summarize this",
		System:      "be helpful",
		Temperature: 0.7,
		MaxTokens:   250,
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Content != "a summary" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("usage = %+v", resp.Usage)
	}

	if gotReq.Model != "gpt-3.5-turbo" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}

	// A request-level model overrides the provider default on the wire.
	if _, err := p.Complete(context.Background(), &Request{Prompt: "hi", Model: "gpt-4o-mini"}); err != nil {
		t.Fatal(err)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("override model = %q", gotReq.Model)
	}
}

func TestOpenAICompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := &OpenAIProvider{
		apiKey:       "sk-test",
		defaultModel: "gpt-3.5-turbo",
		baseURL:      server.URL,
		client:       server.Client(),
	}

	if _, err := p.Complete(context.Background(), &Request{Prompt: "hi"}); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestOpenAIStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"choices":[{"delta":{"content":"hel"}}]}` + "\n\n"))
		w.Write([]byte(`data: {"choices":[{"delta":{"content":"lo"}}]}` + "\n\n"))
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	p := &OpenAIProvider{
		apiKey:       "sk-test",
		defaultModel: "gpt-3.5-turbo",
		baseURL:      server.URL,
		client:       server.Client(),
	}

	var out strings.Builder
	if err := p.Stream(context.Background(), &Request{Prompt: "hi"}, &out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "hello" {
		t.Errorf("streamed = %q", out.String())
	}
}
