package ai

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeProvider struct {
	lastReq *Request
	content string
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }
func (f *fakeProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &Response{Content: f.content}, nil
}
func (f *fakeProvider) Stream(ctx context.Context, req *Request, w io.Writer) error {
	return errors.New("not implemented")
}

func TestSummarizeEmptyInputSkipsProvider(t *testing.T) {
	f := &fakeProvider{content: "should not be called"}
	s := NewSummarizer(f, "")

	got := s.Summarize(context.Background(), "   \n  ", "weekly")
	if got != EmptySummary {
		t.Errorf("summary = %q, want sentinel", got)
	}
	if f.lastReq != nil {
		t.Error("provider was called for empty input")
	}
}

func TestSummarizeBuildsPrompt(t *testing.T) {
	f := &fakeProvider{content: "  You did great this week.  "}
	s := NewSummarizer(f, "")

	got := s.Summarize(context.Background(), "On 2025-01-06:\n- Feeling: calm\n", "Weekly")
	if got != "You did great this week." {
		t.Errorf("summary = %q", got)
	}

	req := f.lastReq
	if req == nil {
		t.Fatal("provider not called")
	}
	if !strings.Contains(req.Prompt, "for a weekly period") {
		t.Errorf("prompt missing lowercased period: %q", req.Prompt)
	}
	if !strings.Contains(req.Prompt, "On 2025-01-06:") {
		t.Errorf("prompt missing entries text: %q", req.Prompt)
	}
	if req.System != summarySystem {
		t.Errorf("system = %q", req.System)
	}
	if req.Temperature != 0.7 || req.MaxTokens != 250 {
		t.Errorf("params = temp %v, tokens %d", req.Temperature, req.MaxTokens)
	}
}

func TestSummarizeUsesConfiguredModel(t *testing.T) {
	f := &fakeProvider{content: "ok"}

	NewSummarizer(f, "gpt-4o-mini").Summarize(context.Background(), "some entries", "daily")
	if f.lastReq == nil || f.lastReq.Model != "gpt-4o-mini" {
		t.Errorf("request = %+v, want configured model", f.lastReq)
	}

	// No configured model leaves the choice to the provider default.
	NewSummarizer(f, "").Summarize(context.Background(), "some entries", "daily")
	if f.lastReq.Model != "" {
		t.Errorf("model = %q, want empty", f.lastReq.Model)
	}
}

func TestSummarizeProviderErrorBecomesText(t *testing.T) {
	f := &fakeProvider{err: errors.New("connection refused")}
	s := NewSummarizer(f, "")

	got := s.Summarize(context.Background(), "some entries", "daily")
	if !strings.HasPrefix(got, "Error generating summary: ") {
		t.Errorf("summary = %q", got)
	}
	if !strings.Contains(got, "connection refused") {
		t.Errorf("summary should carry the cause: %q", got)
	}
	if !Failed(got) {
		t.Errorf("Failed(%q) = false", got)
	}
	if Failed("You did great this week.") || Failed(EmptySummary) {
		t.Error("Failed misreports real summaries")
	}
}
