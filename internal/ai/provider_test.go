package ai

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"valid", Request{Prompt: "hello", MaxTokens: 100, Temperature: 0.7}, false},
		{"empty prompt", Request{Prompt: "   "}, true},
		{"negative tokens", Request{Prompt: "hi", MaxTokens: -1}, true},
		{"temperature too high", Request{Prompt: "hi", Temperature: 3}, true},
		{"zero temperature", Request{Prompt: "hi"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	return &Response{Content: "ok"}, nil
}
func (s *stubProvider) Stream(ctx context.Context, req *Request, w io.Writer) error {
	_, err := w.Write([]byte("ok"))
	return err
}

func TestRegistry(t *testing.T) {
	Register("stub", func(apiKey string) (Provider, error) {
		return &stubProvider{name: "stub"}, nil
	})

	p, err := New("stub", "key")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "stub" {
		t.Errorf("name = %q", p.Name())
	}

	_, err = New("does-not-exist", "")
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "stub") {
		t.Errorf("error should name the registered providers: %v", err)
	}

	found := false
	for _, name := range Names() {
		if name == "stub" {
			found = true
		}
	}
	if !found {
		t.Error("stub not listed")
	}
}

func TestOpenAIRegistered(t *testing.T) {
	p, err := New("openai", "sk-test")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "openai" {
		t.Errorf("name = %q", p.Name())
	}
	if _, err := New("openai", ""); err == nil ||
		!strings.Contains(err.Error(), "API key") {
		t.Errorf("missing key: got %v", err)
	}
}
