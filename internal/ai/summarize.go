package ai

import (
	"context"
	"fmt"
	"strings"
)

// EmptySummary is returned when there is nothing to summarize. No request
// is made in that case.
const EmptySummary = "No journal entries to summarize."

const summarySystem = "You are a supportive and motivational journaling assistant."

// summaryErrorPrefix marks provider failures surfaced as summary text.
const summaryErrorPrefix = "Error generating summary:"

// Failed reports whether a summary is the error placeholder rather than
// generated text, so callers can show it without persisting it.
func Failed(summary string) bool {
	return strings.HasPrefix(summary, summaryErrorPrefix)
}

// Summarizer turns journal entry text into a short motivational summary.
// Provider failures come back as readable text rather than errors so the
// UI can always show something in the summary slot.
type Summarizer struct {
	provider Provider
	model    string
}

// NewSummarizer wraps a provider. A non-empty model overrides the
// provider's default for summary requests.
func NewSummarizer(p Provider, model string) *Summarizer {
	return &Summarizer{provider: p, model: model}
}

// Summarize generates a summary of the given entries text for a period
// ("daily", "weekly", "monthly").
func (s *Summarizer) Summarize(ctx context.Context, entriesText, period string) string {
	if strings.TrimSpace(entriesText) == "" {
		return EmptySummary
	}

	prompt := fmt.Sprintf(
		"Please summarize the following journal entries for a %s period. "+
			"Focus on the emotional tone, the main feelings expressed, and possible underlying causes. "+
			"Provide a brief motivational summary that helps me stay positive and focused.\n\n%s",
		strings.ToLower(period), entriesText)

	resp, err := s.provider.Complete(ctx, &Request{
		Prompt:      prompt,
		System:      summarySystem,
		Model:       s.model,
		Temperature: 0.7,
		MaxTokens:   250,
	})
	if err != nil {
		return fmt.Sprintf("%s %v", summaryErrorPrefix, err)
	}
	return strings.TrimSpace(resp.Content)
}
