package ai

import "context"

// MockSummarizer is a mock implementation of service.Summarizer for testing
type MockSummarizer struct {
	SummarizeFunc func(ctx context.Context, text string) (string, error)
}

func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}
	return "summary: " + truncate(text, 40), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
