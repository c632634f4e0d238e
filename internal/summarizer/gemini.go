package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultPrompt = `You are an assistant that writes meeting minutes. Based on the transcript below, write a concise summary.

Requirements:
- Start with a one-sentence overview of the meeting
- List the main topics in the order they were discussed
- List decisions and action items with owners when mentioned
- Use markdown: headings, bullet points, bold for key terms

Transcript:
---
%s
---`

func (s *geminiSummarizer) Name() string { return "gemini " + s.model }

// Summarize builds the prompt from the transcript and asks Gemini for the
// minutes. Gemini has no conversation state, so ConversationID is ignored.
// Rotates API keys on 429 / quota errors.
func (s *geminiSummarizer) Summarize(ctx context.Context, req Request) (Response, error) {
	prompt := buildPrompt(s.prompt, req.Query)

	attempts := len(s.apiKeys)
	if attempts == 0 {
		return Response{}, fmt.Errorf("no Gemini API keys configured")
	}
	var lastErr error

	for range attempts {
		key, idx := s.key()

		text, err := s.generate(ctx, key, prompt)
		if err != nil {
			if isRateLimited(err) {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return Response{}, fmt.Errorf("generate content: %w", err)
		}

		if strings.TrimSpace(text) == "" {
			return Response{}, fmt.Errorf("%w: empty response from Gemini", ErrMalformedResponse)
		}
		return Response{Answer: text}, nil
	}

	return Response{}, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *geminiSummarizer) callGemini(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", nil
}

// buildPrompt substitutes the transcript for %s, or appends it when the
// configured template has no placeholder.
func buildPrompt(template, transcript string) string {
	if strings.Contains(template, "%s") {
		return strings.Replace(template, "%s", transcript, 1)
	}
	return template + "\n\n" + transcript
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (s *geminiSummarizer) key() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKeys[s.currentKey], s.currentKey
}

func (s *geminiSummarizer) rotateKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}
