package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrMalformedResponse is returned when the API answered 200 but the body
// is not JSON or has no answer field.
var ErrMalformedResponse = errors.New("malformed summarizer response")

// StatusError carries a non-success HTTP status and the raw body
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("summarizer returned status %d", e.Code)
}

const maxResponseBody = 10 << 20

type difyFile struct {
	Type           string `json:"type"`
	TransferMethod string `json:"transfer_method"`
	URL            string `json:"url"`
}

type difyRequest struct {
	Query          string                 `json:"query"`
	Inputs         map[string]interface{} `json:"inputs"`
	ResponseMode   string                 `json:"response_mode"`
	User           string                 `json:"user"`
	ConversationID string                 `json:"conversation_id"`
	Files          []difyFile             `json:"files"`
}

type difyResponse struct {
	Answer         *string `json:"answer"`
	ConversationID string  `json:"conversation_id"`
	MessageID      string  `json:"message_id"`
}

func (d *difySummarizer) Name() string { return "dify " + d.cfg.Endpoint }

// Summarize issues a single blocking POST. No retry.
func (d *difySummarizer) Summarize(ctx context.Context, req Request) (Response, error) {
	body := difyRequest{
		Query:          req.Query,
		Inputs:         d.cfg.Inputs,
		ResponseMode:   "blocking",
		User:           d.cfg.User,
		ConversationID: req.ConversationID,
		Files:          []difyFile{},
	}
	if body.Inputs == nil {
		body.Inputs = map[string]interface{}{}
	}
	for _, f := range d.cfg.Files {
		body.Files = append(body.Files, difyFile{Type: f.Type, TransferMethod: f.TransferMethod, URL: f.URL})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("post %s: %w", d.cfg.Endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		d.logger.Error(ctx, "Summarizer error: status %d: %s", resp.StatusCode, raw)
		return Response{}, &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	var out difyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		d.logger.Error(ctx, "Response content is not in JSON format: %s", raw)
		return Response{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if out.Answer == nil {
		d.logger.Error(ctx, "Response has no answer field: %s", raw)
		return Response{}, fmt.Errorf("%w: missing answer", ErrMalformedResponse)
	}

	d.logger.Info(ctx, "Chat message sent successfully (message %s)", out.MessageID)
	return Response{Answer: *out.Answer, ConversationID: out.ConversationID}, nil
}
