package core

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Answerer produces an answer for a question the cache has never seen.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// AnswerClient talks to the remote answering service: POST
// {baseURL}/process_question with {"question": ...}, expecting {"answer": ...}.
// Any transport failure, non-2xx status or unusable body is reported as
// ErrUpstream so callers never cache a partial result.
type AnswerClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAnswerClient(baseURL string) *AnswerClient {
	return &AnswerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // model inference can be slow
		},
	}
}

func (c *AnswerClient) Answer(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode question")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process_question", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to build answering request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(ErrUpstream, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Wrapf(ErrUpstream, "unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrapf(ErrUpstream, "malformed response body: %v", err)
	}
	if body.Answer == "" {
		return "", errors.Wrap(ErrUpstream, "response contained no answer")
	}
	return body.Answer, nil
}
