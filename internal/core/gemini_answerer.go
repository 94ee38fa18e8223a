package core

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const (
	geminiModelName = "gemini-1.5-flash-latest"

	answerSystemInstruction = "You are a helpful support assistant. Answer the user's question " +
		"concisely and factually. If you do not know the answer, say so instead of making one up."
)

// GeminiAnswerer answers questions directly through the Gemini API. It is
// the deployment profile for installations that don't run a separate
// answering service.
type GeminiAnswerer struct {
	client *genai.Client
}

func NewGeminiAnswerer(ctx context.Context, apiKey string) (*GeminiAnswerer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GenAI client")
	}
	return &GeminiAnswerer{client: client}, nil
}

func (g *GeminiAnswerer) Close() {
	if g.client != nil {
		if err := g.client.Close(); err != nil {
			log.WithError(err).Warn("Error closing GenAI client")
		}
	}
}

func (g *GeminiAnswerer) Answer(ctx context.Context, question string) (string, error) {
	model := g.client.GenerativeModel(geminiModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(answerSystemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(question))
	if err != nil {
		return "", errors.Wrapf(ErrUpstream, "gemini request failed: %v", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.Wrap(ErrUpstream, "gemini returned no candidates")
	}

	var answer strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			answer.WriteString(string(txt))
		} else {
			log.Debugf("Gemini response part was not text: %T", part)
		}
	}

	if answer.Len() == 0 {
		return "", errors.Wrap(ErrUpstream, "gemini response contained no text")
	}
	return answer.String(), nil
}
