package genai

import (
	"context"
	"fmt"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"huddle/config"
)

// Client wraps a generative model behind a single text-in/text-out call.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type clientImpl struct {
	model *gemini.GenerativeModel
}

func New(config *config.Config) Client {
	ctx := context.Background()

	client, err := gemini.NewClient(ctx, option.WithAPIKey(config.External.Gemini.APIKey))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	model := client.GenerativeModel(config.External.Gemini.Model)

	log.Info().Str("model", config.External.Gemini.Model).Msg("Gemini client initialized")

	return &clientImpl{model: model}
}

func (c *clientImpl) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, gemini.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(gemini.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	return sb.String(), nil
}
