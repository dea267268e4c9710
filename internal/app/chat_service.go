package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/ai"
	"github.com/R3MiX9002/my-gemini-app/internal/config"
)

type ChatStreamer interface {
	StreamChat(ctx context.Context, cfg ai.ChatConfig, msg openai.ChatCompletionMessage, buffer int) (<-chan ai.Chunk, error)
}

type ChatService struct {
	client     ChatStreamer
	defaultLLM ai.ChatConfig
	buffer     int
}

type GenerateInput struct {
	Model    string
	Contents json.RawMessage
}

func NewChatService(client ChatStreamer, defaultLLM ai.ChatConfig, buffer int) *ChatService {
	if buffer <= 0 {
		buffer = 16
	}
	return &ChatService{
		client:     client,
		defaultLLM: defaultLLM,
		buffer:     buffer,
	}
}

// Stream starts a streamed completion for the request's contents. The model
// is never contacted while the API key is missing or still the placeholder.
func (s *ChatService) Stream(ctx context.Context, input GenerateInput) (<-chan ai.Chunk, error) {
	key := strings.TrimSpace(s.defaultLLM.APIKey)
	if key == "" || key == config.PlaceholderAPIKey {
		return nil, ErrLLMNotConfigured
	}

	msg, err := ai.BuildUserMessage(input.Contents)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyContent) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cfg := s.defaultLLM
	if m := strings.TrimSpace(input.Model); m != "" {
		cfg.Model = m
	}

	ctxzap.Extract(ctx).Info("llm stream requested",
		zap.String("model", cfg.Model),
		zap.Int("parts", max(len(msg.MultiContent), 1)),
	)
	return s.client.StreamChat(ctx, cfg, msg, s.buffer)
}
