package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/R3MiX9002/my-gemini-app/internal/pkg/httpclient"
)

type ChatConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Chunk is one streamed text delta. A chunk with Err set is the last one.
type Chunk struct {
	Text string
	Err  error
}

// Client streams chat completions from an OpenAI-compatible endpoint.
type Client struct {
	httpClient *http.Client
}

// NewHTTPClient builds the transport for chat streams. headerTimeout bounds
// the wait for the first response only; the body is read until the upstream
// finishes or the caller's context ends.
func NewHTTPClient(headerTimeout time.Duration) *http.Client {
	return httpclient.NewClient(
		httpclient.WithoutRequestTimeout(),
		httpclient.WithResponseHeaderTimeout(headerTimeout),
		httpclient.WithRequestLogging(),
	)
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// StreamChat opens a streaming completion for a single message. Errors before
// the stream is established are returned directly; later failures arrive as
// the final Chunk. The channel is closed when the upstream ends or ctx is
// cancelled.
func (c *Client) StreamChat(ctx context.Context, cfg ChatConfig, msg openai.ChatCompletionMessage, buffer int) (<-chan Chunk, error) {
	if buffer <= 0 {
		buffer = 16
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = c.httpClient

	stream, err := openai.NewClientWithConfig(clientCfg).CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    cfg.Model,
		Messages: []openai.ChatCompletionMessage{msg},
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("open llm stream failed: %w", err)
	}

	out := make(chan Chunk, buffer)
	go func() {
		defer close(out)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				send(ctx, out, Chunk{Err: fmt.Errorf("read llm stream failed: %w", err)})
				return
			}
			if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
				continue
			}
			if !send(ctx, out, Chunk{Text: resp.Choices[0].Delta.Content}) {
				return
			}
		}
	}()
	return out, nil
}

func send(ctx context.Context, out chan<- Chunk, chunk Chunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
