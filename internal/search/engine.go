package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/R3MiX9002/my-gemini-app/internal/config"
	"github.com/R3MiX9002/my-gemini-app/internal/pkg/httpclient"
)

const (
	Yahoo = "yahoo"
	Bing  = "bing"
)

// ErrEmptyBody is returned when a provider answers 2xx with no JSON at all.
var ErrEmptyBody = errors.New("empty response body")

// Engine runs one query against one provider and returns its JSON body as-is.
type Engine interface {
	Name() string
	Search(ctx context.Context, query string) (json.RawMessage, error)
}

type yahooEngine struct {
	connector *httpclient.Connector
}

// NewYahoo sends q only. An API key, when set, goes out as a bearer token.
func NewYahoo(cfg config.SearchEngineConfig, timeout time.Duration) Engine {
	return &yahooEngine{
		connector: httpclient.NewConnector(cfg.URL,
			httpclient.WithRequestTimeout(timeout),
			httpclient.WithAuthToken(cfg.APIKey),
			httpclient.WithRequestLogging(),
		),
	}
}

func (e *yahooEngine) Name() string { return Yahoo }

func (e *yahooEngine) Search(ctx context.Context, query string) (json.RawMessage, error) {
	var body json.RawMessage
	if err := e.connector.DoRequest(ctx, http.MethodGet, "", nil, &body,
		httpclient.WithQuery("q", query),
	); err != nil {
		return nil, fmt.Errorf("yahoo search failed: %w", err)
	}
	return checkBody(Yahoo, body)
}

type bingEngine struct {
	connector *httpclient.Connector
	apiKey    string
	market    string
}

func NewBing(cfg config.SearchEngineConfig, timeout time.Duration) Engine {
	return &bingEngine{
		connector: httpclient.NewConnector(cfg.URL,
			httpclient.WithRequestTimeout(timeout),
			httpclient.WithRequestLogging(),
		),
		apiKey: cfg.APIKey,
		market: cfg.Market,
	}
}

func (e *bingEngine) Name() string { return Bing }

func (e *bingEngine) Search(ctx context.Context, query string) (json.RawMessage, error) {
	opts := []httpclient.RequestOpt{
		httpclient.WithQuery("q", query),
		httpclient.WithHeader("Ocp-Apim-Subscription-Key", e.apiKey),
	}
	if e.market != "" {
		opts = append(opts, httpclient.WithQuery("mkt", e.market))
	}

	var body json.RawMessage
	if err := e.connector.DoRequest(ctx, http.MethodGet, "", nil, &body, opts...); err != nil {
		return nil, fmt.Errorf("bing search failed: %w", err)
	}
	return checkBody(Bing, body)
}

func checkBody(engine string, body json.RawMessage) (json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%s search failed: %w", engine, ErrEmptyBody)
	}
	return body, nil
}
