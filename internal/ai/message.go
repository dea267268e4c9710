package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var ErrEmptyContent = errors.New("message content is empty")

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// contentItem accepts both a bare part and a {role, parts} content entry.
type contentItem struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	InlineData *inlineData `json:"inline_data"`
	ImageURL   *struct {
		URL string `json:"url"`
	} `json:"image_url"`
	Role  string        `json:"role"`
	Parts []contentItem `json:"parts"`
}

// BuildUserMessage turns the web client's contents value into one user
// message. raw may be a string, an array of parts, a {role, parts} object or
// an array of such objects.
func BuildUserMessage(raw json.RawMessage) (openai.ChatCompletionMessage, error) {
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return msg, ErrEmptyContent
	}

	var items []contentItem
	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return msg, fmt.Errorf("decode text content failed: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return msg, ErrEmptyContent
		}
		msg.Content = text
		return msg, nil
	case '{':
		var item contentItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return msg, fmt.Errorf("decode content object failed: %w", err)
		}
		items = []contentItem{item}
	case '[':
		if err := json.Unmarshal(raw, &items); err != nil {
			return msg, fmt.Errorf("decode content array failed: %w", err)
		}
	default:
		return msg, fmt.Errorf("unsupported content type")
	}

	parts := flatten(items)
	if len(parts) == 0 {
		return msg, ErrEmptyContent
	}

	textOnly := true
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Type != openai.ChatMessagePartTypeText {
			textOnly = false
			break
		}
		texts = append(texts, p.Text)
	}
	if textOnly {
		msg.Content = strings.Join(texts, "\n")
		return msg, nil
	}
	msg.MultiContent = parts
	return msg, nil
}

func flatten(items []contentItem) []openai.ChatMessagePart {
	var parts []openai.ChatMessagePart
	for _, item := range items {
		if len(item.Parts) > 0 {
			parts = append(parts, flatten(item.Parts)...)
			continue
		}
		switch {
		case item.InlineData != nil && item.InlineData.Data != "":
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", item.InlineData.MimeType, item.InlineData.Data),
				},
			})
		case item.ImageURL != nil && item.ImageURL.URL != "":
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: item.ImageURL.URL},
			})
		case item.Text != "":
			parts = append(parts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: item.Text,
			})
		}
	}
	return parts
}
