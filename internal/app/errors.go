package app

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoFiles          = errors.New("no files uploaded")
	ErrMissingQuery     = errors.New("query parameter is missing")
	ErrUnknownEngine    = errors.New("unknown search engine")
	ErrSearchFailed     = errors.New("search failed")
	ErrLLMNotConfigured = errors.New("llm api key is not configured")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSettingNotFound  = errors.New("setting not found")
	ErrElementNotFound  = errors.New("element not found")
	ErrFileNotFound     = errors.New("file not found")
	ErrUserNotFound     = errors.New("user not found")
)

// LLMSetupMessage is returned to the client while no API key is configured.
const LLMSetupMessage = "To get started, get an API key at https://g.co/ai/idxGetGeminiKey " +
	"and set it in the GOOGLE_API_KEY environment variable"
