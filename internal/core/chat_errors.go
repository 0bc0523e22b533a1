package core

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// ChatErrorKind classifies a relay failure for the visible system note.
type ChatErrorKind string

const (
	ChatErrMissingCredential ChatErrorKind = "missing_credential"
	ChatErrAuth              ChatErrorKind = "auth"
	ChatErrRateLimit         ChatErrorKind = "rate_limit"
	ChatErrNetwork           ChatErrorKind = "network"
)

// ClassifyChatError maps an inference-endpoint failure to its kind.
// Anything that is not clearly an auth or rate-limit rejection counts as a
// network failure.
func ClassifyChatError(err error) ChatErrorKind {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 401, 403:
			return ChatErrAuth
		case 429:
			return ChatErrRateLimit
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "permission denied"):
		return ChatErrAuth
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "429"):
		return ChatErrRateLimit
	default:
		return ChatErrNetwork
	}
}

// SystemNote is the text stored in the conversation log when the relay
// enters the error state. The user resubmits manually; nothing retries.
func SystemNote(kind ChatErrorKind) string {
	switch kind {
	case ChatErrMissingCredential:
		return "The assistant is not configured: missing credential. Set GEMINI_API_KEY and restart the server."
	case ChatErrAuth:
		return "The assistant could not authenticate with the inference endpoint. Check the configured credential."
	case ChatErrRateLimit:
		return "The inference endpoint rate limit was hit. Please wait a moment and resubmit your message."
	default:
		return "The assistant could not reach the inference endpoint. Please check connectivity and resubmit your message."
	}
}
