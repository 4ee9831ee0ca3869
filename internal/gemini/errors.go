package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"github.com/lexread/lexread/internal/apperrors"
	"google.golang.org/api/googleapi"
)

type statusClass struct {
	kind apperrors.Kind
	msg  string
}

var statusClasses = map[int]statusClass{
	http.StatusBadRequest:      {apperrors.KindBadRequest, "Gemini rejected the request (400)."},
	http.StatusUnauthorized:    {apperrors.KindAuth, "Gemini did not accept the API key (401)."},
	http.StatusForbidden:       {apperrors.KindAuth, "The API key has no access to Gemini (403)."},
	http.StatusNotFound:        {apperrors.KindBadRequest, "Gemini model not found or no access (404)."},
	http.StatusTooManyRequests: {apperrors.KindRateLimit, "Gemini rate limit exceeded (429). Please try again later."},
}

// classifyError maps a generate-content failure to an apperrors kind.
// The upstream error is kept as the cause and never used as the message.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	cause := fmt.Errorf("gemini generate content: %w", err)

	switch {
	case errors.Is(err, context.Canceled):
		return apperrors.Canceled(cause)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.New(apperrors.KindTransient, "Gemini request timed out.", cause)
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return apperrors.New(apperrors.KindValidation, "Gemini declined to translate this text.", cause)
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return apperrors.New(apperrors.KindTransient, "Could not reach Gemini. Check the network connection.", cause)
	}
	if c, ok := statusClasses[gerr.Code]; ok {
		return apperrors.New(c.kind, c.msg, cause)
	}
	if gerr.Code >= http.StatusInternalServerError {
		return apperrors.New(apperrors.KindTransient, fmt.Sprintf("Gemini is temporarily unavailable (%d).", gerr.Code), cause)
	}
	return apperrors.New(apperrors.KindBadRequest, fmt.Sprintf("Gemini API error (%d).", gerr.Code), cause)
}
