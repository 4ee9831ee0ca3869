package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lexread/lexread/internal/apperrors"
	"google.golang.org/api/option"
)

// Request is one translation call.
type Request struct {
	Text           string
	TargetLanguage string
	Model          string
}

// Translator is implemented by Client and MockClient.
type Translator interface {
	Translate(ctx context.Context, request Request) (string, error)
	Close() error
}

// Client wraps one genai client bound to a single API key.
type Client struct {
	client *genai.Client
}

var _ Translator = (*Client)(nil)

// NewClient creates a new Gemini client bound to apiKey.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	// option.WithHTTPClient would drop the API key header; callers bound
	// each call through ctx instead.
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

func (c *Client) Close() error { return c.client.Close() }

// Translate returns the trimmed translation of request.Text. The call is
// bounded only by ctx.
func (c *Client) Translate(ctx context.Context, request Request) (string, error) {
	model := c.client.GenerativeModel(request.Model)
	model.ResponseMIMEType = "text/plain"

	resp, err := model.GenerateContent(ctx, genai.Text(BuildPrompt(request.Text, request.TargetLanguage)))
	if err != nil {
		return "", classifyError(err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", apperrors.Validation(err)
	}
	return strings.TrimSpace(text), nil
}

// BuildPrompt renders the instruction sent for a translation.
func BuildPrompt(text, targetLanguage string) string {
	return fmt.Sprintf(`Translate the following text into %s.
Do not include any explanations, introductory text, or markdown code blocks.
Only provide the direct translation.

Text to translate:
"%s"`, targetLanguage, text)
}

var (
	errNoResponse   = errors.New("no response received from Gemini")
	errNoCandidates = errors.New("no candidates returned from Gemini")
	errNoText       = errors.New("no text parts found in Gemini response")
)

// responseText returns the text of the first candidate that has any.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", errNoResponse
	case len(resp.Candidates) == 0:
		return "", errNoCandidates
	}
	for _, c := range resp.Candidates {
		if text := candidateText(c); strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", errNoText
}

func candidateText(c *genai.Candidate) string {
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
