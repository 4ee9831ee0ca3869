package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/lexread/lexread/internal/apperrors"
	"github.com/lexread/lexread/internal/auth"
	"github.com/lexread/lexread/internal/gemini"
	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/metadata"
	"github.com/lexread/lexread/internal/settings"
)

// DefaultTimeout bounds a single backend call unless WithTimeout says
// otherwise.
const DefaultTimeout = 60 * time.Second

// ClientFactory builds a backend client bound to one credential.
type ClientFactory func(ctx context.Context, apiKey string) (gemini.Translator, error)

// Translator is the single translation operation consumed by the overlay
// controller and the CLI.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string, mode settings.Mode, credential string) (string, error)
}

// Service resolves credentials and models, then performs one backend call
// per request. Clients are cached per credential.
type Service struct {
	newClient ClientFactory
	envKey    func() (string, bool)
	timeout   time.Duration

	mu     sync.Mutex
	client gemini.Translator
	key    string
}

type Option func(*Service)

// WithClientFactory replaces the Gemini client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(s *Service) { s.newClient = f }
}

// WithEnvLookup replaces the environment credential lookup.
func WithEnvLookup(f func() (string, bool)) Option {
	return func(s *Service) { s.envKey = f }
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func NewService(opts ...Option) *Service {
	s := &Service{
		newClient: defaultClientFactory,
		envKey:    auth.GetEnvKey,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultClientFactory(ctx context.Context, apiKey string) (gemini.Translator, error) {
	return gemini.NewClient(ctx, apiKey)
}

var _ Translator = (*Service)(nil)

func (s *Service) Translate(ctx context.Context, text, targetLanguage string, mode settings.Mode, credential string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.EmptyInput()
	}

	apiKey := strings.TrimSpace(credential)
	if apiKey == "" {
		apiKey, _ = s.envKey()
	}
	if apiKey == "" {
		return "", apperrors.MissingCredential()
	}

	model, ok := metadata.ModelForMode(string(mode))
	if !ok {
		logger.Warn("Unknown translation mode, using default model", "mode", string(mode), "model", model.ID)
	}

	requestID := newRequestID()
	log := logger.Component("translate").With("request_id", requestID, "model", model.ID)
	log.Debug("Translation requested", "target", targetLanguage, "chars", uniseg.GraphemeClusterCount(text))

	client, err := s.clientFor(ctx, apiKey)
	if err != nil {
		log.Error("Failed to create Gemini client", "error", err)
		return "", apperrors.New(apperrors.KindTransient, "Failed to initialize the translation client.", err)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := client.Translate(callCtx, gemini.Request{
		Text:           text,
		TargetLanguage: targetLanguage,
		Model:          model.ID,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			log.Debug("Translation canceled")
			return "", apperrors.Canceled(err)
		}
		log.Error("Translation failed", "error", err, "cause", causeOf(err), "retryable", apperrors.Retryable(err))
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		log.Error("Translation returned empty text")
		return "", apperrors.Validation(errors.New("empty translation"))
	}

	log.Debug("Translation completed", "elapsed", time.Since(start).Round(time.Millisecond).String())
	return out, nil
}

func (s *Service) clientFor(ctx context.Context, apiKey string) (gemini.Translator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil && s.key == apiKey {
		return s.client, nil
	}
	client, err := s.newClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if s.client != nil {
		if cerr := s.client.Close(); cerr != nil {
			logger.Warn("Failed to close previous Gemini client", "error", cerr)
		}
	}
	s.client = client
	s.key = apiKey
	return client, nil
}

// Close releases the cached client.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	s.key = ""
	return err
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func causeOf(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Cause != nil {
		return appErr.Cause.Error()
	}
	return ""
}
