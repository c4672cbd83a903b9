// Package chat holds the chat session: credential acquisition, the
// transcript and the single-request interaction lock.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apierrors "github.com/diogo/askbox/internal/errors"
	"github.com/diogo/askbox/internal/models"
)

// CredentialSource yields the completion API key from a remote provider
type CredentialSource interface {
	FetchCredential(ctx context.Context) (string, error)
}

// Completer sends one user message to the completion endpoint
type Completer interface {
	Complete(ctx context.Context, apiKey, requestID, userText string) (string, error)
}

// State is the credential lifecycle of a session
type State int

const (
	StateUninitialized State = iota
	StateCredentialPending
	StateReady
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCredentialPending:
		return "credential-pending"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Session is one chat client instance. It is safe for concurrent use, but
// only one submission runs at a time.
type Session struct {
	creds       CredentialSource
	completer   Completer
	fallbackKey string
	observer    Observer
	logger      zerolog.Logger
	newID       func() string

	mu         sync.Mutex
	apiKey     string
	state      State
	busy       bool
	transcript []models.Message
	acquiring  chan struct{} // closed when the running acquisition ends
}

// Option configures a Session
type Option func(*Session)

// WithFallbackKey sets the local credential used when the provider fails
func WithFallbackKey(key string) Option {
	return func(s *Session) {
		s.fallbackKey = key
	}
}

// WithObserver sets the view notified of transcript and lock changes
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLogger sets the session logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithIDGenerator overrides how submission ids are minted
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a session. creds may be nil, in which case only the fallback
// key is consulted.
func New(creds CredentialSource, completer Completer, opts ...Option) *Session {
	s := &Session{
		creds:     creds,
		completer: completer,
		observer:  NopObserver{},
		logger:    zerolog.Nop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetObserver replaces the observer. Used when the view is created after the session.
func (s *Session) SetObserver(o Observer) {
	if o == nil {
		o = NopObserver{}
	}
	s.mu.Lock()
	s.observer = o
	s.mu.Unlock()
}

// Start begins the initial credential acquisition in the background
func (s *Session) Start(ctx context.Context) {
	go func() {
		_ = s.AcquireCredential(ctx)
	}()
}

// AcquireCredential asks the credential source for a key, falling back to the
// local key. If an acquisition is already running it waits for that one.
// Returns an error wrapping errors.ErrCredentialUnavailable when no key was found.
func (s *Session) AcquireCredential(ctx context.Context) error {
	s.mu.Lock()
	if done := s.acquiring; done != nil {
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", apierrors.ErrCredentialUnavailable, ctx.Err())
		}
		if s.HasCredential() {
			return nil
		}
		return apierrors.ErrCredentialUnavailable
	}
	done := make(chan struct{})
	s.acquiring = done
	if s.apiKey == "" {
		s.state = StateCredentialPending
	}
	s.mu.Unlock()

	key, err := s.resolveCredential(ctx)

	s.mu.Lock()
	if key != "" {
		s.apiKey = key
		s.state = StateReady
	} else if s.apiKey == "" {
		s.state = StateUninitialized
	}
	s.acquiring = nil
	s.mu.Unlock()
	close(done)

	return err
}

// resolveCredential tries the remote source, then the fallback key
func (s *Session) resolveCredential(ctx context.Context) (string, error) {
	var fetchErr error
	if s.creds != nil {
		key, err := s.creds.FetchCredential(ctx)
		if err == nil && key != "" {
			s.logger.Info().Msg("API key loaded from credential provider")
			return key, nil
		}
		if err == nil {
			err = fmt.Errorf("credential provider returned an empty key")
		}
		fetchErr = err
		s.logger.Warn().Err(err).Msg("credential provider unavailable")
	}

	if s.fallbackKey != "" {
		s.logger.Info().Msg("using API key from local configuration")
		return s.fallbackKey, nil
	}

	s.logger.Error().Msg("no API key from provider or local configuration")
	if fetchErr != nil {
		return "", fmt.Errorf("%w: %w", apierrors.ErrCredentialUnavailable, fetchErr)
	}
	return "", apierrors.ErrCredentialUnavailable
}

// Submit sends userText and appends the exchange to the transcript.
//
// Blank input is ignored. Otherwise exactly one assistant message is appended:
// the reply, or a notice when no credential could be found or the completion
// failed. The returned error is for logging only; the transcript never shows it.
// A call made while another submission is running returns errors.ErrBusy and
// changes nothing.
func (s *Session) Submit(ctx context.Context, userText string) error {
	text := strings.TrimSpace(userText)
	if text == "" {
		return nil
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return apierrors.ErrBusy
	}
	s.busy = true
	s.mu.Unlock()
	s.notify(func(o Observer) { o.BusyChanged(true) })

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
		s.notify(func(o Observer) { o.BusyChanged(false) })
	}()

	id := s.newID()
	logger := s.logger.With().Str("submission", id).Logger()

	if !s.HasCredential() {
		if err := s.AcquireCredential(ctx); err != nil {
			logger.Error().Err(err).Msg("submission aborted without API key")
			s.append(models.NewAssistantMessage(models.NoticeCredentialUnavailable))
			return err
		}
	}

	s.append(models.NewUserMessage(text))
	s.notify(func(o Observer) { o.InputCleared() })

	reply, err := s.completer.Complete(ctx, s.credential(), id, text)
	if err != nil {
		logger.Error().
			Err(err).
			Int("status", apierrors.StatusCode(err)).
			Bool("transport", apierrors.IsTransport(err)).
			Bool("shape", apierrors.IsShape(err)).
			Msg("completion request failed")
		s.append(models.NewAssistantMessage(models.NoticeCompletionFailed))
		return err
	}

	logger.Debug().Int("reply_len", len(reply)).Msg("completion received")
	s.append(models.NewAssistantMessage(reply))
	return nil
}

// Transcript returns a copy of the messages in order
func (s *Session) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Busy reports whether a submission is in flight
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// HasCredential reports whether a key is held
func (s *Session) HasCredential() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey != ""
}

// State returns the credential state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey
}

// append adds msg to the transcript, then tells the observer outside the lock
func (s *Session) append(msg models.Message) {
	s.mu.Lock()
	s.transcript = append(s.transcript, msg)
	s.mu.Unlock()
	s.notify(func(o Observer) { o.MessageAppended(msg) })
}

func (s *Session) notify(fn func(Observer)) {
	s.mu.Lock()
	o := s.observer
	s.mu.Unlock()
	fn(o)
}
