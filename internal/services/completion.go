package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"campus-portal-backend/internal/models"
)

const campusPersona = `You are an AI assistant for Siddaganga Institute of Technology (SITE).
You help with:
- Room availability
- Timetables
- Events
- Canteen info
- Issue reporting
- Study materials
Reply friendly and useful.`

const (
	// ApologyReply is returned when the provider answers without usable text.
	ApologyReply = "I could not process your request."
	// FallbackReply is returned when the provider call fails.
	FallbackReply = "Something went wrong. Try again, I'm here to help!"
)

// CompletionRequest is a single system + user exchange.
type CompletionRequest struct {
	System    string
	Message   string
	MaxTokens int
}

// CompletionProvider sends one exchange to a hosted model and returns the
// text of each candidate in the order the provider ranked them.
type CompletionProvider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) ([]string, error)
}

type CompletionGatewayConfig struct {
	MaxTokens          int
	Timeout            time.Duration
	ConcurrentRequests int
}

// CompletionGateway turns a user utterance into a conversational reply. Every
// provider failure is absorbed into FallbackReply; callers only ever see a
// ValidationError.
type CompletionGateway struct {
	provider  CompletionProvider
	maxTokens int
	timeout   time.Duration
	slots     chan struct{} // Token bucket
	logger    *slog.Logger
}

func NewCompletionGateway(provider CompletionProvider, cfg CompletionGatewayConfig, logger *slog.Logger) *CompletionGateway {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 300
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.ConcurrentRequests <= 0 {
		cfg.ConcurrentRequests = 5
	}
	if logger == nil {
		logger = slog.Default()
	}

	slots := make(chan struct{}, cfg.ConcurrentRequests)
	for i := 0; i < cfg.ConcurrentRequests; i++ {
		slots <- struct{}{}
	}

	return &CompletionGateway{
		provider:  provider,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		slots:     slots,
		logger:    logger,
	}
}

// GetReply validates message, makes at most one provider call and always
// returns a reply unless message is empty.
func (g *CompletionGateway) GetReply(ctx context.Context, message string) (*models.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{
			Message: "Message is required",
			Fields:  map[string]string{"message": "message is required"},
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.complete(ctx, message)
	if err != nil {
		g.logger.ErrorContext(ctx, "chat completion failed",
			slog.String("provider", g.provider.Name()),
			slog.Any("error", err),
		)
		return &models.ChatReply{Response: FallbackReply}, nil
	}

	if text == "" {
		g.logger.WarnContext(ctx, "chat completion returned no text",
			slog.String("provider", g.provider.Name()),
		)
		return &models.ChatReply{Response: ApologyReply}, nil
	}

	return &models.ChatReply{Response: text}, nil
}

type completion struct {
	candidates []string
	err        error
}

// complete holds a slot for one provider call and gives up at ctx's deadline
// even if the provider ignores cancellation. A late answer is discarded.
func (g *CompletionGateway) complete(ctx context.Context, message string) (string, error) {
	if err := g.acquireSlot(ctx); err != nil {
		return "", &UpstreamError{Provider: g.provider.Name(), Err: err}
	}

	done := make(chan completion, 1)
	go func() {
		defer g.releaseSlot()
		defer func() {
			if r := recover(); r != nil {
				done <- completion{err: fmt.Errorf("panic: %v", r)}
			}
		}()

		candidates, err := g.provider.Complete(ctx, CompletionRequest{
			System:    campusPersona,
			Message:   message,
			MaxTokens: g.maxTokens,
		})
		done <- completion{candidates: candidates, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", &UpstreamError{Provider: g.provider.Name(), Err: res.err}
		}
		if len(res.candidates) == 0 {
			return "", nil
		}
		return res.candidates[0], nil
	case <-ctx.Done():
		return "", &UpstreamError{Provider: g.provider.Name(), Err: fmt.Errorf("no reply before deadline: %w", ctx.Err())}
	}
}

// acquireSlot blocks until a provider slot is free or ctx is done.
func (g *CompletionGateway) acquireSlot(ctx context.Context) error {
	select {
	case <-g.slots:
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("timeout waiting for a provider slot")
		}
		return ctx.Err()
	}
}

func (g *CompletionGateway) releaseSlot() {
	g.slots <- struct{}{}
}
