// Package deliveryevents consumes delivery progress published by the dispatch
// service on a Redis channel and moves allocations along accordingly.
//
// Payload:
//
//	{"allocation_id": "…", "event": "started|completed|failed", "occurred_at": "2025-03-04T09:30:00Z"}
//
// started advances the allocation to InProgress, completed to Completed, and
// failed cancels it so the order returns to the backlog.
package deliveryevents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/allocation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/retry"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

const (
	EventStarted   = "started"
	EventCompleted = "completed"
	EventFailed    = "failed"
)

type (
	AdvanceAllocationHandler interface {
		Handle(ctx context.Context, command commands.AdvanceAllocationCommand) error
	}

	CancelAllocationHandler interface {
		Handle(ctx context.Context, command commands.CancelAllocationCommand) (bool, error)
	}
)

// Event is one message on the channel.
type Event struct {
	AllocationID string    `json:"allocation_id"`
	Event        string    `json:"event"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Subscriber struct {
	client  *redis.Client
	channel string
	advance AdvanceAllocationHandler
	cancel  CancelAllocationHandler
	policy  retry.Policy
	logger  *slog.Logger
}

var errSubscriptionClosed = errors.New("subscription channel closed")

func NewSubscriber(
	client *redis.Client,
	channel string,
	advance AdvanceAllocationHandler,
	cancel CancelAllocationHandler,
	policy retry.Policy,
	logger *slog.Logger,
) *Subscriber {
	return &Subscriber{
		client:  client,
		channel: channel,
		advance: advance,
		cancel:  cancel,
		policy:  policy,
		logger:  logger.With("component", "delivery_events", "channel", channel),
	}
}

// Run subscribes and handles messages until ctx is done. A lost subscription
// is re-established with the policy's backoff; the budget starts over after
// every successful subscribe. Run returns an error once the budget is spent.
func (s *Subscriber) Run(ctx context.Context) error {
	b := s.policy.NewBackOff()
	for {
		subscribed, err := s.consume(ctx)
		if ctx.Err() != nil {
			s.logger.InfoContext(ctx, "Delivery events subscriber stopped")
			return nil
		}
		if subscribed {
			b.Reset()
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			return fmt.Errorf("subscribe to %s: %w", s.channel, err)
		}
		s.logger.WarnContext(ctx, "Delivery events subscription lost, resubscribing", "in", wait, "error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.InfoContext(ctx, "Delivery events subscriber stopped")
			return nil
		case <-timer.C:
		}
	}
}

// consume runs one subscription. subscribed reports whether Redis confirmed it.
func (s *Subscriber) consume(ctx context.Context) (subscribed bool, err error) {
	sub := s.client.Subscribe(ctx, s.channel)
	defer func() {
		_ = sub.Close()
	}()

	if _, err = sub.Receive(ctx); err != nil {
		return false, err
	}
	s.logger.InfoContext(ctx, "Subscribed to delivery events")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return true, nil
		case msg, ok := <-messages:
			if !ok {
				return true, errSubscriptionClosed
			}
			if err := s.Apply(ctx, msg.Payload); err != nil {
				s.logger.ErrorContext(ctx, "Failed to apply delivery event", "payload", msg.Payload, "error", err)
			}
		}
	}
}

// Apply handles a payload and, while the failure is retryable storage
// contention, handles it again with the policy's backoff.
func (s *Subscriber) Apply(ctx context.Context, payload string) error {
	return backoff.Retry(func() error {
		err := s.Handle(ctx, payload)
		if err != nil && !errs.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(s.policy.NewBackOff(), ctx))
}

// Handle applies one payload.
func (s *Subscriber) Handle(ctx context.Context, payload string) error {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("delivery event", err)
	}

	id, err := kernel.UUIDFromString(event.AllocationID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("allocation_id", err)
	}

	switch event.Event {
	case EventStarted:
		err = s.advanceTo(ctx, id, allocation.InProgress)
	case EventCompleted:
		err = s.advanceTo(ctx, id, allocation.Completed)
	case EventFailed:
		err = s.fail(ctx, id)
	default:
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("unknown delivery event %q", event.Event))
	}
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Delivery event applied",
		"allocation_id", id, "event", event.Event, "occurred_at", event.OccurredAt)
	return nil
}

func (s *Subscriber) advanceTo(ctx context.Context, id kernel.UUID, next allocation.Status) error {
	cmd, err := commands.NewAdvanceAllocationCommand(id, next)
	if err != nil {
		return err
	}
	return s.advance.Handle(ctx, cmd)
}

// fail releases the allocation as a dispatch failure, not a customer
// cancellation, so the order goes back to Pending.
func (s *Subscriber) fail(ctx context.Context, id kernel.UUID) error {
	cmd, err := commands.NewCancelAllocationCommand(id, false)
	if err != nil {
		return err
	}
	_, err = s.cancel.Handle(ctx, cmd)
	return err
}
