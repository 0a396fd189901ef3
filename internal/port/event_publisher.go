package port

import (
	"context"

	"github.com/rl1809/supplier-hub/internal/core/domain"
)

type EventPublisher interface {
	PublishTransition(ctx context.Context, evt domain.TransitionEvent) error
	Close() error
}
