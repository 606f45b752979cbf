package ports

import (
	"context"
	"time"

	"ActionCountdown/internal/domain"
)

// ItemSource yields the current spreadsheet rows. Implementations never fail:
// an unavailable source yields an empty slice.
type ItemSource interface {
	Items(ctx context.Context) []domain.CountdownItem
}

// Opener navigates to an item link in a new browsing context.
type Opener interface {
	Open(url string) error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
