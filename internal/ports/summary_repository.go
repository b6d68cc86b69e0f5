package ports

import (
	"context"

	"gittrainer/internal/domain"
)

// SummaryWriter appends finished-session records
type SummaryWriter interface {
	Append(ctx context.Context, summary domain.Summary) error
}

// SummaryReader reads the full session history in append order
type SummaryReader interface {
	LoadAll(ctx context.Context) ([]domain.Summary, error)
}

// SummaryRepository is the composite interface for the session log
type SummaryRepository interface {
	SummaryWriter
	SummaryReader
	Close() error
}
