// Package service defines the interfaces shared between the application's layers.
package service

import (
	"context"

	"github.com/Veraticus/spamsift/internal/model"
)

// Storage defines the contract for the classification history store.
type Storage interface {
	SaveVerdict(ctx context.Context, message string, verdict *model.Verdict) (*model.VerdictRecord, error)
	GetVerdict(ctx context.Context, id string) (*model.VerdictRecord, error)
	RecentVerdicts(ctx context.Context, limit int) ([]model.VerdictRecord, error)
	VerdictStats(ctx context.Context) (*model.VerdictStats, error)
	Migrate(ctx context.Context) error
	Close() error
}
