package repository

import (
	"context"
	"time"

	"github.com/sakif/prompt-library/internal/model"
)

// SessionRepository stores browser sessions. Get returns an
// apperror.ErrNotFound error for unknown ids.
type SessionRepository interface {
	Save(ctx context.Context, rec model.SessionRecord) error
	Get(ctx context.Context, id string) (*model.SessionRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteIdle(ctx context.Context, before time.Time) (int64, error)
}
