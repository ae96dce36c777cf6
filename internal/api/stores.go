package api

import (
	"context"

	"github.com/tradeflow/pulse/internal/models"
)

// UserStore resolves caller identities.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// PillarStore provides pillar lookups for the API.
type PillarStore interface {
	GetBySlug(ctx context.Context, slug string) (*models.Pillar, error)
	List(ctx context.Context) ([]*models.Pillar, error)
}

// PostStore provides post persistence for the API.
type PostStore interface {
	CreateWithAudit(ctx context.Context, post *models.Post, audit *models.PostAudit) error
	List(ctx context.Context, pillarID *int64, limit int) ([]*models.Post, error)
}
