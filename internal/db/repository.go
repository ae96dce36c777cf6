package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tradeflow/pulse/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// PillarRepository provides pillar-related database operations
type PillarRepository struct {
	*Repository
}

// NewPillarRepository creates a new pillar repository
func NewPillarRepository(repo *Repository) *PillarRepository {
	return &PillarRepository{Repository: repo}
}

// GetBySlug retrieves a pillar by slug
func (r *PillarRepository) GetBySlug(ctx context.Context, slug string) (*models.Pillar, error) {
	var pillar models.Pillar
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&pillar).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pillar, nil
}

// List retrieves all pillars ordered by name
func (r *PillarRepository) List(ctx context.Context) ([]*models.Pillar, error) {
	var pillars []*models.Pillar
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&pillars).Error; err != nil {
		return nil, err
	}
	return pillars, nil
}

// Create creates a new pillar
func (r *PillarRepository) Create(ctx context.Context, pillar *models.Pillar) error {
	return r.db.WithContext(ctx).Create(pillar).Error
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// CreateWithAudit inserts a post and its audit row in a single transaction.
// Both succeed or both roll back; the audit's PostID is filled from the
// inserted post.
func (r *PostRepository) CreateWithAudit(ctx context.Context, post *models.Post, audit *models.PostAudit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		audit.PostID = post.ID
		return tx.Create(audit).Error
	})
}

// List retrieves the most recent posts, newest first, capped at limit.
// A non-nil pillarID restricts results to that pillar.
func (r *PostRepository) List(ctx context.Context, pillarID *int64, limit int) ([]*models.Post, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if pillarID != nil {
		query = query.Where("pillar_id = ?", *pillarID)
	}
	var posts []*models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// AuditRepository provides post-audit database operations.
// Audits are append-only; there are no update or delete methods.
type AuditRepository struct {
	*Repository
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(repo *Repository) *AuditRepository {
	return &AuditRepository{Repository: repo}
}

// ListByPost retrieves the audit trail of a post, oldest first
func (r *AuditRepository) ListByPost(ctx context.Context, postID int64) ([]*models.PostAudit, error) {
	var audits []*models.PostAudit
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&audits).Error; err != nil {
		return nil, err
	}
	return audits, nil
}
