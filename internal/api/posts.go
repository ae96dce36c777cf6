package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradeflow/pulse/internal/api/objects"
	"github.com/tradeflow/pulse/internal/cache"
	"github.com/tradeflow/pulse/internal/models"
	"github.com/tradeflow/pulse/pkg/telemetry"
)

// createdAuditPayload is the change payload recorded for every new post.
var createdAuditPayload = []byte(`{"created":true}`)

// PostAPI handles post creation and listing
type PostAPI struct {
	pillars   PillarStore
	posts     PostStore
	cache     *cache.Cache
	listLimit int
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewPostAPI creates a new post API
func NewPostAPI(pillars PillarStore, posts PostStore, redisCache *cache.Cache, listLimit int, cacheTTL time.Duration, logger *zap.Logger) *PostAPI {
	return &PostAPI{
		pillars:   pillars,
		posts:     posts,
		cache:     redisCache,
		listLimit: listLimit,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// createPostRequest is the POST /api/posts body
type createPostRequest struct {
	PillarSlug    string   `json:"pillarSlug" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	Commodity     string   `json:"commodity"`
	QuantityMin   *float64 `json:"quantityMin"`
	QuantityMax   *float64 `json:"quantityMax"`
	Location      string   `json:"location"`
	ReadinessDate string   `json:"readinessDate"`
	FreeText      string   `json:"freeText" binding:"required,min=5"`
}

// Create handles POST /api/posts
func (a *PostAPI) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.create")
	defer span.End()

	user := currentUser(c)
	if user == nil {
		abortWithError(c, NewError(http.StatusUnauthorized, "missing identity header"))
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewValidationError(validationIssues(err)))
		return
	}

	readiness, err := parseReadinessDate(req.ReadinessDate)
	if err != nil {
		abortWithError(c, NewValidationError([]Issue{
			{Field: "readinessDate", Message: err.Error()},
		}))
		return
	}

	pillar, err := a.pillars.GetBySlug(ctx, req.PillarSlug)
	if err != nil {
		a.logger.Error("pillar lookup failed", zap.String("slug", req.PillarSlug), zap.Error(err))
		abortWithError(c, NewError(http.StatusInternalServerError, "pillar lookup failed"))
		return
	}
	if pillar == nil {
		abortWithError(c, NewError(http.StatusNotFound, "unknown pillar"))
		return
	}

	post := &models.Post{
		PillarID:      pillar.ID,
		UserID:        user.ID,
		Type:          req.Type,
		Commodity:     nullString(req.Commodity),
		Location:      nullString(req.Location),
		ReadinessDate: readiness,
		FreeText:      req.FreeText,
		Status:        models.StatusForPillar(pillar),
		CreatedAt:     time.Now().UTC(),
	}
	if req.QuantityMin != nil {
		post.QuantityMin = sql.NullFloat64{Float64: *req.QuantityMin, Valid: true}
	}
	if req.QuantityMax != nil {
		post.QuantityMax = sql.NullFloat64{Float64: *req.QuantityMax, Valid: true}
	}

	audit := &models.PostAudit{
		UserID:    sql.NullInt64{Int64: user.ID, Valid: true},
		Change:    createdAuditPayload,
		CreatedAt: post.CreatedAt,
	}

	if err := a.posts.CreateWithAudit(ctx, post, audit); err != nil {
		a.logger.Error("post creation failed", zap.String("slug", pillar.Slug), zap.Error(err))
		abortWithError(c, NewError(http.StatusInternalServerError, "failed to create post"))
		return
	}

	a.invalidateListCache(pillar.Slug)

	a.logger.Info("post created",
		zap.Int64("post_id", post.ID),
		zap.String("pillar", pillar.Slug),
		zap.String("status", string(post.Status)))

	c.JSON(http.StatusCreated, gin.H{"post": objects.FromPost(post)})
}

// List handles GET /api/posts
func (a *PostAPI) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "posts.list")
	defer span.End()

	slug := c.Query("pillarSlug")
	cacheKey := a.listCacheKey(slug)

	if a.cache != nil {
		var cached []*objects.PostView
		if err := a.cache.GetJSON(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"posts": cached})
			return
		}
	}

	var pillarID *int64
	if slug != "" {
		pillar, err := a.pillars.GetBySlug(ctx, slug)
		if err != nil {
			a.logger.Error("pillar lookup failed", zap.String("slug", slug), zap.Error(err))
			abortWithError(c, NewError(http.StatusInternalServerError, "pillar lookup failed"))
			return
		}
		if pillar == nil {
			// Unknown slug filters to an empty result rather than 404:
			// reads have no side effects to guard.
			c.JSON(http.StatusOK, gin.H{"posts": []*objects.PostView{}})
			return
		}
		pillarID = &pillar.ID
	}

	posts, err := a.posts.List(ctx, pillarID, a.listLimit)
	if err != nil {
		a.logger.Error("post listing failed", zap.Error(err))
		abortWithError(c, NewError(http.StatusInternalServerError, "failed to list posts"))
		return
	}

	views := objects.FromPosts(posts)

	if a.cache != nil {
		if err := a.cache.SetJSON(cacheKey, views, a.cacheTTL); err != nil && err != cache.ErrCacheDisabled {
			a.logger.Warn("failed to cache post list", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"posts": views})
}

func (a *PostAPI) listCacheKey(slug string) string {
	return cache.HashKey("posts_list", slug, fmt.Sprintf("%d", a.listLimit))
}

// invalidateListCache drops the cached lists a new post would appear in.
func (a *PostAPI) invalidateListCache(slug string) {
	if a.cache == nil {
		return
	}
	for _, key := range []string{a.listCacheKey(slug), a.listCacheKey("")} {
		if err := a.cache.Delete(key); err != nil && err != cache.ErrCacheDisabled {
			a.logger.Warn("failed to invalidate post list cache", zap.Error(err))
		}
	}
}

// parseReadinessDate accepts a date-only value or a full timestamp.
func parseReadinessDate(raw string) (sql.NullTime, error) {
	if raw == "" {
		return sql.NullTime{}, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return sql.NullTime{Time: t.UTC(), Valid: true}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return sql.NullTime{Time: t.UTC(), Valid: true}, nil
	}
	return sql.NullTime{}, fmt.Errorf("must be a YYYY-MM-DD date or RFC3339 timestamp")
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
