// Package objects shapes database models into API response views.
package objects

import (
	"time"

	"github.com/tradeflow/pulse/internal/models"
)

// PostView is the JSON representation of a post
type PostView struct {
	ID            int64    `json:"id"`
	PillarID      int64    `json:"pillarId"`
	UserID        int64    `json:"userId"`
	Type          string   `json:"type"`
	Commodity     *string  `json:"commodity,omitempty"`
	QuantityMin   *float64 `json:"quantityMin,omitempty"`
	QuantityMax   *float64 `json:"quantityMax,omitempty"`
	Location      *string  `json:"location,omitempty"`
	ReadinessDate *string  `json:"readinessDate,omitempty"`
	FreeText      string   `json:"freeText"`
	Status        string   `json:"status"`
	FlagCount     int      `json:"flagCount"`
	CreatedAt     string   `json:"createdAt"`
}

// FromPost converts a post model into its API view
func FromPost(post *models.Post) *PostView {
	view := &PostView{
		ID:        post.ID,
		PillarID:  post.PillarID,
		UserID:    post.UserID,
		Type:      post.Type,
		FreeText:  post.FreeText,
		Status:    string(post.Status),
		FlagCount: post.FlagCount,
		CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
	}

	if post.Commodity.Valid {
		view.Commodity = &post.Commodity.String
	}
	if post.QuantityMin.Valid {
		view.QuantityMin = &post.QuantityMin.Float64
	}
	if post.QuantityMax.Valid {
		view.QuantityMax = &post.QuantityMax.Float64
	}
	if post.Location.Valid {
		view.Location = &post.Location.String
	}
	if post.ReadinessDate.Valid {
		d := post.ReadinessDate.Time.UTC().Format("2006-01-02")
		view.ReadinessDate = &d
	}

	return view
}

// FromPosts converts a slice of post models into API views
func FromPosts(posts []*models.Post) []*PostView {
	views := make([]*PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, FromPost(post))
	}
	return views
}

// PillarView is the JSON representation of a pillar
type PillarView struct {
	ID              int64   `json:"id"`
	Slug            string  `json:"slug"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Template        string  `json:"template"`
	RequireApproval bool    `json:"requireApproval"`
}

// FromPillar converts a pillar model into its API view
func FromPillar(pillar *models.Pillar) *PillarView {
	view := &PillarView{
		ID:              pillar.ID,
		Slug:            pillar.Slug,
		Name:            pillar.Name,
		Template:        pillar.Template,
		RequireApproval: pillar.RequireApproval,
	}
	if pillar.Description.Valid {
		view.Description = &pillar.Description.String
	}
	return view
}

// FromPillars converts a slice of pillar models into API views
func FromPillars(pillars []*models.Pillar) []*PillarView {
	views := make([]*PillarView, 0, len(pillars))
	for _, pillar := range pillars {
		views = append(views, FromPillar(pillar))
	}
	return views
}
