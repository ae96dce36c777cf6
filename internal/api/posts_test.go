package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tradeflow/pulse/internal/models"
)

const identityHeader = "x-test-user"

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

type fakePillarStore struct {
	pillars map[string]*models.Pillar
}

func (f *fakePillarStore) GetBySlug(_ context.Context, slug string) (*models.Pillar, error) {
	return f.pillars[slug], nil
}

func (f *fakePillarStore) List(_ context.Context) ([]*models.Pillar, error) {
	var out []*models.Pillar
	for _, p := range f.pillars {
		out = append(out, p)
	}
	return out, nil
}

type fakePostStore struct {
	created    []*models.Post
	audits     []*models.PostAudit
	listResult []*models.Post

	lastListPillarID *int64
	lastListLimit    int
}

func (f *fakePostStore) CreateWithAudit(_ context.Context, post *models.Post, audit *models.PostAudit) error {
	post.ID = int64(len(f.created) + 1)
	audit.PostID = post.ID
	f.created = append(f.created, post)
	f.audits = append(f.audits, audit)
	return nil
}

func (f *fakePostStore) List(_ context.Context, pillarID *int64, limit int) ([]*models.Post, error) {
	f.lastListPillarID = pillarID
	f.lastListLimit = limit
	return f.listResult, nil
}

func newTestEngine(users *fakeUserStore, pillars *fakePillarStore, posts *fakePostStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		abortWithError(c, NewError(http.StatusMethodNotAllowed, "method not allowed"))
	})

	logger := zap.NewNop()
	postAPI := NewPostAPI(pillars, posts, nil, 100, 30*time.Second, logger)
	pillarAPI := NewPillarAPI(pillars, logger)

	apiGroup := engine.Group("/api")
	apiGroup.GET("/posts", postAPI.List)
	apiGroup.POST("/posts", RequireIdentity(identityHeader, users), postAPI.Create)
	apiGroup.GET("/pillars", pillarAPI.List)

	return engine
}

func defaultFixtures() (*fakeUserStore, *fakePillarStore, *fakePostStore) {
	users := &fakeUserStore{users: map[string]*models.User{
		"demo@tradeflow.dev": {ID: 7, Email: "demo@tradeflow.dev", Role: models.RoleMember},
	}}
	pillars := &fakePillarStore{pillars: map[string]*models.Pillar{
		"grain-trade":  {ID: 1, Slug: "grain-trade", Name: "Grain Trade", RequireApproval: true},
		"market-pulse": {ID: 2, Slug: "market-pulse", Name: "Market Pulse", RequireApproval: false},
	}}
	posts := &fakePostStore{}
	return users, pillars, posts
}

func postJSON(engine *gin.Engine, body map[string]interface{}, withIdentity bool) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if withIdentity {
		req.Header.Set(identityHeader, "demo@tradeflow.dev")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func validBody(slug string) map[string]interface{} {
	return map[string]interface{}{
		"pillarSlug": slug,
		"type":       "TRADE_INTEREST",
		"commodity":  "Hard red wheat",
		"freeText":   "Looking for buyers, FOB terms preferred.",
	}
}

func TestCreatePost_StatusDerivation(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		expected models.PostStatus
	}{
		{
			name:     "approval required yields pending",
			slug:     "grain-trade",
			expected: models.PostStatusPending,
		},
		{
			name:     "no approval yields approved",
			slug:     "market-pulse",
			expected: models.PostStatusApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, pillars, posts := defaultFixtures()
			engine := newTestEngine(users, pillars, posts)

			w := postJSON(engine, validBody(tt.slug), true)

			if w.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
			}

			var resp struct {
				Post struct {
					Status string `json:"status"`
				} `json:"post"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response JSON: %v", err)
			}
			if resp.Post.Status != string(tt.expected) {
				t.Errorf("expected status %s, got %s", tt.expected, resp.Post.Status)
			}

			if len(posts.created) != 1 {
				t.Fatalf("expected exactly one post created, got %d", len(posts.created))
			}
			if posts.created[0].Status != tt.expected {
				t.Errorf("stored status = %s, want %s", posts.created[0].Status, tt.expected)
			}
		})
	}
}

func TestCreatePost_AuditRow(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	engine := newTestEngine(users, pillars, posts)

	w := postJSON(engine, validBody("grain-trade"), true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if len(posts.audits) != 1 {
		t.Fatalf("expected exactly one audit row, got %d", len(posts.audits))
	}
	audit := posts.audits[0]
	if audit.PostID != posts.created[0].ID {
		t.Errorf("audit references post %d, want %d", audit.PostID, posts.created[0].ID)
	}
	if !audit.UserID.Valid || audit.UserID.Int64 != 7 {
		t.Errorf("audit user = %+v, want 7", audit.UserID)
	}

	var change map[string]interface{}
	if err := json.Unmarshal(audit.Change, &change); err != nil {
		t.Fatalf("audit change is not JSON: %v", err)
	}
	if created, ok := change["created"].(bool); !ok || !created {
		t.Errorf("audit change = %s, want {\"created\":true}", audit.Change)
	}
}

func TestCreatePost_ShortFreeText(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	engine := newTestEngine(users, pillars, posts)

	body := validBody("grain-trade")
	body["freeText"] = "hey"

	w := postJSON(engine, body, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp Error
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Issues) == 0 {
		t.Error("expected structured validation issues")
	}

	if len(posts.created) != 0 || len(posts.audits) != 0 {
		t.Error("validation failure must not create rows")
	}
}

func TestCreatePost_UnknownPillar(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	engine := newTestEngine(users, pillars, posts)

	w := postJSON(engine, validBody("no-such-pillar"), true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if len(posts.created) != 0 || len(posts.audits) != 0 {
		t.Error("unknown pillar must not create rows")
	}
}

func TestCreatePost_MissingIdentity(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	engine := newTestEngine(users, pillars, posts)

	w := postJSON(engine, validBody("grain-trade"), false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
	if len(posts.created) != 0 || len(posts.audits) != 0 {
		t.Error("unauthenticated request must not create rows")
	}
}

func TestCreatePost_UnknownUser(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	engine := newTestEngine(users, pillars, posts)

	raw, _ := json.Marshal(validBody("grain-trade"))
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(identityHeader, "stranger@example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
	if len(posts.created) != 0 {
		t.Error("unknown user must not create rows")
	}
}

func TestCreatePost_BadReadinessDate(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	engine := newTestEngine(users, pillars, posts)

	body := validBody("grain-trade")
	body["readinessDate"] = "next tuesday"

	w := postJSON(engine, body, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if len(posts.created) != 0 {
		t.Error("invalid date must not create rows")
	}
}

func TestListPosts_FilterAndLimit(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	now := time.Now().UTC()
	posts.listResult = []*models.Post{
		{ID: 3, PillarID: 1, UserID: 7, FreeText: "newest", Status: models.PostStatusPending, CreatedAt: now},
		{ID: 2, PillarID: 1, UserID: 7, FreeText: "older", Status: models.PostStatusPending, CreatedAt: now.Add(-time.Hour)},
	}
	engine := newTestEngine(users, pillars, posts)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?pillarSlug=grain-trade", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if posts.lastListPillarID == nil || *posts.lastListPillarID != 1 {
		t.Errorf("expected list filtered by pillar 1, got %v", posts.lastListPillarID)
	}
	if posts.lastListLimit != 100 {
		t.Errorf("expected limit 100, got %d", posts.lastListLimit)
	}

	var resp struct {
		Posts []struct {
			ID int64 `json:"id"`
		} `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Posts) != 2 || resp.Posts[0].ID != 3 || resp.Posts[1].ID != 2 {
		t.Errorf("expected posts [3 2] newest first, got %+v", resp.Posts)
	}
}

func TestListPosts_UnknownSlugIsEmpty(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	posts.listResult = []*models.Post{{ID: 1, PillarID: 1, UserID: 7}}
	engine := newTestEngine(users, pillars, posts)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?pillarSlug=no-such-pillar", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Posts []json.RawMessage `json:"posts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Posts) != 0 {
		t.Errorf("expected empty posts for unknown slug, got %d", len(resp.Posts))
	}
}

func TestPostsMethodNotAllowed(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	engine := newTestEngine(users, pillars, posts)

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		req := httptest.NewRequest(method, "/api/posts", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s /api/posts: expected 405, got %d", method, w.Code)
		}
	}
}

func TestListPillars(t *testing.T) {
	users, pillars, posts := defaultFixtures()
	engine := newTestEngine(users, pillars, posts)

	req := httptest.NewRequest(http.MethodGet, "/api/pillars", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Pillars []struct {
			Slug string `json:"slug"`
		} `json:"pillars"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Pillars) != 2 {
		t.Errorf("expected 2 pillars, got %d", len(resp.Pillars))
	}
}
