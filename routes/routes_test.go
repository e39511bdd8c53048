package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom-api/config"
	"newsroom-api/middleware"
	"newsroom-api/models"
	"newsroom-api/repositories/memory"
	"newsroom-api/routes"
	"newsroom-api/services"
)

type server struct {
	t      *testing.T
	router *gin.Engine
	db     *memory.DB
	tokens *services.TokenManager
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := memory.NewDB()
	tokens := services.NewTokenManager("routes-test", time.Hour)
	svc := routes.Services{
		Auth:      services.NewAuthService(db.Users(), tokens),
		Posts:     services.NewPostService(db.Posts(), db.Comments(), db.Reactions(), nil),
		Comments:  services.NewCommentService(db.Comments(), db.Posts(), db.Reactions()),
		Reactions: services.NewReactionService(db.Reactions(), db.Posts(), db.Comments()),
		Contents:  services.NewContentService(db.Contents(), db.Posts(), db.Photos()),
		Taxonomy:  services.NewTaxonomyService(db.Categories(), db.Keywords(), nil),
		Photos:    services.NewPhotoService(db.Photos()),
		Feedback:  services.NewFeedbackService(db.Feedback(), db.Posts()),
		Stories:   services.NewStoryService(db.Stories(), db.Posts()),
		Users:     services.NewUserService(db.Users()),
		Videos:    services.NewVideoService(db.Videos()),
		Galleries: services.NewGalleryService(db.Galleries(), db.Photos()),
		Site:      services.NewSiteService(db.Settings(), db.SocialMedia(), db.Contacts(), db.Opinions()),
	}
	cfg := &config.Config{RateLimitPerMinute: 6000, RateLimitBurst: 1000}

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })

	router := gin.New()
	router.Use(routes.SetupCORS([]string{"https://news.example.com"}), middleware.ErrorHandler())
	routes.SetupRoutes(router, svc, cfg, stop)

	return &server{t: t, router: router, db: db, tokens: tokens}
}

// user stores an account with role and returns a bearer token for it.
func (s *server) user(role models.Role, email string) string {
	s.t.Helper()
	u := &models.User{Email: email, Role: role, IsActive: true, FirstName: role.String()}
	require.NoError(s.t, s.db.Users().Create(context.Background(), u))
	token, _, err := s.tokens.Issue(u)
	require.NoError(s.t, err)
	return token
}

func (s *server) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestPing(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestAuthFlow(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/v1/public/auth/register", "", gin.H{"email": "reader@example.com", "password": "Secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token := decode(t, w)["token"].(string)
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(http.MethodPost, "/api/v1/public/auth/register", "", gin.H{"email": "READER@example.com", "password": "Secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/v1/public/auth/register", "", gin.H{"email": "weak@example.com", "password": "aaaaaa"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["validation_errors"], "password")

	w = s.do(http.MethodPost, "/api/v1/public/auth/login", "", gin.H{"email": "reader@example.com", "password": "Wrong11"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/public/auth/login", "", gin.H{"email": "reader@example.com", "password": "Secret1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/public/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reader@example.com", decode(t, w)["email"])

	w = s.do(http.MethodGet, "/api/v1/public/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/v1/private/posts", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEditorialFlow(t *testing.T) {
	s := newServer(t)
	reporter := s.user(models.RoleReporter, "reporter@example.com")
	editor := s.user(models.RoleEditor, "editor@example.com")
	reader := s.user(models.RoleUser, "reader@example.com")

	w := s.do(http.MethodPost, "/api/v1/private/posts", reporter, gin.H{"title": "Council Approves Bridge", "is_approved": true})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["validation_errors"], "is_approved")

	w = s.do(http.MethodPost, "/api/v1/private/posts", reporter, gin.H{"title": "Council Approves Bridge"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	post := decode(t, w)
	assert.Equal(t, "council-approves-bridge", post["slug"])
	assert.Equal(t, false, post["is_approved"])
	path := fmt.Sprintf("/api/v1/public/posts/%d", int(post["id"].(float64)))
	private := fmt.Sprintf("/api/v1/private/posts/%d", int(post["id"].(float64)))

	w = s.do(http.MethodGet, path, reader, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPatch, private+"/update-non-approved", reporter, gin.H{"views": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPatch, private+"/update-approved", reporter, gin.H{"is_approved": true})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, private+"/update-approved", editor, gin.H{"is_approved": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPatch, private+"/update-non-approved", reporter, gin.H{"title": "Changed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/public/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	feed := decode(t, w)
	assert.Equal(t, float64(1), feed["total"])

	w = s.do(http.MethodGet, path, reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode(t, w)
	assert.Equal(t, float64(2), detail["views"])
	assert.Equal(t, false, detail["is_liked_by_auth_user"])

	w = s.do(http.MethodPatch, path+"/like", reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	counts := decode(t, w)
	assert.Equal(t, float64(1), counts["like_count"])
	assert.Equal(t, true, counts["is_liked_by_auth_user"])

	w = s.do(http.MethodPatch, path+"/dislike", reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	counts = decode(t, w)
	assert.Equal(t, float64(0), counts["like_count"])
	assert.Equal(t, float64(1), counts["dislike_count"])

	w = s.do(http.MethodPatch, path+"/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, path+"/save", reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["is_saved_by_auth_user"])

	w = s.do(http.MethodGet, "/api/v1/public/profile/saved-posts", reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = s.do(http.MethodDelete, private, editor, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommentFlow(t *testing.T) {
	s := newServer(t)
	admin := s.user(models.RoleAdmin, "admin@example.com")
	reader := s.user(models.RoleUser, "reader@example.com")

	w := s.do(http.MethodPost, "/api/v1/private/posts", admin, gin.H{"title": "Storm Warning"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := uint(decode(t, w)["id"].(float64))

	w = s.do(http.MethodPost, "/api/v1/public/comments", reader, gin.H{"post": postID, "replied_comment": 1, "comment": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/public/comments", reader, gin.H{"post": postID, "comment": "Stay safe"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	commentID := uint(decode(t, w)["id"].(float64))

	thread := fmt.Sprintf("/api/v1/public/posts/%d/comments", postID)
	w = s.do(http.MethodGet, thread, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Empty(t, body["comments"])
	assert.Equal(t, float64(1), body["comment_count"])

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/private/comments/%d/approve", commentID), admin, gin.H{"is_approved": true})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/public/comments/%d/like", commentID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, thread, reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := decode(t, w)["comments"].([]interface{})
	require.Len(t, comments, 1)
	node := comments[0].(map[string]interface{})
	assert.Equal(t, "Stay safe", node["comment"])
	assert.Equal(t, float64(1), node["like_count"])
	assert.Equal(t, false, node["is_liked_by_auth_user"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/private/reactions/comment/%d", commentID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["likes"], 1)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/public/comments/%d", commentID), admin, gin.H{"comment": "edited"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/public/comments/%d", commentID), reader, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTaxonomyAndOptions(t *testing.T) {
	s := newServer(t)
	editor := s.user(models.RoleEditor, "editor@example.com")

	w := s.do(http.MethodPost, "/api/v1/private/categories", editor, gin.H{"title": "World"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/v1/private/categories", editor, gin.H{"title": "Orphan", "parent": 99})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/public/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"children":[]`)

	w = s.do(http.MethodGet, "/api/v1/private/options", editor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "NEWS_STATUS")

	w = s.do(http.MethodGet, "/api/v1/private/categories/abc", editor, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/public/posts", nil)
	req.Header.Set("Origin", "https://news.example.com")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://news.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSiteEndpoints(t *testing.T) {
	s := newServer(t)
	admin := s.user(models.RoleAdmin, "admin@example.com")
	editor := s.user(models.RoleEditor, "editor@example.com")

	w := s.do(http.MethodGet, "/api/v1/public/settings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", decode(t, w)["copyright"])

	w = s.do(http.MethodPatch, "/api/v1/private/settings", editor, gin.H{"copyright": "© Newsroom"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, "/api/v1/private/settings", admin, gin.H{"copyright": "© Newsroom", "search_placeholder": "Search"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/public/settings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "© Newsroom", decode(t, w)["copyright"])

	w = s.do(http.MethodPost, "/api/v1/private/social-media", admin, gin.H{"title": "Twitter", "link": "https://twitter.com/newsroom", "position": "footer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/v1/private/social-media", admin, gin.H{"title": "Bad", "link": "https://example.com", "position": "sidebar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/public/settings/social-media?position=footer", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "twitter.com/newsroom")
	w = s.do(http.MethodGet, "/api/v1/public/settings/social-media?position=header", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestContactAndOpinionForms(t *testing.T) {
	s := newServer(t)
	admin := s.user(models.RoleAdmin, "admin@example.com")
	reporter := s.user(models.RoleReporter, "reporter@example.com")

	w := s.do(http.MethodPost, "/api/v1/public/contact-form", "", gin.H{
		"first_name": "Leyla", "last_name": "Aliyeva", "email": "leyla@example.com",
		"message": "<b>Hello</b> newsroom",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Hello newsroom", decode(t, w)["message"])

	w = s.do(http.MethodPost, "/api/v1/public/contact-form", "", gin.H{
		"first_name": "R2D2", "last_name": "Unit", "email": "r2@example.com", "message": "beep",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "first_name")

	w = s.do(http.MethodPost, "/api/v1/public/opinion", "", gin.H{
		"first_name": "Leyla", "last_name": "Aliyeva", "email": "leyla@example.com", "message": "Nice site",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/private/contact-forms", reporter, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/private/contact-forms", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = s.do(http.MethodGet, "/api/v1/private/opinions", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])
}

func TestMediaEndpoints(t *testing.T) {
	s := newServer(t)
	reporter := s.user(models.RoleReporter, "reporter@example.com")

	w := s.do(http.MethodPost, "/api/v1/private/videos", reporter, gin.H{"title": "Interview", "url": "https://video.example.com/1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	videoID := int(decode(t, w)["id"].(float64))

	w = s.do(http.MethodGet, "/api/v1/public/videos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["total"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/public/videos/%d", videoID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/private/photos", reporter, gin.H{"title": "Cover", "url": "https://cdn.example.com/a.jpg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	photoID := int(decode(t, w)["id"].(float64))

	w = s.do(http.MethodGet, "/api/v1/public/photos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cdn.example.com/a.jpg")

	w = s.do(http.MethodPost, "/api/v1/private/gallery", reporter, gin.H{"title": "Spring", "photo": photoID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "cdn.example.com/a.jpg")

	w = s.do(http.MethodGet, "/api/v1/private/gallery", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
