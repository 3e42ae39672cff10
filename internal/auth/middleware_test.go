package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bytebrief/bytebrief/internal/models"
	"github.com/bytebrief/bytebrief/pkg/config"
)

func testTokenService() *TokenService {
	return NewTokenService(&config.AuthConfig{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})
}

func adminRouter(m *Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/admin", m.Authenticate(), m.RequireAdmin())
	group.POST("/posts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := testTokenService()
	user := &models.User{ID: 7, Email: "a@b.c", Name: "A", Role: models.RoleAdmin}

	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != 7 || claims.Role != models.RoleAdmin {
		t.Errorf("claims = %+v, want uid 7 role ADMIN", claims)
	}
}

func TestParseRejectsForgedToken(t *testing.T) {
	tokens := testTokenService()
	other := NewTokenService(&config.AuthConfig{JWTSecret: "other-secret", SessionTTL: time.Hour})

	forged, err := other.Issue(&models.User{ID: 1, Role: models.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := tokens.Parse(forged); err == nil {
		t.Error("Parse() accepted a token signed with the wrong secret")
	}
}

func TestAdminGate(t *testing.T) {
	tokens := testTokenService()
	m := NewMiddleware(tokens)
	router := adminRouter(m)

	tokenFor := func(role models.Role) string {
		token, err := tokens.Issue(&models.User{ID: 1, Email: "u@e.x", Role: role})
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		return token
	}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{
			name:       "no session",
			token:      "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			token:      "not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "plain user is rejected",
			token:      tokenFor(models.RoleUser),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "admin is allowed",
			token:      tokenFor(models.RoleAdmin),
			wantStatus: http.StatusOK,
		},
		{
			name:       "super admin is allowed",
			token:      tokenFor(models.RoleSuperAdmin),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/posts", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestSessionCookieAccepted(t *testing.T) {
	tokens := testTokenService()
	m := NewMiddleware(tokens)
	router := adminRouter(m)

	token, err := tokens.Issue(&models.User{ID: 2, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/posts", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
