package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bytebrief/bytebrief/internal/auth"
	"github.com/bytebrief/bytebrief/pkg/logging"
)

// stateCookie holds the OAuth state nonce between login and callback
const stateCookie = "bytebrief_oauth_state"

// AuthAPI serves the Google sign-in flow and session endpoints
type AuthAPI struct {
	google     *auth.GoogleOAuth
	tokens     *auth.TokenService
	sessionTTL time.Duration
	secure     bool
	logger     *zap.Logger
}

// NewAuthAPI creates the auth handlers. secure controls the Secure flag
// on session cookies and should be true behind TLS.
func NewAuthAPI(google *auth.GoogleOAuth, tokens *auth.TokenService, sessionTTL time.Duration, secure bool) *AuthAPI {
	return &AuthAPI{
		google:     google,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		secure:     secure,
		logger:     logging.WithComponent("auth-api"),
	}
}

// Login handles GET /auth/google/login: issues a state nonce and
// redirects to the Google consent page.
func (a *AuthAPI) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", a.secure, true)
	c.Redirect(http.StatusTemporaryRedirect, a.google.LoginURL(state))
}

// Callback handles GET /auth/google/callback: verifies the state nonce,
// exchanges the code and establishes the session cookie.
func (a *AuthAPI) Callback(c *gin.Context) {
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "oauth state mismatch"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", a.secure, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	user, err := a.google.Exchange(c.Request.Context(), code)
	if err != nil {
		a.logger.Warn("google exchange failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in failed"})
		return
	}

	token, err := a.tokens.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, token, int(a.sessionTTL.Seconds()), "/", "", a.secure, true)
	c.Redirect(http.StatusTemporaryRedirect, "/")
}

// Me handles GET /auth/me behind Authenticate
func (a *AuthAPI) Me(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    claims.UserID,
			"email": claims.Email,
			"name":  claims.Name,
			"role":  claims.Role,
		},
	})
}

// Logout handles POST /auth/logout: clears the session cookie
func (a *AuthAPI) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", a.secure, true)
	c.JSON(http.StatusOK, gin.H{"loggedOut": true})
}
