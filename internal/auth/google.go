package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/bytebrief/bytebrief/internal/db"
	"github.com/bytebrief/bytebrief/internal/models"
	"github.com/bytebrief/bytebrief/pkg/config"
	"github.com/bytebrief/bytebrief/pkg/logging"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOAuth runs the Google sign-in flow and maps Google identities
// onto local users.
type GoogleOAuth struct {
	oauth  *oauth2.Config
	users  *db.UserRepository
	logger *zap.Logger
}

// NewGoogleOAuth creates the Google OAuth collaborator
func NewGoogleOAuth(cfg *config.AuthConfig, baseURL string, users *db.UserRepository) *GoogleOAuth {
	return &GoogleOAuth{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		users:  users,
		logger: logging.WithComponent("auth"),
	}
}

// LoginURL returns the Google consent page URL bound to a state nonce
func (g *GoogleOAuth) LoginURL(state string) string {
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Exchange trades the callback code for the Google profile and upserts
// the local user. New users start with the USER role; promotion to an
// admin role is a manual operation.
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (*models.User, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	client := g.oauth.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding user info: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}

	user, err := g.users.UpsertGoogle(ctx, info.ID, info.Email, info.Name, info.Picture)
	if err != nil {
		return nil, fmt.Errorf("upserting user: %w", err)
	}

	g.logger.Info("user signed in",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}
