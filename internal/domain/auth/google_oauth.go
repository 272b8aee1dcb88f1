package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	apperrors "github.com/yanqian/mindmend/pkg/errors"
)

const (
	googleProvider  = "google"
	googleIssuerURL = "https://accounts.google.com"
	googleRevokeURL = "https://oauth2.googleapis.com/revoke"
	// Used when a Google profile yields no usable letters.
	fallbackNickname = "Friend"
)

type googleClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
}

func (s *service) GoogleAuthURL(_ context.Context, state, codeChallenge string) (string, error) {
	cfg, err := s.googleOAuthConfig()
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	), nil
}

func (s *service) GoogleCallback(ctx context.Context, code, codeVerifier string) (Session, error) {
	cfg, err := s.googleOAuthConfig()
	if err != nil {
		return Session{}, err
	}
	if strings.TrimSpace(code) == "" || strings.TrimSpace(codeVerifier) == "" {
		return Session{}, apperrors.Wrap(CodeInvalidOAuthInput, "missing oauth code or verifier", nil)
	}
	token, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return Session{}, apperrors.Wrap(CodeOAuthExchange, "failed to exchange oauth code", err)
	}
	rawIDToken, _ := token.Extra("id_token").(string)
	if rawIDToken == "" {
		return Session{}, apperrors.Wrap(CodeOAuthExchange, "missing id_token in oauth response", nil)
	}
	claims, err := s.verifyGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		return Session{}, err
	}
	return s.signInWithGoogle(ctx, claims, token.RefreshToken)
}

// signInWithGoogle resolves the verified Google identity to an account,
// creating one on first sign-in.
func (s *service) signInWithGoogle(ctx context.Context, claims googleClaims, refreshToken string) (Session, error) {
	if !claims.EmailVerified {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "google account email not verified", nil)
	}
	if claims.Subject == "" {
		return Session{}, apperrors.Wrap(apperrors.CodeAuthError, "missing google subject", nil)
	}
	email, err := normalizeEmail(claims.Email)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}

	identity, found, err := s.repo.GetIdentity(ctx, googleProvider, claims.Subject)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to fetch identity", err)
	}
	if found {
		user, err := s.loadUser(ctx, identity.UserID)
		if err != nil {
			return Session{}, err
		}
		if refreshToken != "" {
			if err := s.storeGoogleIdentity(ctx, user.ID, claims, refreshToken); err != nil {
				return Session{}, err
			}
		}
		return s.openSession(user)
	}

	if _, exists, err := s.repo.GetByEmail(ctx, email); err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to check existing user", err)
	} else if exists {
		return Session{}, apperrors.Wrap(CodeLinkingDisabled, "account linking by email is not enabled", nil)
	}

	passwordHash, err := unusablePasswordHash()
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to generate password hash", err)
	}
	user, err := s.createUser(ctx, email, googleNickname(claims), passwordHash)
	if err != nil {
		return Session{}, err
	}
	if err := s.storeGoogleIdentity(ctx, user.ID, claims, refreshToken); err != nil {
		return Session{}, err
	}
	s.logger.Info("account created via google", "user_id", user.ID)
	return s.openSession(user)
}

func (s *service) Logout(ctx context.Context, userID int64) error {
	identity, found, err := s.repo.GetIdentityByUser(ctx, userID, googleProvider)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeAuthError, "failed to fetch identity", err)
	}
	if !found || identity.RefreshToken == "" {
		return nil
	}
	refreshToken, err := openRefreshToken(s.cfg.Google.TokenEncryptionKey, identity.RefreshToken)
	if err != nil || refreshToken == "" {
		s.logger.Warn("skip google revoke: refresh token unreadable", "user_id", userID, "error", err)
		return nil
	}
	// Revocation is best effort; the local session ends regardless.
	if err := s.revokeGoogleToken(ctx, refreshToken); err != nil {
		s.logger.Warn("failed to revoke google refresh token", "user_id", userID, "error", err)
	}
	return nil
}

func (s *service) googleOAuthConfig() (*oauth2.Config, error) {
	g := s.cfg.Google
	if !g.Configured() {
		return nil, apperrors.Wrap(CodeNotConfigured, "google sign-in is not configured", nil)
	}
	return &oauth2.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RedirectURL:  g.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}, nil
}

func (s *service) verifyGoogleIDToken(ctx context.Context, rawToken string) (googleClaims, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuerURL)
	if err != nil {
		return googleClaims{}, apperrors.Wrap(apperrors.CodeAuthError, "failed to initialize oidc provider", err)
	}
	idToken, err := provider.Verifier(&oidc.Config{ClientID: s.cfg.Google.ClientID}).Verify(ctx, rawToken)
	if err != nil {
		return googleClaims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "failed to verify id token", err)
	}
	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return googleClaims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "failed to parse id token claims", err)
	}
	if claims.Email == "" {
		return googleClaims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "missing email in id token", nil)
	}
	return claims, nil
}

func (s *service) storeGoogleIdentity(ctx context.Context, userID int64, claims googleClaims, refreshToken string) error {
	sealed, err := sealRefreshToken(s.cfg.Google.TokenEncryptionKey, refreshToken)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeAuthError, "failed to encrypt refresh token", err)
	}
	if _, err := s.repo.UpsertIdentity(ctx, Identity{
		UserID:          userID,
		Provider:        googleProvider,
		ProviderSubject: claims.Subject,
		ProviderEmail:   claims.Email,
		RefreshToken:    sealed,
	}); err != nil {
		return apperrors.Wrap(apperrors.CodeAuthError, "failed to persist identity", err)
	}
	return nil
}

func (s *service) revokeGoogleToken(ctx context.Context, refreshToken string) error {
	form := url.Values{"token": {refreshToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleRevokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("google revoke returned status %d", resp.StatusCode)
	}
	return nil
}

// googleNickname derives a letters-only nickname of at most ten letters from
// the Google profile, falling back to "Friend".
func googleNickname(claims googleClaims) string {
	for _, candidate := range []string{claims.GivenName, claims.Name, strings.Split(claims.Email, "@")[0]} {
		var b strings.Builder
		count := 0
		for _, r := range candidate {
			if count == maxNicknameLetters {
				break
			}
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				b.WriteRune(r)
				count++
			}
		}
		if nickname, err := normalizeNickname(b.String()); err == nil {
			return nickname
		}
	}
	return fallbackNickname
}

func unusablePasswordHash() (string, error) {
	raw, err := randomString(32)
	if err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func randomString(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CodeChallengeFromVerifier computes the PKCE S256 challenge for a verifier.
func CodeChallengeFromVerifier(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// NewOAuthState returns a state, code verifier and code challenge for PKCE.
func NewOAuthState() (state, codeVerifier, codeChallenge string, err error) {
	if state, err = randomString(32); err != nil {
		return "", "", "", err
	}
	if codeVerifier, err = randomString(32); err != nil {
		return "", "", "", err
	}
	return state, codeVerifier, CodeChallengeFromVerifier(codeVerifier), nil
}
