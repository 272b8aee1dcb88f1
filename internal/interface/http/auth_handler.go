package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/mindmend/internal/domain/auth"
)

// Register creates an email/password account.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	account, err := h.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "register_failed"))
		return
	}
	c.JSON(http.StatusCreated, account)
}

// Login exchanges credentials for a session.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "login_failed"))
		return
	}
	c.JSON(http.StatusOK, session)
}

// Refresh issues a new session from a refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		abortWithError(c, fromDomainError(err, "refresh_failed"))
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me returns the signed-in account.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	account, err := h.authSvc.Account(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, fromDomainError(err, "account_failed"))
		return
	}
	c.JSON(http.StatusOK, account)
}

// Logout revokes linked provider tokens. Access tokens simply expire.
func (h *Handler) Logout(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	if err := h.authSvc.Logout(c.Request.Context(), userID); err != nil {
		abortWithError(c, fromDomainError(err, "logout_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

// GoogleLogin starts the PKCE flow and redirects to Google.
func (h *Handler) GoogleLogin(c *gin.Context) {
	state, verifier, challenge, err := auth.NewOAuthState()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "oauth_state_failed", "failed to start sign-in", err))
		return
	}
	redirect, err := h.authSvc.GoogleAuthURL(c.Request.Context(), state, challenge)
	if err != nil {
		abortWithError(c, fromDomainError(err, "oauth_failed"))
		return
	}
	setOAuthStateCookie(c, state, verifier)
	c.Redirect(http.StatusFound, redirect)
}

// GoogleCallback completes the flow. With a post-login URL configured the
// session is handed to the app in the URL fragment; otherwise it is returned
// as JSON.
func (h *Handler) GoogleCallback(c *gin.Context) {
	stored, ok := readOAuthStateCookie(c)
	clearOAuthStateCookie(c)
	if !ok || stored.State != c.Query("state") {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "oauth state mismatch", nil))
		return
	}
	if reason := c.Query("error"); reason != "" {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "oauth_denied", reason, nil))
		return
	}
	session, err := h.authSvc.GoogleCallback(c.Request.Context(), c.Query("code"), stored.CodeVerifier)
	if err != nil {
		abortWithError(c, fromDomainError(err, "oauth_failed"))
		return
	}
	if h.postLoginRedirect == "" {
		c.JSON(http.StatusOK, session)
		return
	}
	fragment := url.Values{
		"token":        {session.Token},
		"refreshToken": {session.RefreshToken},
	}
	c.Redirect(http.StatusFound, h.postLoginRedirect+"#"+fragment.Encode())
}
