package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/mindmend/internal/domain/advice"
	"github.com/yanqian/mindmend/internal/domain/auth"
	"github.com/yanqian/mindmend/internal/domain/journal"
	"github.com/yanqian/mindmend/internal/domain/profile"
	"github.com/yanqian/mindmend/internal/domain/support"
	apperrors "github.com/yanqian/mindmend/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc           auth.Service
	profileSvc        profile.Service
	journalSvc        journal.Service
	adviceSvc         advice.Requester
	supportSvc        support.Service
	postLoginRedirect string
	avatarMaxBytes    int64
	logger            *slog.Logger
}

// HandlerOptions carries transport settings that do not belong to a domain.
type HandlerOptions struct {
	PostLoginRedirectURL string
	AvatarMaxBytes       int64
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	authSvc auth.Service,
	profileSvc profile.Service,
	journalSvc journal.Service,
	adviceSvc advice.Requester,
	supportSvc support.Service,
	opts HandlerOptions,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:           authSvc,
		profileSvc:        profileSvc,
		journalSvc:        journalSvc,
		adviceSvc:         adviceSvc,
		supportSvc:        supportSvc,
		postLoginRedirect: opts.PostLoginRedirectURL,
		avatarMaxBytes:    opts.AvatarMaxBytes,
		logger:            logger.With("component", "http.handler"),
	}
}

// domainStatus maps domain error codes to a status and public code.
var domainStatus = map[string]struct {
	status int
	code   string
}{
	apperrors.CodeInvalidInput:       {http.StatusBadRequest, "invalid_request"},
	auth.CodeInvalidOAuthInput:       {http.StatusBadRequest, "invalid_request"},
	apperrors.CodeNotFound:           {http.StatusNotFound, "not_found"},
	apperrors.CodeInvalidToken:       {http.StatusUnauthorized, "invalid_token"},
	apperrors.CodeInvalidCredentials: {http.StatusUnauthorized, "invalid_credentials"},
	auth.CodeEmailExists:             {http.StatusConflict, "email_exists"},
	auth.CodeLinkingDisabled:         {http.StatusConflict, "account_linking_disabled"},
	auth.CodeNotConfigured:           {http.StatusServiceUnavailable, "auth_not_configured"},
	auth.CodeOAuthExchange:           {http.StatusBadGateway, "oauth_exchange_failed"},
	apperrors.CodeStorageError:       {http.StatusBadGateway, "storage_error"},
}

// fromDomainError converts a service error; unknown codes become a 500 with
// the fallback code.
func fromDomainError(err error, fallback string) *HTTPError {
	if mapped, ok := domainStatus[apperrors.Code(err)]; ok {
		return NewHTTPError(mapped.status, mapped.code, errMessage(err), err)
	}
	return NewHTTPError(http.StatusInternalServerError, fallback, errMessage(err), err)
}

func (h *Handler) currentUser(c *gin.Context) (int64, bool) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return 0, false
	}
	return claims.UserID, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return false
	}
	return true
}
