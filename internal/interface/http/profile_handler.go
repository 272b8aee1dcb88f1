package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/mindmend/internal/domain/profile"
)

// SyncProfile creates the caller's profile on first sign-in.
func (h *Handler) SyncProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req profile.SyncRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.profileSvc.Sync(c.Request.Context(), userID, req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "profile_failed"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfile returns the caller's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	p, err := h.profileSvc.Get(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, fromDomainError(err, "profile_failed"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// UploadAvatar stores the raw request body as the caller's avatar.
func (h *Handler) UploadAvatar(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	body := c.Request.Body
	if h.avatarMaxBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.avatarMaxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, NewHTTPError(http.StatusRequestEntityTooLarge, "avatar_too_large", "avatar exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes", err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read avatar", err))
		return
	}
	p, err := h.profileSvc.UploadAvatar(c.Request.Context(), userID, data, c.ContentType())
	if err != nil {
		abortWithError(c, fromDomainError(err, "avatar_failed"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetAvatar streams the caller's avatar.
func (h *Handler) GetAvatar(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	body, meta, err := h.profileSvc.Avatar(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, fromDomainError(err, "avatar_failed"))
		return
	}
	defer body.Close()
	headers := map[string]string{"Cache-Control": "private, max-age=300"}
	if meta.ETag != "" {
		headers["ETag"] = strconv.Quote(meta.ETag)
	}
	c.DataFromReader(http.StatusOK, meta.Size, meta.ContentType, body, headers)
}
