package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/mindmend/internal/domain/journal"
	"github.com/yanqian/mindmend/pkg/util"
)

// CreateLog records an urge or relapse and returns it with any advice.
func (h *Handler) CreateLog(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	var req journal.CreateRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.journalSvc.Create(c.Request.Context(), userID, req)
	if err != nil {
		abortWithError(c, fromDomainError(err, "log_failed"))
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListLogs returns the caller's history, newest first.
func (h *Handler) ListLogs(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	entries, err := h.journalSvc.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, fromDomainError(err, "fetch_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// Streak returns time since the last relapse.
func (h *Handler) Streak(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	streak, err := h.journalSvc.Streak(c.Request.Context(), userID, util.NowUTC())
	if err != nil {
		abortWithError(c, fromDomainError(err, "streak_failed"))
		return
	}
	c.JSON(http.StatusOK, streak)
}

// Insights returns the mood breakdown and weekly activity.
func (h *Handler) Insights(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	insights, err := h.journalSvc.Insights(c.Request.Context(), userID, util.NowUTC())
	if err != nil {
		abortWithError(c, fromDomainError(err, "insights_failed"))
		return
	}
	c.JSON(http.StatusOK, insights)
}

// Moods returns the caller's personalised mood list.
func (h *Handler) Moods(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	moods, err := h.journalSvc.Moods(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, fromDomainError(err, "moods_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"moods": moods})
}

// Dashboard returns the home screen bundle.
func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	dash, err := h.journalSvc.Dashboard(c.Request.Context(), userID, util.NowUTC())
	if err != nil {
		abortWithError(c, fromDomainError(err, "dashboard_failed"))
		return
	}
	c.JSON(http.StatusOK, dash)
}
