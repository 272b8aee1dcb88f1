package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Quote returns a random daily quote.
func (h *Handler) Quote(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quote": h.supportSvc.DailyQuote()})
}

// Crisis returns the SOS toolkit.
func (h *Handler) Crisis(c *gin.Context) {
	c.JSON(http.StatusOK, h.supportSvc.Crisis())
}
