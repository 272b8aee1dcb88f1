package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/mindmend/internal/domain/advice"
)

type adviceResponse struct {
	Advice    *string `json:"advice"`
	Available bool    `json:"available"`
}

// Advice runs the coaching sweep without saving an entry. An exhausted
// sweep is a normal outcome and still answers 200.
func (h *Handler) Advice(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}
	var req advice.Request
	if !bindJSON(c, &req) {
		return
	}
	text, ok := h.adviceSvc.RequestAdvice(c.Request.Context(), req)
	resp := adviceResponse{Available: ok}
	if ok {
		resp.Advice = &text
	}
	c.JSON(http.StatusOK, resp)
}
