package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/mindmend/internal/domain/auth"
)

const claimsContextKey = "mindmend.claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(claimsContextKey, claims)
}

func getClaims(c *gin.Context) (auth.Claims, bool) {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return auth.Claims{}, false
	}
	claims, ok := value.(auth.Claims)
	return claims, ok && claims.UserID > 0
}
