package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "mindmend_oauth"
	oauthStateMaxAge = 300
	oauthCookiePath  = "/api/v1/auth/google"
)

type oauthState struct {
	State        string `json:"state"`
	CodeVerifier string `json:"verifier"`
}

func setOAuthStateCookie(c *gin.Context, state, codeVerifier string) {
	data, _ := json.Marshal(oauthState{State: state, CodeVerifier: codeVerifier})
	writeOAuthCookie(c, base64.RawURLEncoding.EncodeToString(data), oauthStateMaxAge)
}

func clearOAuthStateCookie(c *gin.Context) {
	writeOAuthCookie(c, "", -1)
}

func writeOAuthCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, value, maxAge, oauthCookiePath, "", c.Request.TLS != nil, true)
}

func readOAuthStateCookie(c *gin.Context) (oauthState, bool) {
	value, err := c.Cookie(oauthStateCookie)
	if err != nil || value == "" {
		return oauthState{}, false
	}
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return oauthState{}, false
	}
	var payload oauthState
	if err := json.Unmarshal(data, &payload); err != nil {
		return oauthState{}, false
	}
	return payload, payload.State != "" && payload.CodeVerifier != ""
}
