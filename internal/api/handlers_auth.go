package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/go-lounge-pos/internal/auth"
)

func handleLogin(authn *auth.Authenticator, tokens *auth.TokenIssuer, log *slog.Logger, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}

		id, err := authn.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, log, err)
			return
		}

		token, _, err := tokens.Issue(*id)
		if err != nil {
			respondError(c, log, err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, token, int(tokens.TTL().Seconds()), "/", "", secure, true)

		log.Info("user logged in", slog.String("user_id", id.UserID), slog.String("role", string(id.Role)))
		respondJSON(c, http.StatusOK, gin.H{"user": id, "token": token})
	}
}

func handleLogout(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, "", -1, "/", "", secure, true)
		respondJSON(c, http.StatusOK, gin.H{"success": true})
	}
}

func handleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondJSON(c, http.StatusOK, gin.H{"user": identityFrom(c)})
	}
}
