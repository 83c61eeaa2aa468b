// Package api exposes the point-of-sale service over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/go-lounge-pos/internal/auth"
	"github.com/safar/go-lounge-pos/internal/pos"
)

type Deps struct {
	Service        *pos.Service
	Authenticator  *auth.Authenticator
	Tokens         *auth.TokenIssuer
	Logger         *slog.Logger
	AllowedOrigins []string
	CookieSecure   bool
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(d.Logger), recovery(d.Logger), corsMiddleware(d.AllowedOrigins), authenticate(d.Tokens))

	log := d.Logger
	svc := d.Service

	r.GET("/health", func(c *gin.Context) {
		respondJSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	a := r.Group("/auth")
	{
		a.POST("/login", handleLogin(d.Authenticator, d.Tokens, log, d.CookieSecure))
		a.POST("/logout", handleLogout(d.CookieSecure))
		a.GET("/me", requireOp(log, auth.OpCurrentUser), handleMe())
	}

	r.GET("/menu", requireOp(log, auth.OpListMenu), handleListMenu(svc, log))
	r.POST("/menu", requireOp(log, auth.OpAddMenuItem), handleAddMenuItem(svc, log))

	r.GET("/tables", requireOp(log, auth.OpListTables), handleListTables(svc, log))
	r.POST("/tables", requireOp(log, auth.OpCreateTable), handleCreateTable(svc, log))
	r.GET("/tables/:id", requireOp(log, auth.OpGetTable), handleGetTable(svc, log))
	r.PUT("/tables/:id", requireOp(log, auth.OpUpdateTable), handleUpdateTable(svc, log))
	r.POST("/tables/:id/orders", requireOp(log, auth.OpAddOrder), handleAddOrder(svc, log))

	r.POST("/orders/:orderId/settle", requireOp(log, auth.OpSettleOrder), handleSettleOrder(svc, log))

	r.GET("/transactions", requireOp(log, auth.OpListTransactions), handleListTransactions(svc, log))
	r.POST("/transactions", requireOp(log, auth.OpRecordOutcome), handleRecordOutcome(svc, log))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}
