package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/go-lounge-pos/internal/apperr"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/safar/go-lounge-pos/internal/pos"
	"github.com/shopspring/decimal"
)

func handleListTransactions(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.QueryByPeriod(c.Request.Context(), c.Query("period"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusOK, summary)
	}
}

// handleRecordOutcome only books expenses; income is recognized through
// settlement.
func handleRecordOutcome(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Type        models.TransactionType `json:"type"`
			Amount      decimal.Decimal        `json:"amount"`
			Description string                 `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}
		if req.Type != "" && req.Type != models.TransactionOutcome {
			respondError(c, log, apperr.Invalid("only outcome transactions can be recorded"))
			return
		}

		tx, err := svc.RecordOutcome(c.Request.Context(), *identityFrom(c), req.Amount, req.Description)
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusCreated, gin.H{"transaction": tx})
	}
}
