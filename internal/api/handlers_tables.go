package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/go-lounge-pos/internal/models"
	"github.com/safar/go-lounge-pos/internal/pos"
	"github.com/shopspring/decimal"
)

func handleListMenu(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListMenu(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusOK, gin.H{"menu": items})
	}
}

func handleAddMenuItem(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			NameEn   string          `json:"nameEn"`
			NameAr   string          `json:"nameAr"`
			Price    decimal.Decimal `json:"price"`
			Category models.Category `json:"category"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}

		item, err := svc.AddMenuItem(c.Request.Context(), pos.NewMenuItem{
			NameEn:   req.NameEn,
			NameAr:   req.NameAr,
			Price:    req.Price,
			Category: req.Category,
		})
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusCreated, gin.H{"item": item})
	}
}

func handleListTables(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables, err := svc.ListTables(c.Request.Context())
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusOK, gin.H{"tables": tables})
	}
}

func handleCreateTable(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Label string `json:"label"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}

		table, err := svc.CreateTable(c.Request.Context(), req.Label)
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusCreated, gin.H{"table": table})
	}
}

func handleGetTable(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, err := svc.GetTable(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusOK, gin.H{"table": table})
	}
}

func handleUpdateTable(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Label  *string `json:"label"`
			Reopen bool    `json:"reopen"`
			Settle bool    `json:"settle"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}

		table, err := svc.UpdateTable(c.Request.Context(), *identityFrom(c), c.Param("id"), pos.TableUpdate{
			Label:  req.Label,
			Reopen: req.Reopen,
			Settle: req.Settle,
		})
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusOK, gin.H{"table": table})
	}
}

func handleAddOrder(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			MenuItemID string `json:"menuItemId"`
			Quantity   int    `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "Invalid request body")
			return
		}

		order, table, err := svc.AddOrder(c.Request.Context(), c.Param("id"), req.MenuItemID, req.Quantity)
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusCreated, gin.H{"order": order, "table": table})
	}
}

func handleSettleOrder(svc *pos.Service, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, err := svc.SettleItem(c.Request.Context(), *identityFrom(c), c.Param("orderId"))
		if err != nil {
			respondError(c, log, err)
			return
		}
		respondJSON(c, http.StatusOK, gin.H{"table": table})
	}
}
