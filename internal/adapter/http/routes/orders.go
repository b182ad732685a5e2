package routes

import (
	"orderflow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
	PathLines  = "/lines"
)

func addOrderRoutes(rg *gin.RouterGroup, h *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/lines", h.AddLine)
		orders.GET("/:id/lines", h.ListLines)
		orders.GET("/:id/items", h.DisplayItems)

		orders.POST("/:id/submit", h.Submit)
		orders.POST("/:id/inform-updates", h.InformUpdates)
		orders.POST("/:id/send-to-checker", h.SendToChecker)
		orders.POST("/:id/assign-biller", h.AssignBiller)
		orders.POST("/:id/dispatch", h.Dispatch)
		orders.POST("/:id/check-report", h.SubmitCheckedReport)
		orders.POST("/:id/cancel", h.Cancel)
		orders.POST("/:id/reject", h.Reject)

		orders.POST("/:id/claims/:role", h.Claim)
		orders.DELETE("/:id/claims/:role", h.ReleaseClaim)
	}
}

func addLineRoutes(rg *gin.RouterGroup, h *handlers.LineHandler) {
	lines := rg.Group(PathLines + "/:id")
	{
		lines.POST("/in-stock", h.MarkInStock)
		lines.POST("/shortage", h.ReportShortage)
		lines.POST("/availability", h.RecordAvailability)
		lines.POST("/reissue", h.ReissueShortage)
		lines.POST("/claim", h.ClaimDecision)
		lines.POST("/accept", h.AcceptAvailability)
		lines.POST("/reject", h.RejectAvailability)
		lines.POST("/not-available", h.MarkNotAvailable)
		lines.POST("/cancel", h.CancelLine)
		lines.POST("/checked", h.SetChecked)
		lines.POST("/quantity", h.EditCheckedQuantity)
		lines.POST("/images", h.AttachImage)
		lines.POST("/suggestions", h.AddSuggestion)
		lines.DELETE("/suggestions/:sid", h.DiscardSuggestion)
		lines.POST("/suggestions/:sid/accept", h.AcceptSuggestion)
	}
}
