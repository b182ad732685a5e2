package routes

import (
	"orderflow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathBill     = "/orders/:id/bill"
	PathPayments = "/payments"
)

func addBillingRoutes(rg *gin.RouterGroup, billingHandler *handlers.BillingHandler, paymentHandler *handlers.BillPaymentHandler) {
	bill := rg.Group(PathBill)
	{
		bill.GET("", billingHandler.GetBill)
		bill.POST("/running-total", billingHandler.RunningTotal)
		bill.POST("/issue", billingHandler.IssueBill)
	}

	// Settlement is keyed by order; single payments by their own id.
	rg.POST(PathOrders+"/:id"+PathPayments, paymentHandler.CollectPayment)
	rg.GET(PathOrders+"/:id"+PathPayments, paymentHandler.ListPayments)
	rg.GET(PathPayments+"/:id", paymentHandler.GetPayment)
}
