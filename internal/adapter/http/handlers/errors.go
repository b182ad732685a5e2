package handlers

import (
	"errors"
	"net/http"

	"orderflow/internal/domain/entities"
	"orderflow/internal/usecase"
	"orderflow/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

func mapError(err error) *pkg.AppError {
	var (
		guard    *entities.GuardViolation
		claimed  *entities.AlreadyClaimed
		limit    *entities.LimitExceeded
		notFound *entities.NotFound
	)
	switch {
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrBillPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidInput):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrUnauthorized):
		return pkg.NewDomainError("FORBIDDEN", "Actor not authorized for this action", err, http.StatusForbidden)
	case errors.Is(err, entities.ErrOrderCancelled):
		return pkg.NewDomainError("ORDER_CANCELLED", "Order is cancelled", err, http.StatusConflict)
	case errors.As(err, &notFound):
		return pkg.NewDomainError("NOT_FOUND", notFound.Error(), err, http.StatusNotFound)
	case errors.As(err, &claimed):
		return pkg.NewDomainError("ALREADY_CLAIMED", claimed.Error(), err, http.StatusConflict)
	case errors.As(err, &guard):
		return pkg.NewDomainError("TRANSITION_NOT_ALLOWED", guard.Reason, err, http.StatusConflict)
	case errors.As(err, &limit):
		return pkg.NewDomainError("LIMIT_EXCEEDED", limit.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrConcurrentUpdate):
		return pkg.NewDomainError("CONCURRENT_UPDATE", "Order changed concurrently, retry", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, err error) {
	appErr := mapError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
