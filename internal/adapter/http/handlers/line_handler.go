package handlers

import (
	"context"
	"net/http"

	request "orderflow/internal/adapter/http/dto/request"
	response "orderflow/internal/adapter/http/dto/response"
	"orderflow/internal/domain/entities"
	"orderflow/internal/usecase"
	"orderflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// LineHandler handles stock resolution, supplier round trips, substitutes and
// checker actions on single lines.
type LineHandler struct {
	usecase usecase.ILineUseCase
}

func NewLineHandler(uc usecase.ILineUseCase) *LineHandler {
	return &LineHandler{usecase: uc}
}

type lineStep func(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error)

func (h *LineHandler) run(c *gin.Context, step lineStep) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	l, err := step(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		logger.Warnf(c.Request.Context(), "[line][handler] %s failed line_id=%s err=%v", c.FullPath(), c.Param("id"), err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromLine(l))
}

// bindLine binds the JSON body and resolves the actor, writing the error response on failure.
func bindLine(c *gin.Context, payload any) (entities.Actor, bool) {
	actor, ok := requireActor(c)
	if !ok {
		return entities.Actor{}, false
	}
	if err := c.ShouldBindJSON(payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return entities.Actor{}, false
	}
	return actor, true
}

// MarkInStock godoc
// @Summary  Storekeeper marks a line in stock
// @Tags     lines
// @Produce  json
// @Param    id path string true "line id"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/in-stock [post]
func (h *LineHandler) MarkInStock(c *gin.Context) {
	h.run(c, h.usecase.MarkInStock)
}

// ReportShortage godoc
// @Summary  Storekeeper reports a shortage and queries the supplier
// @Tags     lines
// @Accept   json
// @Produce  json
// @Param    id   path string true "line id"
// @Param    body body request.ShortageRequest true "shortage"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/shortage [post]
func (h *LineHandler) ReportShortage(c *gin.Context) {
	var payload request.ShortageRequest
	actor, ok := bindLine(c, &payload)
	if !ok {
		return
	}
	h.run(c, func(ctx context.Context, _ entities.Actor, lineID string) (entities.LineItem, error) {
		return h.usecase.ReportShortage(ctx, actor, lineID, payload.AvailableQty, payload.Note)
	})
}

// RecordAvailability godoc
// @Summary  Record a supplier answer by hand
// @Tags     lines
// @Accept   json
// @Produce  json
// @Param    id   path string true "line id"
// @Param    body body request.AvailabilityRequest true "supplier answer"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/availability [post]
func (h *LineHandler) RecordAvailability(c *gin.Context) {
	var payload request.AvailabilityRequest
	if _, ok := bindLine(c, &payload); !ok {
		return
	}
	resp, err := payload.ToResponse()
	if err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	l, err := h.usecase.RecordAvailabilityResponse(c.Request.Context(), c.Param("id"), resp)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromLine(l))
}

// ReissueShortage godoc
// @Summary  Query the supplier again, optionally another supplier
// @Tags     lines
// @Accept   json
// @Produce  json
// @Param    id   path string true "line id"
// @Param    body body request.ReissueRequest false "supplier"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/reissue [post]
func (h *LineHandler) ReissueShortage(c *gin.Context) {
	var payload request.ReissueRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			writeAppError(c, errInvalidPayload)
			return
		}
	}
	h.run(c, func(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error) {
		return h.usecase.ReissueShortage(ctx, actor, lineID, payload.SupplierRef)
	})
}

// ClaimDecision godoc
// @Summary  Claim the right to decide a shortage line
// @Tags     lines
// @Produce  json
// @Param    id path string true "line id"
// @Success  200 {object} response.ClaimResponse
// @Failure  409 {object} pkg.HTTPError
// @Router   /lines/{id}/claim [post]
func (h *LineHandler) ClaimDecision(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	tok, err := h.usecase.ClaimDecision(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromClaimToken(tok))
}

// AcceptAvailability godoc
// @Summary  Accept the quantity the storekeeper or supplier can deliver
// @Tags     lines
// @Produce  json
// @Param    id path string true "line id"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/accept [post]
func (h *LineHandler) AcceptAvailability(c *gin.Context) {
	h.run(c, h.usecase.AcceptAvailability)
}

// RejectAvailability godoc
// @Summary  Reject the offered quantity
// @Tags     lines
// @Produce  json
// @Param    id path string true "line id"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/reject [post]
func (h *LineHandler) RejectAvailability(c *gin.Context) {
	h.run(c, h.usecase.RejectAvailability)
}

// MarkNotAvailable godoc
// @Summary  Give up on a shortage line
// @Tags     lines
// @Produce  json
// @Param    id path string true "line id"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/not-available [post]
func (h *LineHandler) MarkNotAvailable(c *gin.Context) {
	h.run(c, h.usecase.MarkNotAvailable)
}

// CancelLine godoc
// @Summary  Cancel a line
// @Tags     lines
// @Produce  json
// @Param    id path string true "line id"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/cancel [post]
func (h *LineHandler) CancelLine(c *gin.Context) {
	h.run(c, h.usecase.CancelLine)
}

// SetChecked godoc
// @Summary  Checker ticks or unticks a line
// @Tags     checker
// @Accept   json
// @Produce  json
// @Param    id   path string true "line id"
// @Param    body body request.CheckedRequest true "tick"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/checked [post]
func (h *LineHandler) SetChecked(c *gin.Context) {
	var payload request.CheckedRequest
	actor, ok := bindLine(c, &payload)
	if !ok {
		return
	}
	h.run(c, func(ctx context.Context, _ entities.Actor, lineID string) (entities.LineItem, error) {
		return h.usecase.SetChecked(ctx, actor, lineID, *payload.Checked)
	})
}

// EditCheckedQuantity godoc
// @Summary  Checker corrects the quantity on a line
// @Tags     checker
// @Accept   json
// @Produce  json
// @Param    id   path string true "line id"
// @Param    body body request.QuantityRequest true "quantity"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/quantity [post]
func (h *LineHandler) EditCheckedQuantity(c *gin.Context) {
	var payload request.QuantityRequest
	actor, ok := bindLine(c, &payload)
	if !ok {
		return
	}
	h.run(c, func(ctx context.Context, _ entities.Actor, lineID string) (entities.LineItem, error) {
		return h.usecase.EditCheckedQuantity(ctx, actor, lineID, payload.Qty)
	})
}

// AttachImage godoc
// @Summary  Checker attaches evidence to a line
// @Tags     checker
// @Accept   json
// @Produce  json
// @Param    id   path string true "line id"
// @Param    body body request.ImageRequest true "image"
// @Success  201 {object} response.ImageResponse
// @Failure  422 {object} pkg.HTTPError
// @Router   /lines/{id}/images [post]
func (h *LineHandler) AttachImage(c *gin.Context) {
	var payload request.ImageRequest
	actor, ok := bindLine(c, &payload)
	if !ok {
		return
	}
	img, err := h.usecase.AttachImage(c.Request.Context(), actor, c.Param("id"), payload.ContentType, payload.Data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromImage(img))
}

// AddSuggestion godoc
// @Summary  Propose a substitute product
// @Tags     suggestions
// @Accept   json
// @Produce  json
// @Param    id   path string true "line id"
// @Param    body body request.SuggestionRequest true "suggestion"
// @Success  201 {object} response.SuggestionResponse
// @Router   /lines/{id}/suggestions [post]
func (h *LineHandler) AddSuggestion(c *gin.Context) {
	var payload request.SuggestionRequest
	actor, ok := bindLine(c, &payload)
	if !ok {
		return
	}
	s, err := h.usecase.AddSuggestion(c.Request.Context(), actor, c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromSuggestion(s))
}

// DiscardSuggestion godoc
// @Summary  Discard a substitute proposal
// @Tags     suggestions
// @Produce  json
// @Param    id  path string true "line id"
// @Param    sid path string true "suggestion id"
// @Success  200 {object} response.LineResponse
// @Router   /lines/{id}/suggestions/{sid} [delete]
func (h *LineHandler) DiscardSuggestion(c *gin.Context) {
	h.run(c, func(ctx context.Context, actor entities.Actor, lineID string) (entities.LineItem, error) {
		return h.usecase.DiscardSuggestion(ctx, actor, lineID, c.Param("sid"))
	})
}

// AcceptSuggestion godoc
// @Summary  Replace the line with the proposed product
// @Tags     suggestions
// @Produce  json
// @Param    id  path string true "line id"
// @Param    sid path string true "suggestion id"
// @Success  200 {object} response.AcceptSuggestionResponse
// @Router   /lines/{id}/suggestions/{sid}/accept [post]
func (h *LineHandler) AcceptSuggestion(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	replaced, replacement, err := h.usecase.AcceptSuggestion(c.Request.Context(), actor, c.Param("id"), c.Param("sid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.AcceptSuggestionResponse{
		Replaced:    response.FromLine(replaced),
		Replacement: response.FromLine(replacement),
	})
}
