// Delivery event HTTP handler.
//
// The downstream delivery transport calls POST /delivery/events when a message
// it previously accepted changes state. Events advance the matching recipient
// row along the forward-only chain sent → delivered → read → replied and
// refresh the owning job's counters.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexBaum-ai/outreach-backend/internal/services"
)

// DeliveryEventRequest is the JSON payload posted by the delivery transport.
type DeliveryEventRequest struct {
	// MessageID is the transport message id returned at send time.
	MessageID string `json:"message_id" binding:"required" example:"msg-7f3a"`
	// Event is one of: delivered, read, replied.
	Event string `json:"event" binding:"required" example:"delivered"`
	// OccurredAt marks when the event occurred; defaults to now when absent.
	OccurredAt time.Time `json:"occurred_at,omitempty"`
}

// PostDeliveryEvent godoc
// @ID          postDeliveryEvent
// @Summary     Ingest a delivery status event
// @Description Advances the recipient row matching the transport message id. Backward transitions are rejected.
// @Tags        Delivery
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.DeliveryEventRequest  true  "Delivery event"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown message id"
// @Failure     409  {object}  handlers.ErrorResponse  "Out-of-order event"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /delivery/events [post]
func (h *Handlers) PostDeliveryEvent(c *gin.Context) {
	var req DeliveryEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	err := h.dispatchSvc.ApplyDeliveryEvent(c.Request.Context(), req.MessageID, req.Event, req.OccurredAt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDeliveryMessageNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "unknown message id")
		case errors.Is(err, services.ErrInvalidDeliveryEvent):
			fail(c, http.StatusConflict, ErrCodeConflict, "event would move the recipient backwards or is unknown")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
