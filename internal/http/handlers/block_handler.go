// Block registry HTTP handlers.
//
// This file exposes REST endpoints for the recipient block registry:
//   - POST   /blocks                                   (create a block)
//   - DELETE /blocks/{organizationID}/{recipientID}    (remove a block)
//
// Blocks are keyed by (recipient, organization); blocking is driven by the
// recipient side, so the routes live outside the /organizations/{id} prefix.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AlexBaum-ai/outreach-backend/internal/services"
)

// BlockRequest is the JSON payload for creating a block.
type BlockRequest struct {
	// RecipientID identifies the recipient refusing contact.
	RecipientID string `json:"recipient_id" binding:"required" example:"cand-42"`
	// OrganizationID identifies the organization being blocked.
	OrganizationID string `json:"organization_id" binding:"required" example:"org-acme"`
	// Reason optionally records why the block was created.
	Reason string `json:"reason,omitempty" example:"unsolicited outreach"`
}

// CreateBlock godoc
// @ID          createBlock
// @Summary     Block an organization for a recipient
// @Description Records that the recipient no longer wants contact from the organization. Subsequent dispatches silently skip the recipient.
// @Tags        Blocks
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.BlockRequest  true  "Block payload"
//
// @Success     201  {object}  domain.Block
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Already blocked"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /blocks [post]
func (h *Handlers) CreateBlock(c *gin.Context) {
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.RecipientID) == "" || strings.TrimSpace(req.OrganizationID) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipient_id and organization_id are required")
		return
	}

	b, err := h.blockSvc.Block(c.Request.Context(), req.RecipientID, req.OrganizationID, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyBlocked) {
			fail(c, http.StatusConflict, ErrCodeConflict, "recipient already blocked this organization")
			return
		}
		if errors.Is(err, services.ErrInvalidBlock) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, b)
}

// DeleteBlock godoc
// @ID          deleteBlock
// @Summary     Unblock an organization for a recipient
// @Tags        Blocks
// @Produce     json
//
// @Param       organizationID  path  string  true  "Organization ID"  example(org-acme)
// @Param       recipientID     path  string  true  "Recipient ID"     example(cand-42)
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Block not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /blocks/{organizationID}/{recipientID} [delete]
func (h *Handlers) DeleteBlock(c *gin.Context) {
	err := h.blockSvc.Unblock(c.Request.Context(), c.Param("recipientID"), c.Param("organizationID"))
	if err != nil {
		if errors.Is(err, services.ErrBlockNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "block not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
