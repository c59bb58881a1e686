package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/fintrackr/fintrackr-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// peerPaymentHandler handles HTTP requests related to peer payments.
type peerPaymentHandler struct {
	peerPaymentService portssvc.PeerPaymentSvcFacade
}

func newPeerPaymentHandler(ps portssvc.PeerPaymentSvcFacade) *peerPaymentHandler {
	return &peerPaymentHandler{peerPaymentService: ps}
}

// registerPeerPaymentRoutes registers routes related to peer payments.
func registerPeerPaymentRoutes(rg *gin.RouterGroup, peerPaymentService portssvc.PeerPaymentSvcFacade) {
	h := newPeerPaymentHandler(peerPaymentService)

	payments := rg.Group("/peer-payments")
	{
		payments.POST("/requests", h.createPaymentRequest)
		payments.GET("/requests/incoming", h.listIncomingPaymentRequests)
		payments.GET("/requests/outgoing", h.listOutgoingPaymentRequests)
		payments.POST("/requests/:id/accept", h.acceptPaymentRequest)
		payments.POST("/requests/:id/reject", h.rejectPaymentRequest)
		payments.POST("/requests/:id/cancel", h.cancelPaymentRequest)
		payments.POST("/send", h.sendPayment)
	}
}

// createPaymentRequest godoc
// @Summary Request money from another user
// @Description Asks another user to pay into one of the caller's wallets. Amount is in the target wallet's currency.
// @Tags peer-payments
// @Accept  json
// @Produce  json
// @Param   request body dto.CreatePeerPaymentRequestRequest true "Payer, target wallet and amount"
// @Success 201 {object} dto.PeerPaymentRequestResponse
// @Failure 400 {object} ErrorResponse "Unknown payer, foreign wallet or bad amount"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /peer-payments/requests [post]
func (h *peerPaymentHandler) createPaymentRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePeerPaymentRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.peerPaymentService.CreatePaymentRequest(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create payment request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create payment request"})
		}
		return
	}

	logger.Info("Payment request created", slog.String("request_id", resp.RequestID))
	c.JSON(http.StatusCreated, resp)
}

// listIncomingPaymentRequests godoc
// @Summary List payment requests awaiting the caller
// @Description Retrieves Pending requests the caller is asked to pay, newest-first
// @Tags peer-payments
// @Produce  json
// @Success 200 {array} dto.PeerPaymentRequestResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /peer-payments/requests/incoming [get]
func (h *peerPaymentHandler) listIncomingPaymentRequests(c *gin.Context) {
	h.listRequests(c, h.peerPaymentService.ListIncomingPaymentRequests)
}

// listOutgoingPaymentRequests godoc
// @Summary List payment requests the caller has raised
// @Tags peer-payments
// @Produce  json
// @Success 200 {array} dto.PeerPaymentRequestResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /peer-payments/requests/outgoing [get]
func (h *peerPaymentHandler) listOutgoingPaymentRequests(c *gin.Context) {
	h.listRequests(c, h.peerPaymentService.ListOutgoingPaymentRequests)
}

func (h *peerPaymentHandler) listRequests(c *gin.Context, list func(ctx context.Context, userID string) ([]dto.PeerPaymentRequestResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	requests, err := list(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list payment requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list payment requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// acceptPaymentRequest godoc
// @Summary Accept a payment request
// @Description Settles a Pending request from the caller's chosen wallet. The requested amount is in the target wallet's currency; the caller's deduction is derived from the FX rate.
// @Tags peer-payments
// @Accept  json
// @Produce  json
// @Param   id path string true "Request ID"
// @Param   accept body dto.AcceptPeerPaymentRequest true "Source wallet and optional rate override"
// @Success 200 {object} dto.PeerPaymentRequestResponse
// @Failure 400 {object} ErrorResponse "Foreign source wallet"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Request not found"
// @Failure 409 {object} ErrorResponse "Not pending, bad rate or insufficient balance"
// @Security BearerAuth
// @Router /peer-payments/requests/{id}/accept [post]
func (h *peerPaymentHandler) acceptPaymentRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	var req dto.AcceptPeerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.peerPaymentService.AcceptPaymentRequest(c.Request.Context(), userID, requestID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payment request not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to accept payment request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to accept payment request"})
		}
		return
	}

	logger.Info("Payment request accepted", slog.String("request_id", requestID))
	c.JSON(http.StatusOK, resp)
}

// rejectPaymentRequest godoc
// @Summary Reject a payment request
// @Tags peer-payments
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No matching Pending request"
// @Security BearerAuth
// @Router /peer-payments/requests/{id}/reject [post]
func (h *peerPaymentHandler) rejectPaymentRequest(c *gin.Context) {
	h.resolveRequest(c, "rejected", h.peerPaymentService.RejectPaymentRequest)
}

// cancelPaymentRequest godoc
// @Summary Cancel an outgoing payment request
// @Tags peer-payments
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No matching Pending request"
// @Security BearerAuth
// @Router /peer-payments/requests/{id}/cancel [post]
func (h *peerPaymentHandler) cancelPaymentRequest(c *gin.Context) {
	h.resolveRequest(c, "cancelled", h.peerPaymentService.CancelPaymentRequest)
}

func (h *peerPaymentHandler) resolveRequest(c *gin.Context, action string, resolve func(ctx context.Context, userID, requestID string) (bool, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	done, err := resolve(c.Request.Context(), userID, requestID)
	if err != nil {
		logger.Error("Failed to resolve payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve payment request"})
		return
	}
	if !done {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No pending payment request found"})
		return
	}

	logger.Info("Payment request resolved", slog.String("request_id", requestID), slog.String("action", action))
	c.JSON(http.StatusOK, gin.H{action: true})
}

// sendPayment godoc
// @Summary Send money to another user
// @Description Pushes money from the caller's wallet straight into the recipient's named wallet. Amount is in the caller's wallet currency.
// @Tags peer-payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.SendPeerPaymentRequest true "Recipient, wallets and amount"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Unknown recipient or wallets"
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /peer-payments/send [post]
func (h *peerPaymentHandler) sendPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SendPeerPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.peerPaymentService.SendPayment(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to send payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send payment"})
		}
		return
	}

	logger.Info("Payment sent", slog.String("recipient_user_id", req.RecipientUserID))
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
