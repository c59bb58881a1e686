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

// friendHandler handles HTTP requests related to friendships and friend requests.
type friendHandler struct {
	friendService portssvc.FriendSvcFacade
}

func newFriendHandler(fs portssvc.FriendSvcFacade) *friendHandler {
	return &friendHandler{friendService: fs}
}

// registerFriendRoutes registers routes related to friendships.
func registerFriendRoutes(rg *gin.RouterGroup, friendService portssvc.FriendSvcFacade) {
	h := newFriendHandler(friendService)

	requests := rg.Group("/friends/requests")
	{
		requests.POST("", h.createFriendRequest)
		requests.GET("/incoming", h.listIncomingRequests)
		requests.GET("/outgoing", h.listOutgoingRequests)
		requests.POST("/:id/accept", h.acceptFriendRequest)
		requests.POST("/:id/reject", h.rejectFriendRequest)
		requests.POST("/:id/cancel", h.cancelFriendRequest)
	}

	friends := rg.Group("/friends")
	{
		friends.GET("", h.listFriends)
		friends.PUT("/:id/nickname", h.updateNickname)
		friends.DELETE("/:id", h.removeFriend)
		friends.GET("/:id/wallets", h.listFriendWallets)
	}
}

// createFriendRequest godoc
// @Summary Send a friend request
// @Description Sends (or refreshes) a friend request to the user behind the given email. A matching reverse request is accepted immediately.
// @Tags friends
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateFriendRequestRequest true "Target email and optional nickname"
// @Success 201 {object} dto.FriendRequestResponse
// @Failure 400 {object} ErrorResponse "Unknown email, self-friending, or already friends"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends/requests [post]
func (h *friendHandler) createFriendRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.friendService.CreateFriendRequest(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create friend request", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create friend request"})
		}
		return
	}

	logger.Info("Friend request processed", slog.String("request_id", resp.RequestID), slog.String("status", string(resp.Status)))
	c.JSON(http.StatusCreated, resp)
}

// listIncomingRequests godoc
// @Summary List incoming friend requests
// @Description Retrieves Pending friend requests aimed at the caller, newest-first
// @Tags friends
// @Produce  json
// @Success 200 {array} dto.FriendRequestResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/incoming [get]
func (h *friendHandler) listIncomingRequests(c *gin.Context) {
	h.listRequests(c, h.friendService.ListIncomingRequests)
}

// listOutgoingRequests godoc
// @Summary List outgoing friend requests
// @Description Retrieves Pending friend requests the caller has sent, newest-first
// @Tags friends
// @Produce  json
// @Success 200 {array} dto.FriendRequestResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/outgoing [get]
func (h *friendHandler) listOutgoingRequests(c *gin.Context) {
	h.listRequests(c, h.friendService.ListOutgoingRequests)
}

func (h *friendHandler) listRequests(c *gin.Context, list func(ctx context.Context, userID string) ([]dto.FriendRequestResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	requests, err := list(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list friend requests", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list friend requests"})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// acceptFriendRequest godoc
// @Summary Accept a friend request
// @Description Accepts a Pending request aimed at the caller, creating the friendship in both directions
// @Tags friends
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No matching Pending request"
// @Security BearerAuth
// @Router /friends/requests/{id}/accept [post]
func (h *friendHandler) acceptFriendRequest(c *gin.Context) {
	h.resolveRequest(c, "accepted", h.friendService.AcceptFriendRequest)
}

// rejectFriendRequest godoc
// @Summary Reject a friend request
// @Tags friends
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No matching Pending request"
// @Security BearerAuth
// @Router /friends/requests/{id}/reject [post]
func (h *friendHandler) rejectFriendRequest(c *gin.Context) {
	h.resolveRequest(c, "rejected", h.friendService.RejectFriendRequest)
}

// cancelFriendRequest godoc
// @Summary Cancel an outgoing friend request
// @Tags friends
// @Produce  json
// @Param   id path string true "Request ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No matching Pending request"
// @Security BearerAuth
// @Router /friends/requests/{id}/cancel [post]
func (h *friendHandler) cancelFriendRequest(c *gin.Context) {
	h.resolveRequest(c, "cancelled", h.friendService.CancelFriendRequest)
}

// resolveRequest handles the shared accept/reject/cancel shape: a false
// result means no Pending row matched the caller and reads as a 404.
func (h *friendHandler) resolveRequest(c *gin.Context, action string, resolve func(ctx context.Context, userID, requestID string) (bool, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	done, err := resolve(c.Request.Context(), userID, requestID)
	if err != nil {
		logger.Error("Failed to resolve friend request", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve friend request"})
		return
	}
	if !done {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No pending friend request found"})
		return
	}

	logger.Info("Friend request resolved", slog.String("request_id", requestID), slog.String("action", action))
	c.JSON(http.StatusOK, gin.H{action: true})
}

// listFriends godoc
// @Summary List friends
// @Description Retrieves the caller's friends with nicknames and display names
// @Tags friends
// @Produce  json
// @Success 200 {array} dto.FriendResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends [get]
func (h *friendHandler) listFriends(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	friends, err := h.friendService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list friends", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list friends"})
		return
	}

	c.JSON(http.StatusOK, friends)
}

// updateNickname godoc
// @Summary Rename a friend
// @Description Updates the caller's private nickname for one friend
// @Tags friends
// @Accept  json
// @Produce  json
// @Param   id path string true "Friend user ID"
// @Param   nickname body dto.UpdateFriendNicknameRequest true "New nickname"
// @Success 200 {object} dto.FriendResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Not friends"
// @Security BearerAuth
// @Router /friends/{id}/nickname [put]
func (h *friendHandler) updateNickname(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	friendUserID := c.Param("id")

	var req dto.UpdateFriendNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	friend, err := h.friendService.UpdateNickname(c.Request.Context(), userID, friendUserID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Friend not found"})
		} else {
			logger.Error("Failed to update friend nickname", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update nickname"})
		}
		return
	}

	c.JSON(http.StatusOK, friend)
}

// removeFriend godoc
// @Summary Remove a friend
// @Description Deletes the friendship in both directions
// @Tags friends
// @Produce  json
// @Param   id path string true "Friend user ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Not friends"
// @Security BearerAuth
// @Router /friends/{id} [delete]
func (h *friendHandler) removeFriend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	friendUserID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	removed, err := h.friendService.RemoveFriend(c.Request.Context(), userID, friendUserID)
	if err != nil {
		logger.Error("Failed to remove friend", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to remove friend"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Friend not found"})
		return
	}

	logger.Info("Friend removed", slog.String("friend_user_id", friendUserID))
	c.Status(http.StatusNoContent)
}

// listFriendWallets godoc
// @Summary List a friend's wallets
// @Description Retrieves a friend's wallets with balances, for picking a peer-payment target
// @Tags friends
// @Produce  json
// @Param   id path string true "Friend user ID"
// @Success 200 {array} dto.WalletResponse
// @Failure 400 {object} ErrorResponse "Not friends"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /friends/{id}/wallets [get]
func (h *friendHandler) listFriendWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	friendUserID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	wallets, err := h.friendService.ListFriendWallets(c.Request.Context(), userID, friendUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to list friend wallets", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list friend wallets"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponses(wallets))
}
