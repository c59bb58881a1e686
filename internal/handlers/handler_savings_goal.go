package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/fintrackr/fintrackr-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// savingsGoalHandler handles HTTP requests related to savings goals.
type savingsGoalHandler struct {
	goalService portssvc.SavingsGoalSvc
}

func newSavingsGoalHandler(gs portssvc.SavingsGoalSvc) *savingsGoalHandler {
	return &savingsGoalHandler{goalService: gs}
}

// registerSavingsGoalRoutes registers routes related to savings goals.
func registerSavingsGoalRoutes(rg *gin.RouterGroup, goalService portssvc.SavingsGoalSvc) {
	h := newSavingsGoalHandler(goalService)

	goals := rg.Group("/savings-goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/:id", h.getGoal)
		goals.PUT("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)
	}
}

// createGoal godoc
// @Summary Create a savings goal
// @Description Creates a goal tracking progress toward a target amount in one of the caller's wallets
// @Tags savings-goals
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateSavingsGoalRequest true "Goal details"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse "Foreign wallet, bad amount or dates"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals [post]
func (h *savingsGoalHandler) createGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create savings goal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create savings goal"})
		}
		return
	}

	logger.Info("Savings goal created", slog.String("goal_id", goal.GoalID))
	c.JSON(http.StatusCreated, goal)
}

// listGoals godoc
// @Summary List savings goals
// @Description Retrieves the caller's goals newest-first, optionally narrowed to one wallet
// @Tags savings-goals
// @Produce  json
// @Param   walletID query string false "Filter by wallet"
// @Success 200 {array} dto.SavingsGoalResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /savings-goals [get]
func (h *savingsGoalHandler) listGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var walletID *string
	if w := c.Query("walletID"); w != "" {
		walletID = &w
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID, walletID)
	if err != nil {
		logger.Error("Failed to list savings goals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list savings goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

// getGoal godoc
// @Summary Get a savings goal by ID
// @Tags savings-goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Goal not found"
// @Security BearerAuth
// @Router /savings-goals/{id} [get]
func (h *savingsGoalHandler) getGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Savings goal not found"})
		} else {
			logger.Error("Failed to get savings goal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve savings goal"})
		}
		return
	}

	c.JSON(http.StatusOK, goal)
}

// updateGoal godoc
// @Summary Update a savings goal
// @Description Patches title, target amount or dates individually
// @Tags savings-goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   goal body dto.UpdateSavingsGoalRequest true "Fields to update"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Goal not found"
// @Security BearerAuth
// @Router /savings-goals/{id} [put]
func (h *savingsGoalHandler) updateGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")

	var req dto.UpdateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, goalID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Savings goal not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update savings goal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update savings goal"})
		}
		return
	}

	c.JSON(http.StatusOK, goal)
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Tags savings-goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Goal not found"
// @Security BearerAuth
// @Router /savings-goals/{id} [delete]
func (h *savingsGoalHandler) deleteGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	goalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, goalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Savings goal not found"})
		} else {
			logger.Error("Failed to delete savings goal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete savings goal"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
