package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/services"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/validator"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	events        telemetry.Sink
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, events telemetry.Sink) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, events: events}
}

// BudgetQuery holds the optional month filter of GET /budgets.
type BudgetQuery struct {
	Month string `form:"month" binding:"omitempty,month_key"`
}

// UpdateBudgetRequest is the PUT payload: the target id plus the full
// replacement record.
type UpdateBudgetRequest struct {
	ID string `json:"id"`
	validator.BudgetInput
}

// GetBudgets handles listing budgets.
// @Summary     List budgets
// @Description Get budgets in insertion order, optionally for one month
// @Tags        budgets
// @Produce     json
// @Param       month query    string false "Month filter (YYYY-MM)"
// @Success     200   {array}  models.Budget "Budgets"
// @Failure     400   {object} ErrorResponse "Malformed month"
// @Failure     500   {object} ErrorResponse "Server error"
// @Router      /v1/budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var q BudgetQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, queryError(err))
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a spending ceiling for a category and month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body     validator.BudgetInput true "Budget details"
// @Success     201     {object} models.Budget "Budget created"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     409     {object} ErrorResponse "Budget already exists for category and month"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /v1/budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req validator.BudgetInput
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.events.Capture(c.Request.Context(), telemetry.NewEvent(telemetry.EventBudgetAdded, map[string]interface{}{
		"category": budget.Category,
		"month":    budget.Month,
		"amount":   budget.Amount,
	}))

	c.JSON(http.StatusCreated, budget)
}

// UpdateBudget handles replacing a budget.
// @Summary     Update a budget
// @Description Replace every field of the budget whose id is in the body
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body     UpdateBudgetRequest true "Budget id and details"
// @Success     200     {object} models.Budget "Budget updated"
// @Failure     400     {object} ErrorResponse "Missing id or invalid input"
// @Failure     404     {object} ErrorResponse "Budget not found"
// @Failure     409     {object} ErrorResponse "Budget already exists for category and month"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /v1/budgets [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), req.ID, req.BudgetInput)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.events.Capture(c.Request.Context(), telemetry.NewEvent(telemetry.EventBudgetUpdated, map[string]interface{}{
		"category": budget.Category,
		"month":    budget.Month,
		"amount":   budget.Amount,
	}))

	c.JSON(http.StatusOK, budget)
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete a budget
// @Description Permanently delete the budget with the given id
// @Tags        budgets
// @Produce     json
// @Param       id  query    string true "Budget ID"
// @Success     200 {object} SuccessResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Missing or invalid id"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/budgets [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.DeleteBudget(c.Request.Context(), c.Query("id")); err != nil {
		respondWithError(c, err)
		return
	}

	h.events.Capture(c.Request.Context(), telemetry.NewEvent(telemetry.EventBudgetDeleted, nil))

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
