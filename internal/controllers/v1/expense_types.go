package v1

import (
	"fmt"
	"time"

	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters of an
// expense. The owner is never part of it, it is always taken from the
// authenticated session.
type ExpenseEditable struct {
	Date        time.Time       `json:"date" example:"2024-03-05T00:00:00Z"`                                 // Date of the expense
	Amount      decimal.Decimal `json:"amount" example:"14.50" minimum:"0"`                                  // The amount spent
	Category    string          `json:"category" example:"Food" default:""`                                  // Category label for the expense
	Description string          `json:"description" example:"Lunch at the office" default:"" maxLength:"100"` // Optional description
}

func (editable ExpenseEditable) model(ownerID uuid.UUID) models.Expense {
	return models.Expense{
		Date:        editable.Date,
		Amount:      editable.Amount,
		Category:    editable.Category,
		Description: editable.Description,
		OwnerID:     ownerID,
	}
}

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/expenses/d430d7c3-d14c-4712-9336-ee56965a6673"` // The expense itself
}

// Expense is the representation of an Expense in API v1.
type Expense struct {
	models.DefaultModel
	ExpenseEditable
	OwnerID uuid.UUID    `json:"ownerId" example:"e14dfbb3-2ea7-4a93-8146-ca8c5ce4a296"` // ID of the user owning the expense
	Links   ExpenseLinks `json:"links"`
}

// newExpense returns the API v1 representation of the resource
func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString("baseURL")

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			Date:        model.Date,
			Amount:      model.Amount,
			Category:    model.Category,
			Description: model.Description,
		},
		OwnerID: model.OwnerID,
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
		},
	}
}

// FieldError reports a validation problem for a single request field.
type FieldError struct {
	Field string `json:"field" example:"amount"`            // Name of the field
	Error string `json:"error" example:"amount is required"` // What is wrong with it
}

type ExpenseResponse struct {
	Data        *Expense     `json:"data"`                                                           // The Expense data, if the request was successful
	Error       *string      `json:"error" example:"there is no expense matching your query"`        // The error, if any occurred
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`                                          // Per-field validation errors, if any occurred
}

type ExpenseListResponse struct {
	Data  []Expense `json:"data"`                                                    // List of expenses
	Error *string   `json:"error" example:"the month query parameter must be set"`   // The error, if any occurred
}

type SummaryResponse struct {
	Month types.Month            `json:"month" example:"2024-03"`                               // The month the summary was calculated for
	Data  []models.CategoryTotal `json:"data"`                                                  // Per-category totals, ordered by total descending
	Error *string                `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

type DeletedResponse struct {
	Message string `json:"message" example:"expense deleted"` // Confirmation of the deletion
}
