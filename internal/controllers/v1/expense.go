package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/expensetracker/backend/internal/auth"
	"github.com/expensetracker/backend/internal/httputil"
	"github.com/expensetracker/backend/internal/models"
	"github.com/expensetracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
//
// All expense routes require an authenticated caller, the middleware
// is attached to the group by the router.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	// Calculated endpoints
	{
		r.OPTIONS("/summary", OptionsExpenseSummary)
		r.GET("/summary", GetExpenseSummary)
		r.OPTIONS("/export", OptionsExpenseExport)
		r.GET("/export", ExportExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.PUT("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// requiredBodyFields are the struct fields that must be present in the
// body of a create request, together with their error messages.
var requiredBodyFields = map[string]FieldError{
	"Amount":   {Field: "amount", Error: "amount is required"},
	"Category": {Field: "category", Error: "category is required"},
	"Date":     {Field: "date", Error: "date is required"},
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses/summary [options]
func OptionsExpenseSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses/export [options]
func OptionsExpenseExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	_, ok := loadOwnedExpense(c)
	if !ok {
		return
	}

	httputil.OptionsPutDelete(c)
}

// @Summary		Create expense
// @Description	Creates a new expense for the authenticated user
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	ExpenseResponse
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	bodyFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	// The owner comes from the session. Amount, category and date are
	// required in the body, validated by presence so that a zero amount
	// is accepted.
	var fieldErrors []FieldError
	for name, fieldError := range requiredBodyFields {
		if !slices.Contains(bodyFields, any(name)) {
			fieldErrors = append(fieldErrors, fieldError)
		}
	}

	if len(fieldErrors) > 0 {
		e := httputil.ErrInvalidBody.Error()
		c.JSON(http.StatusBadRequest, ExpenseResponse{
			Error:       &e,
			FieldErrors: fieldErrors,
		})
		return
	}

	var editable ExpenseEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	expense := editable.model(auth.CurrentUser(c).ID)
	err = models.DB.Create(&expense).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusCreated, ExpenseResponse{Data: &data})
}

// @Summary		Get expenses
// @Description	Returns the expenses of the authenticated user for a month, ordered by date descending
// @Tags			Expenses
// @Produce		json
// @Success		200		{object}	ExpenseListResponse
// @Failure		400		{object}	ExpenseListResponse
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	ExpenseListResponse
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v1/expenses [get]
func GetExpenses(c *gin.Context) {
	month, err := monthFromQuery(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{Error: &e})
		return
	}

	expenses, err := models.ExpensesInMonth(models.DB, auth.CurrentUser(c).ID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	data := make([]Expense, 0)
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: data})
}

// @Summary		Get expense summary
// @Description	Returns the per-category totals of the authenticated user for a month, ordered by total descending
// @Tags			Expenses
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	SummaryResponse
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v1/expenses/summary [get]
func GetExpenseSummary(c *gin.Context) {
	month, err := monthFromQuery(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SummaryResponse{Error: &e})
		return
	}

	totals, err := models.CategorySummary(models.DB, auth.CurrentUser(c).ID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Month: month, Data: totals})
}

// @Summary		Export expenses
// @Description	Returns the same expenses as the list endpoint, as a downloadable JSON file
// @Tags			Expenses
// @Produce		json
// @Success		200
// @Failure		400		{object}	ExpenseListResponse
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	ExpenseListResponse
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v1/expenses/export [get]
func ExportExpenses(c *gin.Context) {
	month, err := monthFromQuery(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{Error: &e})
		return
	}

	expenses, err := models.ExpensesInMonth(models.DB, auth.CurrentUser(c).ID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	data := make([]Expense, 0)
	for _, expense := range expenses {
		data = append(data, newExpense(c, expense))
	}

	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, ExpenseListResponse{Error: &e})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=expenses-%s.json", month))
	c.Data(http.StatusOK, "application/json", body)
}

// @Summary		Update expense
// @Description	Updates an existing expense of the authenticated user. Only fields present in the request body are written, including zero values.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		401		{object}	httputil.HTTPError
// @Failure		403		{object}	ExpenseResponse
// @Failure		404		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses/{id} [put]
func UpdateExpense(c *gin.Context) {
	expense, ok := loadOwnedExpense(c)
	if !ok {
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, ExpenseEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	var update ExpenseEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	err = models.DB.Model(&expense).Select("", updateFields...).Updates(update.model(expense.OwnerID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	data := newExpense(c, expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Delete expense
// @Description	Deletes an expense of the authenticated user
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	DeletedResponse
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	expense, ok := loadOwnedExpense(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, DeletedResponse{Message: "expense deleted"})
}

// loadOwnedExpense binds the ID from the URI, loads the expense and
// verifies that the caller owns it. Existence is checked before
// ownership, a non-owner therefore learns nothing beyond the 403.
//
// When it returns false, the error response has already been written.
func loadOwnedExpense(c *gin.Context) (models.Expense, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Expense{}, false
	}

	var expense models.Expense
	err = models.DB.First(&expense, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Expense{}, false
	}

	if expense.OwnerID != auth.CurrentUser(c).ID {
		c.JSON(http.StatusForbidden, httpError{Error: errExpenseNotOwned.Error()})
		return models.Expense{}, false
	}

	return expense, true
}

// monthFromQuery parses the month query parameter.
func monthFromQuery(c *gin.Context) (types.Month, error) {
	var query QueryMonth
	if err := c.ShouldBind(&query); err != nil {
		return types.Month{}, err
	}

	if query.Month.IsZero() {
		return types.Month{}, errMonthNotSetInQuery
	}

	return types.MonthOf(query.Month), nil
}
