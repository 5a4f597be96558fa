package expenses

import (
	"errors"
	"fmt"
	"net/http"

	"cashflow/internal/api"
	"cashflow/internal/database"
	"cashflow/internal/handler"
	"cashflow/internal/model"
	"cashflow/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getCashFlowByID    = store.GetCashFlowByID
	getExpenseByID     = store.GetExpenseByID
	createExpense      = store.CreateExpense
	updateExpense      = store.UpdateExpense
	deleteExpense      = store.DeleteExpense
	addExpenseTags     = store.AddExpenseTags
	replaceExpenseTags = store.ReplaceExpenseTags
	listExpenseTags    = store.ListExpenseTags
)

var errCashFlowGone = fmt.Errorf("cash flow: %w", store.ErrNotFound)

var (
	createMessages = handler.ErrorMessages{
		NotFound:         "cash flow not found",
		InvalidReference: "unknown tag id",
	}
	expenseMessages = handler.ErrorMessages{
		NotFound:         "expense not found",
		InvalidReference: "unknown tag id",
	}
)

// @Summary     Create an expense
// @Description 在帳本中新增支出，金額預設 0
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateExpenseRequest true "支出資料"
// @Success     201  {object} model.Expense
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /expenses [post]
func CreateExpenseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateExpenseRequest
		if err := c.Bind(&req); err != nil {
			return handler.InvalidBody(c, err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.InvalidBody(c, err)
		}

		ctx := c.Request().Context()
		if _, err := getCashFlowByID(ctx, db, req.CashFlowID); err != nil {
			return handler.StoreError(c, err, createMessages)
		}

		var expense *model.Expense
		err := database.WithTx(ctx, db, func(q database.Querier) error {
			var err error
			expense, err = createExpense(ctx, q, &model.Expense{
				CashFlowID:  req.CashFlowID,
				Date:        req.Date,
				Description: req.Description,
				Amount:      handler.AmountOrZero(req.Amount),
			})
			if errors.Is(err, store.ErrInvalidReference) {
				return errCashFlowGone
			}
			if err != nil {
				return err
			}
			if err := addExpenseTags(ctx, q, expense.ID, req.TagIDs); err != nil {
				return err
			}
			return attachTags(c, q, expense)
		})
		if err != nil {
			return handler.StoreError(c, err, createMessages)
		}
		return c.JSON(http.StatusCreated, expense)
	}
}

// @Summary     Update an expense
// @Description 部分更新；提供 tagIds 時整組取代（[] 或 null 代表清空）
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id   path     int                      true "支出 ID"
// @Param       body body     api.UpdateExpenseRequest true "更新內容"
// @Success     200  {object} model.Expense
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /expenses/{id} [put]
func UpdateExpenseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}
		var req api.UpdateExpenseRequest
		if err := c.Bind(&req); err != nil {
			return handler.InvalidBody(c, err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.InvalidBody(c, err)
		}

		ctx := c.Request().Context()
		var expense *model.Expense
		err := database.WithTx(ctx, db, func(q database.Querier) error {
			existing, err := getExpenseByID(ctx, q, id)
			if err != nil {
				return err
			}
			existing.Date = req.Date.Or(existing.Date)
			existing.Description = req.Description.Or(existing.Description)
			existing.Amount = req.Amount.Or(existing.Amount)

			if expense, err = updateExpense(ctx, q, existing); err != nil {
				return err
			}
			if req.TagIDs.Set {
				if err := replaceExpenseTags(ctx, q, id, req.TagIDs.Value); err != nil {
					return err
				}
			}
			return attachTags(c, q, expense)
		})
		if err != nil {
			return handler.StoreError(c, err, expenseMessages)
		}
		return c.JSON(http.StatusOK, expense)
	}
}

// @Summary     Delete an expense
// @Tags        expenses
// @Produce     json
// @Param       id  path     int true "支出 ID"
// @Success     200 {object} api.SuccessResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /expenses/{id} [delete]
func DeleteExpenseHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}
		if err := deleteExpense(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err, expenseMessages)
		}
		return handler.Deleted(c, "expense deleted")
	}
}

func attachTags(c echo.Context, q database.Querier, expense *model.Expense) error {
	tags, err := listExpenseTags(c.Request().Context(), q, []int{expense.ID})
	if err != nil {
		return err
	}
	expense.Tags = tags[expense.ID]
	if expense.Tags == nil {
		expense.Tags = []model.Tag{}
	}
	return nil
}
