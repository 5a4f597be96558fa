package cashflows

import (
	"context"
	"net/http"

	"cashflow/internal/api"
	"cashflow/internal/database"
	"cashflow/internal/handler"
	"cashflow/internal/model"
	"cashflow/internal/service"
	"cashflow/internal/store"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

var (
	listCashFlows           = store.ListCashFlows
	getCashFlowByID         = store.GetCashFlowByID
	cashFlowExistsForPeriod = store.CashFlowExistsForPeriod
	createCashFlow          = store.CreateCashFlow
	updateCashFlow          = store.UpdateCashFlow
	deleteCashFlow          = store.DeleteCashFlow
	listEntries             = store.ListEntriesByCashFlow
	listExpenses            = store.ListExpensesByCashFlow
	listEntryTags           = store.ListEntryTags
	listExpenseTags         = store.ListExpenseTags
	calculateSummary        = service.CalculateCashFlowSummary
)

var cashFlowMessages = handler.ErrorMessages{
	NotFound: "cash flow not found",
	Conflict: "a cash flow already exists for this month/year",
}

// @Summary     List cash flows
// @Description 依年、月由新到舊列出所有帳本
// @Tags        cash-flows
// @Produce     json
// @Success     200 {array}  model.CashFlow
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /cash-flows [get]
func ListCashFlowsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listCashFlows(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Create a cash flow
// @Description 建立某年某月的帳本，期初餘額預設 0；同月份重複時回 409
// @Tags        cash-flows
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateCashFlowRequest true "帳本資料"
// @Success     201  {object} model.CashFlow
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /cash-flows [post]
func CreateCashFlowHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateCashFlowRequest
		if err := c.Bind(&req); err != nil {
			return handler.InvalidBody(c, err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.InvalidBody(c, err)
		}

		ctx := c.Request().Context()
		exists, err := cashFlowExistsForPeriod(ctx, db, req.Month, req.Year)
		if err != nil {
			return handler.InternalError(c, err)
		}
		if exists {
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: cashFlowMessages.Conflict})
		}

		// 預檢與寫入之間仍可能競爭，unique_month_year 違反同樣對應 409
		cf, err := createCashFlow(ctx, db, &model.CashFlow{
			Month:          req.Month,
			Year:           req.Year,
			InitialBalance: handler.AmountOrZero(req.InitialBalance),
		})
		if err != nil {
			return handler.StoreError(c, err, cashFlowMessages)
		}
		return c.JSON(http.StatusCreated, cf)
	}
}

// @Summary     Get a cash flow with its entries, expenses and summary
// @Tags        cash-flows
// @Produce     json
// @Param       id  path     int true "帳本 ID"
// @Success     200 {object} api.CashFlowDetailResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /cash-flows/{id} [get]
func GetCashFlowHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}

		ctx := c.Request().Context()
		cf, err := getCashFlowByID(ctx, db, id)
		if err != nil {
			return handler.StoreError(c, err, cashFlowMessages)
		}

		resp := api.CashFlowDetailResponse{CashFlow: *cf}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			entries, err := loadEntries(gctx, db, id)
			resp.Entries = entries
			return err
		})
		g.Go(func() error {
			expenses, err := loadExpenses(gctx, db, id)
			resp.Expenses = expenses
			return err
		})
		g.Go(func() error {
			summary, err := calculateSummary(gctx, db, id)
			if err != nil {
				return err
			}
			resp.Summary = api.NewSummaryResponse(summary)
			return nil
		})
		if err := g.Wait(); err != nil {
			// 讀取期間帳本被刪除時回 404
			return handler.StoreError(c, err, cashFlowMessages)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Update a cash flow
// @Description 部分更新：未提供的欄位保留原值；initialBalance 不可為 null，送出 null 回 400
// @Tags        cash-flows
// @Accept      json
// @Produce     json
// @Param       id   path     int                       true "帳本 ID"
// @Param       body body     api.UpdateCashFlowRequest true "更新內容"
// @Success     200  {object} model.CashFlow
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /cash-flows/{id} [put]
func UpdateCashFlowHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}
		var req api.UpdateCashFlowRequest
		if err := c.Bind(&req); err != nil {
			return handler.InvalidBody(c, err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.InvalidBody(c, err)
		}

		ctx := c.Request().Context()
		existing, err := getCashFlowByID(ctx, db, id)
		if err != nil {
			return handler.StoreError(c, err, cashFlowMessages)
		}
		existing.InitialBalance = req.InitialBalance.Or(existing.InitialBalance)

		updated, err := updateCashFlow(ctx, db, existing)
		if err != nil {
			return handler.StoreError(c, err, cashFlowMessages)
		}
		return c.JSON(http.StatusOK, updated)
	}
}

// @Summary     Delete a cash flow
// @Description 刪除帳本，連同其收入、支出與標籤關聯
// @Tags        cash-flows
// @Produce     json
// @Param       id  path     int true "帳本 ID"
// @Success     200 {object} api.SuccessResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /cash-flows/{id} [delete]
func DeleteCashFlowHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}
		if err := deleteCashFlow(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err, cashFlowMessages)
		}
		return handler.Deleted(c, "cash flow deleted")
	}
}

func loadEntries(ctx context.Context, db database.DB, cashFlowID int) ([]model.Entry, error) {
	entries, err := listEntries(ctx, db, cashFlowID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}
	tags, err := listEntryTags(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Tags = tagsOrEmpty(tags[entries[i].ID])
	}
	return entries, nil
}

func loadExpenses(ctx context.Context, db database.DB, cashFlowID int) ([]model.Expense, error) {
	expenses, err := listExpenses(ctx, db, cashFlowID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(expenses))
	for i := range expenses {
		ids[i] = expenses[i].ID
	}
	tags, err := listExpenseTags(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		expenses[i].Tags = tagsOrEmpty(tags[expenses[i].ID])
	}
	return expenses, nil
}

func tagsOrEmpty(tags []model.Tag) []model.Tag {
	if tags == nil {
		return []model.Tag{}
	}
	return tags
}
