package entries

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
	getCashFlowByID  = store.GetCashFlowByID
	getEntryByID     = store.GetEntryByID
	createEntry      = store.CreateEntry
	updateEntry      = store.UpdateEntry
	deleteEntry      = store.DeleteEntry
	addEntryTags     = store.AddEntryTags
	replaceEntryTags = store.ReplaceEntryTags
	listEntryTags    = store.ListEntryTags
)

// errCashFlowGone 帳本在寫入前被刪除（外鍵違反）
var errCashFlowGone = fmt.Errorf("cash flow: %w", store.ErrNotFound)

var (
	createMessages = handler.ErrorMessages{
		NotFound:         "cash flow not found",
		InvalidReference: "unknown tag id",
	}
	entryMessages = handler.ErrorMessages{
		NotFound:         "entry not found",
		InvalidReference: "unknown tag id",
	}
)

// @Summary     Create an entry
// @Description 在帳本中新增收入，金額預設 0；標籤與收入在同一個交易內寫入
// @Tags        entries
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateEntryRequest true "收入資料"
// @Success     201  {object} model.Entry
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /entries [post]
func CreateEntryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateEntryRequest
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

		var entry *model.Entry
		err := database.WithTx(ctx, db, func(q database.Querier) error {
			var err error
			entry, err = createEntry(ctx, q, &model.Entry{
				CashFlowID:     req.CashFlowID,
				Date:           req.Date,
				Description:    req.Description,
				AmountExpected: handler.AmountOrZero(req.AmountExpected),
				AmountReceived: handler.AmountOrZero(req.AmountReceived),
			})
			if errors.Is(err, store.ErrInvalidReference) {
				return errCashFlowGone
			}
			if err != nil {
				return err
			}
			if err := addEntryTags(ctx, q, entry.ID, req.TagIDs); err != nil {
				return err
			}
			return attachTags(c, q, entry)
		})
		if err != nil {
			return handler.StoreError(c, err, createMessages)
		}
		return c.JSON(http.StatusCreated, entry)
	}
}

// @Summary     Update an entry
// @Description 部分更新；提供 tagIds 時整組取代（[] 或 null 代表清空）
// @Tags        entries
// @Accept      json
// @Produce     json
// @Param       id   path     int                    true "收入 ID"
// @Param       body body     api.UpdateEntryRequest true "更新內容"
// @Success     200  {object} model.Entry
// @Failure     400  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /entries/{id} [put]
func UpdateEntryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}
		var req api.UpdateEntryRequest
		if err := c.Bind(&req); err != nil {
			return handler.InvalidBody(c, err)
		}
		if err := c.Validate(&req); err != nil {
			return handler.InvalidBody(c, err)
		}

		ctx := c.Request().Context()
		var entry *model.Entry
		err := database.WithTx(ctx, db, func(q database.Querier) error {
			existing, err := getEntryByID(ctx, q, id)
			if err != nil {
				return err
			}
			existing.Date = req.Date.Or(existing.Date)
			existing.Description = req.Description.Or(existing.Description)
			existing.AmountExpected = req.AmountExpected.Or(existing.AmountExpected)
			existing.AmountReceived = req.AmountReceived.Or(existing.AmountReceived)

			if entry, err = updateEntry(ctx, q, existing); err != nil {
				return err
			}
			if req.TagIDs.Set {
				if err := replaceEntryTags(ctx, q, id, req.TagIDs.Value); err != nil {
					return err
				}
			}
			return attachTags(c, q, entry)
		})
		if err != nil {
			return handler.StoreError(c, err, entryMessages)
		}
		return c.JSON(http.StatusOK, entry)
	}
}

// @Summary     Delete an entry
// @Tags        entries
// @Produce     json
// @Param       id  path     int true "收入 ID"
// @Success     200 {object} api.SuccessResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /entries/{id} [delete]
func DeleteEntryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}
		if err := deleteEntry(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err, entryMessages)
		}
		return handler.Deleted(c, "entry deleted")
	}
}

func attachTags(c echo.Context, q database.Querier, entry *model.Entry) error {
	tags, err := listEntryTags(c.Request().Context(), q, []int{entry.ID})
	if err != nil {
		return err
	}
	entry.Tags = tags[entry.ID]
	if entry.Tags == nil {
		entry.Tags = []model.Tag{}
	}
	return nil
}
