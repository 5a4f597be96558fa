package tags

import (
	"net/http"
	"strings"

	"cashflow/internal/api"
	"cashflow/internal/database"
	"cashflow/internal/handler"
	"cashflow/internal/model"
	"cashflow/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listTags  = store.ListTags
	createTag = store.CreateTag
	deleteTag = store.DeleteTag
)

var tagMessages = handler.ErrorMessages{
	NotFound: "tag not found",
	Conflict: "tag already exists",
}

// @Summary     List tags
// @Tags        tags
// @Produce     json
// @Success     200 {array}  model.Tag
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /tags [get]
func ListTagsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		tags, err := listTags(c.Request().Context(), db)
		if err != nil {
			return handler.InternalError(c, err)
		}
		return c.JSON(http.StatusOK, tags)
	}
}

// @Summary     Create a tag
// @Description 名稱去除前後空白後必填，顏色預設 #6366f1
// @Tags        tags
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateTagRequest true "標籤資料"
// @Success     201  {object} model.Tag
// @Failure     400  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /tags [post]
func CreateTagHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateTagRequest
		if err := c.Bind(&req); err != nil {
			return handler.InvalidBody(c, err)
		}
		req.Name = strings.TrimSpace(req.Name)
		if err := c.Validate(&req); err != nil {
			return handler.InvalidBody(c, err)
		}
		color := req.Color
		if color == "" {
			color = model.DefaultTagColor
		}

		tag, err := createTag(c.Request().Context(), db, &model.Tag{Name: req.Name, Color: color})
		if err != nil {
			return handler.StoreError(c, err, tagMessages)
		}
		return c.JSON(http.StatusCreated, tag)
	}
}

// @Summary     Delete a tag
// @Description 同時移除該標籤與收入、支出的關聯
// @Tags        tags
// @Produce     json
// @Param       id  path     int true "標籤 ID"
// @Success     200 {object} api.SuccessResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    CookieAuth
// @Router      /tags/{id} [delete]
func DeleteTagHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := handler.ParseID(c)
		if !ok {
			return handler.InvalidID(c)
		}
		if err := deleteTag(c.Request().Context(), db, id); err != nil {
			return handler.StoreError(c, err, tagMessages)
		}
		return handler.Deleted(c, "tag deleted")
	}
}
