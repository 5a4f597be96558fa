package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cashflow/internal/cache"
	"cashflow/internal/database"
	"cashflow/internal/handler"
	"cashflow/internal/handler/auth"
	"cashflow/internal/handler/cashflows"
	"cashflow/internal/handler/entries"
	"cashflow/internal/handler/expenses"
	"cashflow/internal/handler/tags"
	"cashflow/internal/handler/users"
	"cashflow/internal/middleware"
	"cashflow/internal/service"
)

// Setup 註冊所有路由與中介層；rc 為 nil 代表未啟用 Redis
func Setup(e *echo.Echo, db database.DB, rc cache.Cache, sessions *service.SessionManager, passwords *service.Passwords) {
	api := e.Group("/api")
	requireAuth := middleware.RequireAuth(sessions, db)

	// 登入與登出不需 session
	api.POST("/auth/login", auth.LoginHandler(db, passwords, sessions))
	api.POST("/auth/logout", auth.LogoutHandler(sessions))
	api.GET("/auth/me", auth.MeHandler(), requireAuth)

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rc), requireAuth)

	apiCashFlows := api.Group("/cash-flows", requireAuth)
	apiCashFlows.GET("", cashflows.ListCashFlowsHandler(db))
	apiCashFlows.POST("", cashflows.CreateCashFlowHandler(db))
	apiCashFlows.GET("/:id", cashflows.GetCashFlowHandler(db))
	apiCashFlows.PUT("/:id", cashflows.UpdateCashFlowHandler(db))
	apiCashFlows.DELETE("/:id", cashflows.DeleteCashFlowHandler(db))

	apiEntries := api.Group("/entries", requireAuth)
	apiEntries.POST("", entries.CreateEntryHandler(db))
	apiEntries.PUT("/:id", entries.UpdateEntryHandler(db))
	apiEntries.DELETE("/:id", entries.DeleteEntryHandler(db))

	apiExpenses := api.Group("/expenses", requireAuth)
	apiExpenses.POST("", expenses.CreateExpenseHandler(db))
	apiExpenses.PUT("/:id", expenses.UpdateExpenseHandler(db))
	apiExpenses.DELETE("/:id", expenses.DeleteExpenseHandler(db))

	apiTags := api.Group("/tags", requireAuth)
	apiTags.GET("", tags.ListTagsHandler(db))
	apiTags.POST("", tags.CreateTagHandler(db))
	apiTags.DELETE("/:id", tags.DeleteTagHandler(db))

	// 管理員專屬 Users
	apiUsers := api.Group("/users", middleware.RequireAdmin(sessions, db))
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.POST("", users.CreateUserHandler(db, passwords))
	apiUsers.DELETE("/:id", users.DeleteUserHandler(db))

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
