package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollplus-admin/internal/app"
	"github.com/noah-isme/enrollplus-admin/internal/service"
)

// Register mounts the admin panel API on api.
func Register(api *gin.RouterGroup, a *app.App) {
	query := ListQuery{
		DefaultPageSize: a.Config.Listing.DefaultPageSize,
		MaxPageSize:     a.Config.Listing.MaxPageSize,
	}
	users := NewUserHandler(a.Users, query)
	courses := NewCourseHandler(a.Courses, query)
	products := NewProductHandler(a.Products, query)
	transactions := NewTransactionHandler(a.Transactions, query)
	confirmations := NewConfirmationHandler(a.Confirmations)
	sessions := NewSessionHandler(a.Sessions)
	dashboard := NewDashboardHandler(a.Dashboard)
	exports := NewExportHandler(a.Exports, query, a.Users, a.Courses, a.Products, a.Transactions)

	userRoutes := api.Group("/users")
	userRoutes.GET("", users.List)
	userRoutes.POST("", users.Create)
	userRoutes.GET("/export", exports.Export(service.TableUsers))
	userRoutes.GET("/:id", users.Get)
	userRoutes.PUT("/:id", users.Update)
	userRoutes.PATCH("/:id/status", users.ToggleStatus)
	userRoutes.DELETE("/:id", users.Delete)

	courseRoutes := api.Group("/courses")
	courseRoutes.GET("", courses.List)
	courseRoutes.POST("", courses.Create)
	courseRoutes.GET("/export", exports.Export(service.TableCourses))
	courseRoutes.GET("/:id", courses.Get)
	courseRoutes.POST("/:id/close", courses.Close)
	courseRoutes.DELETE("/:id", courses.Delete)

	productRoutes := api.Group("/products")
	productRoutes.GET("", products.List)
	productRoutes.POST("", products.Create)
	productRoutes.GET("/export", exports.Export(service.TableProducts))
	productRoutes.GET("/:id", products.Get)
	productRoutes.PUT("/:id", products.Update)
	productRoutes.DELETE("/:id", products.Delete)

	transactionRoutes := api.Group("/transactions")
	transactionRoutes.GET("", transactions.List)
	transactionRoutes.GET("/totals", transactions.Totals)
	transactionRoutes.GET("/export", exports.Export(service.TableTransactions))
	transactionRoutes.GET("/:id", transactions.Get)

	confirmationRoutes := api.Group("/confirmations")
	confirmationRoutes.GET("", confirmations.List)
	confirmationRoutes.GET("/:id", confirmations.Get)
	confirmationRoutes.POST("/:id", confirmations.Resolve)

	sessionRoutes := api.Group("/sessions")
	sessionRoutes.POST("", sessions.Create)
	sessionRoutes.GET("/:id", sessions.Get)
	sessionRoutes.DELETE("/:id", sessions.SignOut)
	sessionRoutes.GET("/:id/views/:table", sessions.View)
	sessionRoutes.PATCH("/:id/views/:table", sessions.Apply)

	api.GET("/dashboard", dashboard.Overview)
}
