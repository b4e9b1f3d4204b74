package httpserver

import (
	"github.com/aadhidev/stockify/internal/auth"
	"github.com/aadhidev/stockify/internal/handlers"
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Tokens           *auth.TokenService
	AuthHandler      *handlers.AuthHandler
	InventoryHandler *handlers.InventoryHandler
	OrderHandler     *handlers.OrderHandler
	ActivityHandler  *handlers.ActivityHandler
	UserHandler      *handlers.UserHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/refresh", d.AuthHandler.Refresh)

	authed := v1.Group("", d.Tokens.RequireLogin)

	authed.GET("/inventory", d.InventoryHandler.List)
	authed.GET("/inventory/:id", d.InventoryHandler.Get)

	authed.POST("/orders", d.OrderHandler.Place)
	authed.GET("/orders/my", d.OrderHandler.ListMine)
	authed.POST("/orders/:id/pay", d.OrderHandler.Pay)

	authed.GET("/profile", d.UserHandler.Profile)
	authed.PUT("/profile", d.UserHandler.UpdateProfile)
	authed.GET("/profile/activity", d.ActivityHandler.MyHistory)

	admin := v1.Group("/admin", d.Tokens.AdminOnly)

	admin.POST("/inventory", d.InventoryHandler.Create)
	admin.PUT("/inventory/:id", d.InventoryHandler.Update)
	admin.DELETE("/inventory/:id", d.InventoryHandler.Delete)

	admin.GET("/orders", d.OrderHandler.ListAll)
	admin.POST("/orders/:id/accept", d.OrderHandler.Accept)
	admin.POST("/orders/:id/deliver", d.OrderHandler.Deliver)
	admin.POST("/orders/:id/reject", d.OrderHandler.Reject)

	admin.GET("/activity", d.ActivityHandler.Query)
	admin.GET("/users", d.UserHandler.List)
}
