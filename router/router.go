package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	chatCtrl interface {
		Start(echo.Context) error
		Choice(echo.Context) error
		Text(echo.Context) error
	},
	riskCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
		AddMitigation(echo.Context) error
		Report(echo.Context) error
		Export(echo.Context) error
	},
	healthCtrl interface{ Check(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Check)

	// conversation surface
	g := e.Group("/chat/:user_id")
	g.POST("/start", chatCtrl.Start)
	g.POST("/choice", chatCtrl.Choice)
	g.POST("/text", chatCtrl.Text)

	// direct record access
	e.GET("/risks", riskCtrl.List)
	e.GET("/risks/:id", riskCtrl.Get)
	e.POST("/risks/:id/mitigations", riskCtrl.AddMitigation)
	e.GET("/report", riskCtrl.Report)
	e.POST("/export", riskCtrl.Export)

	return e
}
