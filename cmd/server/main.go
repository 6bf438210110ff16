package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"riskbot/config"
	"riskbot/database"
	"riskbot/router"

	// Risk
	riskCtrlImp "riskbot/pkg/risk/controllerImp"
	riskRepoImp "riskbot/pkg/risk/repositoryImp"
	riskSvcImp "riskbot/pkg/risk/serviceImp"

	// Subscription
	subRepoImp "riskbot/pkg/subscription/repositoryImp"
	subSvcImp "riskbot/pkg/subscription/serviceImp"

	// Conversation
	chatCtrlImp "riskbot/pkg/transport/controllerImp"
	"riskbot/pkg/session"
	"riskbot/pkg/workflow"

	// Export + reminders
	"riskbot/pkg/export"
	"riskbot/pkg/notify"
	"riskbot/pkg/transport"

	// Health
	healthCtrlImp "riskbot/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Repos + services
	riskRepo := riskRepoImp.New(db)
	riskSvc := riskSvcImp.New(riskRepo)
	subRepo := subRepoImp.New(db)
	subSvc := subSvcImp.New(subRepo)

	// 4) Conversation engine
	store := session.NewStore()
	exporter := export.New(riskSvc, cfg.ExportDir)
	engine := workflow.New(store, riskSvc, subSvc, exporter)

	// 5) Controllers
	chatCtrl := chatCtrlImp.NewChatCtrl(engine)
	riskCtrl := riskCtrlImp.NewRiskCtrl(riskSvc, exporter)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 6) Daily reminder (mock sender when no push endpoint configured)
	var sender notify.Sender
	if cfg.PushEndpoint != "" {
		sender = transport.NewPush(cfg.PushEndpoint, cfg.PushToken)
	} else {
		sender = transport.NewMockSender()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("WARN: bad TZ %q, using UTC: %v", cfg.Timezone, err)
		loc = time.UTC
	}
	sched := notify.NewScheduler(notify.NewReminder(subSvc, sender), cfg.ReminderAt, loc)
	go sched.Run()
	defer sched.Stop()

	// 7) Echo + routes
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	r := router.New(e, chatCtrl, riskCtrl, hCtrl)

	// 8) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
