package main

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "skillport/internal/adapter/http"
	"skillport/internal/adapter/middleware"
	"skillport/internal/config"
	"skillport/internal/infrastructure/db"
	"skillport/internal/infrastructure/sessionstore"
	"skillport/internal/upstream"
	"skillport/internal/usecase/portal"
	"skillport/internal/usecase/reviewflow"
	"skillport/pkg/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("database open failed")
	}
	store, err := db.NewStore(gdb)
	if err != nil {
		log.WithError(err).Fatal("database migrate failed")
	}

	rdb, err := sessionstore.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connect failed")
	}
	sessions := sessionstore.NewRedis(rdb)

	gw := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)

	sessionTTL := time.Duration(cfg.SessionTTLSecs) * time.Second
	portalUC := portal.NewUsecase(gw, sessions, store, log)
	portalUC.SetSessionTTL(sessionTTL)
	reviewUC := reviewflow.NewUsecase(gw, sessions, log)
	reviewUC.SetSessionTTL(sessionTTL)

	h := httpadp.NewHandler()
	table := httpadp.NewTableHandler(portalUC)
	reviews := httpadp.NewReviewHandler(reviewUC)
	prefs := httpadp.NewPrefsHandler(store)
	files := httpadp.NewFilesHandler(gw)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	idemTTL := time.Duration(cfg.IdempTTLSecs) * time.Second

	s := api.Group("/sessions")
	s.POST("", table.Open)
	s.GET("/:id/view", table.View)
	s.POST("/:id/reload", table.Reload)
	s.GET("/:id/options/:column", table.Options)
	s.POST("/:id/search", table.Search)
	s.POST("/:id/filters/toggle", table.ToggleFilter)
	s.POST("/:id/filters/select-all", table.SelectAllFilter)
	s.POST("/:id/unselected-only", table.UnselectedOnly)
	s.POST("/:id/page", table.Page)
	s.POST("/:id/level", table.SetLevel)
	s.POST("/:id/select", table.ToggleSelect)
	s.DELETE("/:id/rows/:hashId", table.ClearRow)
	// save mutates upstream state, so it carries the idempotency contract
	s.POST("/:id/save", table.Save, middleware.Idempotency(rdb, idemTTL, log))

	r := api.Group("/reviews")
	r.POST("", reviews.Open)
	r.GET("/:id", reviews.Get)
	r.POST("/:id/refresh", reviews.Refresh)
	r.POST("/:id/employee", reviews.SetEmployee)
	r.POST("/:id/select", reviews.SelectItem)
	r.POST("/:id/select-all", reviews.SelectAll)
	r.POST("/:id/approve", reviews.Approve, middleware.Idempotency(rdb, idemTTL, log))
	r.POST("/:id/reject", reviews.Reject, middleware.Idempotency(rdb, idemTTL, log))

	api.GET("/prefs/:email", prefs.Get)
	api.PUT("/prefs/:email", prefs.Put)
	api.GET("/master-file", files.MasterFile)
	api.POST("/cv", files.UploadCV)

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
