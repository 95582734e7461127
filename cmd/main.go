package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/etude-leroux/site-api/internal/app"
	"github.com/etude-leroux/site-api/internal/config"
	"github.com/etude-leroux/site-api/internal/controllers"
	"github.com/etude-leroux/site-api/internal/middleware"
	"github.com/etude-leroux/site-api/internal/routes"
	"github.com/etude-leroux/site-api/internal/services"
	"github.com/etude-leroux/site-api/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)

	// 1) Config
	cfg := config.LoadConfig()

	// 2) Core application (DB pool, repositories, services)
	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	// 3) Controllers
	healthCtrl := controllers.NewHealthController(application)
	propertyCtrl := controllers.NewPropertyController(application.PropertyService)
	contactCtrl := controllers.NewContactController(application.ContactService, application.RateLimiter)
	adminCtrl := controllers.NewAdminPropertyController(application.PropertyRepo, application.ImageRepo)

	// 4) Router
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Properties, propertyCtrl.ListProperties).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertiesFeatured, propertyCtrl.ListFeatured).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertiesCities, propertyCtrl.ListCities).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertiesExist, propertyCtrl.HasProperties).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyBySlug, propertyCtrl.GetProperty).Methods(http.MethodGet)
	router.HandleFunc(routes.PropertyTypes, propertyCtrl.ListTypes).Methods(http.MethodGet)

	router.HandleFunc(routes.Contact, contactCtrl.SubmitContact).Methods(http.MethodPost)

	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuth(cfg.AdminAPIToken))
	admin.HandleFunc(routes.AdminProperties, adminCtrl.CreateProperty).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminPropertyByID, adminCtrl.UpdateProperty).Methods(http.MethodPut)
	admin.HandleFunc(routes.AdminPropertyPublish, adminCtrl.SetPublished).Methods(http.MethodPatch)
	admin.HandleFunc(routes.AdminPropertyByID, adminCtrl.DeleteProperty).Methods(http.MethodDelete)
	admin.HandleFunc(routes.AdminPropertyImages, adminCtrl.AddImage).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminImageByID, adminCtrl.DeleteImage).Methods(http.MethodDelete)

	// 5) Periodic rate-limit ledger sweep
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 5m", func() {
		services.RunSweep(application.RateLimiter)
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule rate limit sweep")
	}
	sweeper.Start()
	defer sweeper.Stop()

	// 6) CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on :%s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, c.Handler(router)); err != nil {
		utils.Logger.Fatal("Server error:", err)
	}
}
