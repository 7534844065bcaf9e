package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/FireFly4ik/db-kr-1/config"
	"github.com/FireFly4ik/db-kr-1/database"
	"github.com/FireFly4ik/db-kr-1/handlers"
	"github.com/FireFly4ik/db-kr-1/logging"
	"github.com/FireFly4ik/db-kr-1/repository"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFile)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate schema: %v", err)
	}

	experimentHandler := &handlers.ExperimentHandler{Repo: repository.NewExperimentRepository(db)}
	runHandler := &handlers.RunHandler{Repo: repository.NewRunRepository(db)}
	imageHandler := &handlers.ImageHandler{Repo: repository.NewImageRepository(db)}
	setupHandler := &handlers.SetupHandler{DB: db}

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, //TODO: configurable
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/experiments", func(r chi.Router) {
			r.Post("/", experimentHandler.CreateExperiment)
			r.Get("/", experimentHandler.ListExperiments)
			r.Get("/max_id", experimentHandler.GetMaxID)
			r.Route("/{experiment_id}", func(r chi.Router) {
				r.Get("/", experimentHandler.GetExperiment)
				r.Put("/", experimentHandler.UpdateExperiment)
				r.Delete("/", experimentHandler.DeleteExperiment)
			})
		})

		r.Route("/runs", func(r chi.Router) {
			r.Post("/", runHandler.CreateRun)
			r.Get("/", runHandler.ListRuns)
			r.Get("/max_id", runHandler.GetMaxID)
			r.Route("/{run_id}", func(r chi.Router) {
				r.Get("/", runHandler.GetRun)
				r.Put("/", runHandler.UpdateRun)
				r.Delete("/", runHandler.DeleteRun)
			})
		})

		r.Route("/images", func(r chi.Router) {
			r.Post("/", imageHandler.CreateImage)
			r.Get("/", imageHandler.ListImages)
			r.Route("/{image_id}", func(r chi.Router) {
				r.Get("/", imageHandler.GetImage)
				r.Put("/", imageHandler.UpdateImage)
				r.Delete("/", imageHandler.DeleteImage)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/schema/recreate", setupHandler.RecreateSchema)
			r.Post("/seed", setupHandler.SeedData)
		})
	})

	serverAddr := ":" + cfg.Port
	logging.Default().Info("server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
