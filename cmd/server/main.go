package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/studyforge/backend/internal/auth"
	"github.com/studyforge/backend/internal/database"
	"github.com/studyforge/backend/internal/documents"
	"github.com/studyforge/backend/internal/generator"
	"github.com/studyforge/backend/internal/middleware"
	"github.com/studyforge/backend/internal/progression"
	"github.com/studyforge/backend/internal/quiz"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	docStore := documents.NewStore(db)
	progressService := progression.NewService(progression.NewStore(db))
	quizService := quiz.NewService(quiz.NewStore(db), docStore, generator.NewGenerator(), progressService)

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	docHandler := documents.NewHandler(docStore)
	progressHandler := progression.NewHandler(progressService)
	quizHandler := quiz.NewHandler(quizService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	authHandler.RegisterRoutes(api, protected)
	docHandler.RegisterRoutes(protected)
	progressHandler.RegisterRoutes(protected)
	quizHandler.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
