package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/doctorchannel/apiserver/config"
	"github.com/doctorchannel/apiserver/internal/db"
	"github.com/doctorchannel/apiserver/internal/events"
	"github.com/doctorchannel/apiserver/internal/handlers"
	appmw "github.com/doctorchannel/apiserver/internal/middleware"
	"github.com/doctorchannel/apiserver/internal/mq"
	"github.com/doctorchannel/apiserver/internal/services"
	"github.com/doctorchannel/apiserver/internal/storage"
	"github.com/doctorchannel/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	authRateLimitRPS   = 5
	authRateLimitBurst = 10
)

// Server wraps the HTTP server, router and external clients. All
// dependencies are constructed here and passed down explicitly; nothing
// is registered globally.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	database   *mongo.Database
	queue      *mq.MQ
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	images, err := storage.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		_ = db.Close(database)
		return nil, err
	}
	if images != nil {
		if err := images.EnsureBucket(ctx); err != nil {
			_ = db.Close(database)
			return nil, err
		}
	}

	queue, err := mq.NewFromConfig(ctx, cfg.MQ)
	if err != nil {
		_ = db.Close(database)
		return nil, err
	}
	if queue == nil {
		log.Println("mq not configured, appointment events disabled")
	}

	userRepo := store.NewUserRepository(database)
	doctorRepo := store.NewDoctorRepository(database)
	appointmentRepo := store.NewAppointmentRepository(database)

	publisher := events.NewPublisher(queue)

	userService := services.NewUserService(userRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, publisher)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)

	authLimiter := appmw.NewRateLimiter(authRateLimitRPS, authRateLimitBurst)

	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(appmw.RateLimit(authLimiter))
			handlers.AuthRouter(r, userService)
		})
		r.Route("/doctors", func(r chi.Router) {
			handlers.DoctorRouter(r, doctorService, images)
		})
		r.Route("/appointments", func(r chi.Router) {
			handlers.AppointmentRouter(r, appointmentService)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		database:   database,
		queue:      queue,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.database != nil {
		_ = db.Close(s.database)
	}
	return s.httpServer.Close()
}
