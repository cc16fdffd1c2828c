package rest

import (
	"context"
	"net/http"
	"time"

	"property-list-service/internal/constants"
	core_port "property-list-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// NewRouter собирает маршруты; вынесено отдельно, чтобы роутер можно было проверить в тестах.
func NewRouter(cfg ServerConfig,
	screenHandler *ScreenHandler,
	pageHandler *PageHandler,
	eventsHandler *EventsHandler,
	baseLogger core_port.LoggerPort) http.Handler {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", screenHandler.Health)

	// экран в оболочке с заголовком
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/properties", http.StatusFound)
	})
	r.Get("/properties", pageHandler.ShowScreen)
	r.Post("/properties/page/{page}", pageHandler.SelectPage)
	r.Get(constants.DefaultImagePath, pageHandler.DefaultImage)

	r.Route("/api/v1/screens", func(r chi.Router) {
		r.Post("/", screenHandler.MountScreen)
		r.Get("/{screenID}", screenHandler.GetScreen)
		r.Delete("/{screenID}", screenHandler.UnmountScreen)
		r.Post("/{screenID}/pages/{page}", screenHandler.LoadPage)
		r.Get("/{screenID}/events", eventsHandler.Subscribe)
	})

	return r
}

func NewServer(cfg ServerConfig, handler http.Handler, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
