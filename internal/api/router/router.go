package router

import (
	"net/http"

	adminAPI "prize_wheel/internal/api/admin"
	gameAPI "prize_wheel/internal/api/game"
	apimw "prize_wheel/internal/api/middleware"
	"prize_wheel/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Deps struct {
	Game   *gameAPI.Handler
	Admin  *adminAPI.Handler
	Logger *zap.Logger
}

func New(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(apimw.Logger(deps.Logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(rr chi.Router) {
		// Game endpoints
		rr.Get("/wheel-config", deps.Game.Config)
		rr.Route("/games", func(gr chi.Router) {
			gr.Post("/", deps.Game.Create)
			gr.Post("/create", deps.Game.Create)
			gr.Get("/{id}", deps.Game.Get)
			gr.Post("/{id}/play", deps.Game.Play)
		})

		// Admin endpoints
		rr.Get("/db-admin", deps.Admin.Read)
		rr.Delete("/db-admin", deps.Admin.Clean)
		rr.Get("/clean-db", deps.Admin.Status)
		rr.Delete("/clean-db", deps.Admin.CleanAll)
	})

	return r
}
