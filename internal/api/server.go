package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/breakfree/internal/service"
)

type Server struct {
	mx            *chi.Mux
	userService   service.UserServiceI
	ledgerService service.LedgerServiceI
	jwtService    JWTServiceI
	watcher       ProfileWatcherI
}

type ServicesList struct {
	UserService   service.UserServiceI
	LedgerService service.LedgerServiceI
	JwtService    JWTServiceI
	Watcher       ProfileWatcherI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:            chi.NewMux(),
		userService:   servicesOptions.UserService,
		ledgerService: servicesOptions.LedgerService,
		jwtService:    servicesOptions.JwtService,
		watcher:       servicesOptions.Watcher,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Post("/entries", s.LogEntry)
			r.Get("/entries", s.GetEntries)
			r.Get("/summary", s.GetSummary)
			r.Put("/profile/cost", s.SetCostPerWeek)
			r.Post("/profile/spend", s.AddManualSpend)
			r.Get("/profile/stream", s.StreamProfile)
			r.Put("/account/password", s.ChangePassword)
			r.Delete("/account", s.DeleteAccount)
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}
