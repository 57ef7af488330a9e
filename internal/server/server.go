package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/tradesim/scenariobuild/pkg/storage"
)

//go:embed web
var WebFS embed.FS

type Server struct {
	DB       *storage.DB
	Username string
	Password string
}

func New(db *storage.DB, user, pass string) *Server {
	return &Server{
		DB:       db,
		Username: user,
		Password: pass,
	}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	// API Group
	mux.HandleFunc("GET /api/catalog", s.basicAuth(s.handleCatalog))
	mux.HandleFunc("GET /api/slots", s.basicAuth(s.handleSlots))
	mux.HandleFunc("GET /api/scenario", s.basicAuth(s.handleLoadScenario))
	mux.HandleFunc("POST /api/scenario", s.basicAuth(s.handleSaveScenario))
	mux.HandleFunc("DELETE /api/scenario", s.basicAuth(s.handleDeleteScenario))
	mux.HandleFunc("POST /api/compose", s.basicAuth(s.handleCompose))
	mux.HandleFunc("POST /api/validate", s.basicAuth(s.handleValidate))
	mux.HandleFunc("POST /api/migrate", s.basicAuth(s.handleMigrate))
	mux.HandleFunc("GET /api/gamedata", s.basicAuth(s.handleGameData))

	// Static Files
	webRoot, err := fs.Sub(WebFS, "web")
	if err != nil {
		return err
	}
	fileServer := http.FileServer(http.FS(webRoot))
	mux.Handle("/", s.basicAuthMiddlewareForStatic(fileServer))

	log.Printf("Starting editor server on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) basicAuthMiddlewareForStatic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Username == "" && s.Password == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.Username || pass != s.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
