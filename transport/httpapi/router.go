package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hush/internal/auth"
	"hush/internal/ephemeral"
	"hush/internal/fabric"
	"hush/internal/ratelimit"
	"hush/pkg/logger"
)

const maxBodyBytes = 512 * 1024 // §6.1 request body cap

type Deps struct {
	Account    *AccountHandlers
	Message    *MessageHandlers
	Issuer     *auth.Issuer
	Revocation auth.RevocationChecker
	Ephemeral  ephemeral.Store
	Hub        *fabric.Hub
	Logger     *logger.Logger
	MaxRPM     int
	CORSDomain string
	Production bool
	Version    string
}

// NewRouter wires the route table of §6.1/§6.2. middleware.Logger from chi
// is never mounted here — per §6.3/§7 the core must never emit per-request
// lines, even in the "any other level" branch of the log-level config.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(CORS(d.CORSDomain, d.Production))
	r.Use(bodyLimit)

	r.Get("/health", d.health)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(ratelimit.Middleware(d.Ephemeral, d.MaxRPM))

		api.Post("/accounts/register", d.Account.Register)
		api.Post("/accounts/challenge", d.Account.Challenge)
		api.Post("/accounts/verify", d.Account.Verify)

		api.Group(func(protected chi.Router) {
			protected.Use(auth.Middleware(d.Issuer, d.Revocation))

			protected.Post("/accounts/logout", d.Account.Logout)
			protected.Delete("/accounts/me", d.Account.DeleteAccount)

			protected.Get("/keys/{account_id}", d.Account.FetchBundle)
			protected.Get("/keys/prekeys/count", d.Account.PreKeyCount)
			protected.Put("/keys/prekeys", d.Account.ReplenishPreKeys)
			protected.Put("/keys/signed", d.Account.RotateSignedPreKey)

			protected.Post("/messages/send", d.Message.Send)
			protected.Get("/messages/receive", d.Message.Receive)
			protected.Delete("/messages/{id}", d.Message.Delete)
		})
	})

	r.Get("/ws", d.serveWS)

	return r
}

func (d Deps) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: d.Version})
}

func (d Deps) serveWS(w http.ResponseWriter, r *http.Request) {
	fabric.Serve(w, r, d.Hub, d.Issuer, d.Revocation, d.Logger)
}

func bodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
