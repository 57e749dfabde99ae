package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the session endpoints onto the given router under
// the /sessions prefix.
func RegisterRoutes(r chi.Router, api *API) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", api.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", api.GetSession)
			r.Delete("/", api.DeleteSession)
			r.Post("/keys", api.PressKey)
		})
	})
}
