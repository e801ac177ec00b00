package restapi

import "net/http"

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/auth/signup", api.limited(api.signupHandler))
	mux.Handle("POST /api/auth/login", api.limited(api.loginHandler))
	mux.Handle("GET /api/auth/account", api.requireAuth(api.accountHandler))

	mux.Handle("GET /api/hospitals", api.limited(api.hospitalsHandler))
	mux.Handle("GET /api/hospitals/{id}", api.limited(api.hospitalHandler))
	mux.Handle("GET /api/hospitals-for-location", api.limited(api.hospitalsForLocationHandler))
	mux.Handle("GET /api/treatments", api.limited(api.treatmentsHandler))
	mux.Handle("GET /api/compare", api.limited(api.compareHandler))
	mux.Handle("GET /api/status", api.limited(api.statusHandler))
}

// limited wraps a handler with the per-client rate limiter
func (api *RestAPI) limited(final handlerFunc) http.Handler {
	return api.rateLimiter(http.HandlerFunc(final))
}
