package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// SetWebUIRoutes serves the browser client bundle and the CSV asset from
// staticDir. The API owns /api/; everything else is static.
func SetWebUIRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		return
	}

	router := httprouter.New()
	router.ServeFiles("/static/*filepath", http.Dir(staticDir))

	mux.Handle("GET /static/", router)
	mux.HandleFunc("GET /{$}", indexHandler)
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusMovedPermanently)
}
