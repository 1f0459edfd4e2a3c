package fact

import "net/http"

// Register registers the fact HTTP handlers with the given mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /fact", GetHandler{svc})
}
