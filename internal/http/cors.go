package httpx

import "net/http"

// cors allows the configured frontend origin and answers preflights. The
// auth header must be listed explicitly or gated requests fail preflight.
func (r *Router) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if r.corsOrigin != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", r.corsOrigin)
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+AuthHeader)
		}
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, req)
	}
}
