package api

import (
	"net/http"

	"bmi-advisor/internal/auth"
	"bmi-advisor/internal/calculator"

	"go.uber.org/zap"
)

// NewRouter registers every endpoint and wraps the mux in the middleware
// chain.
func NewRouter(authSvc *auth.Service, calc *calculator.Handler, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Account APIs
	mux.Handle("/api/v1/register", authSvc.RegisterHandler(log))
	mux.Handle("/api/v1/login", authSvc.LoginHandler(log))

	// Calculator APIs
	mux.HandleFunc("/api/v1/bmi", calc.Advise)
	mux.HandleFunc("/api/v1/categories", calc.Categories)
	mux.Handle("/api/v1/readings", authSvc.Middleware(http.HandlerFunc(calc.Readings)))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	return Chain(
		mux,
		Recovery(log),
		RequestID,
		AccessLog(log),
	)
}
