package httpserver

import (
	"net/http"

	"energytrack/backend/services/cost-service/internal/http/handlers"
)

// Routes groups HTTP handlers.
type Routes struct {
	Costs   *handlers.CostHandler
	Reports *handlers.ReportHandler
	Health  http.HandlerFunc
}

// NewRouter registers service endpoints. Method mismatches get 405 from the mux.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Costs != nil {
		mux.HandleFunc("POST /energy-cost", routes.Costs.Create)
		mux.HandleFunc("GET /energy-cost", routes.Costs.List)
		mux.HandleFunc("GET /energy-cost/pricing/info", routes.Costs.Pricing)
		mux.HandleFunc("GET /energy-cost/{id}", routes.Costs.Get)
		mux.HandleFunc("PUT /energy-cost/{id}", routes.Costs.Update)
		mux.HandleFunc("DELETE /energy-cost/{id}", routes.Costs.Delete)
	}
	if routes.Reports != nil {
		mux.HandleFunc("GET /energy-cost/reports/{period}/{userId}", routes.Reports.Report)
		mux.HandleFunc("GET /energy-cost/summary", routes.Reports.Summary)
	}
	if routes.Health != nil {
		mux.HandleFunc("GET /health", routes.Health)
	}
	return mux
}
