package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/blipzo-admin/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in app.maintenance.endpoints.
// An entry is either a route pattern, blocking every method, or "METHOD pattern"
// such as "POST /api/v1/admin/system/backups".
func middlewareMaintenance(cfg config.Config) Middleware {
	routes := make(map[string]struct{})
	if cfg != nil {
		for _, endpoint := range cfg.GetArray("app.maintenance.endpoints") {
			if endpoint = strings.Join(strings.Fields(endpoint), " "); endpoint != "" {
				routes[endpoint] = struct{}{}
			}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(routes) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			_, all := routes[route]
			_, method := routes[r.Method+" "+route]
			if all || method {
				writeJSON(w, errorResponse{
					Message: "Service is under maintenance",
					Code:    "ERROR_CODE_MAINTENANCE",
				}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
