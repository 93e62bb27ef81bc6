package monitor

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateMonitor)
	r.Get("/", h.ListMonitors)
	r.Get("/{monitorID}", h.GetMonitor)
	r.Delete("/{monitorID}", h.DeleteMonitor)

	return r
}

/*
- POST: /monitors  -> create monitor
	body : CreateMonitorRequest
	resp : Monitor (201) | invalid_input (400)

- GET: /monitors  -> list monitors ordered by id
	resp : ListMonitorsResponse

- GET: /monitors/{monitorID} -> monitor and its last check result
	resp : Details | not_found (404)

- DELETE: /monitors/{monitorID} -> delete monitor and its last result
	resp : DeleteMonitorResponse | not_found (404)

storage_unavailable maps to 503 on every route.
*/
