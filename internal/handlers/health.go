package handlers

import "net/http"

// Health reports process liveness. It carries no dependency checks: the
// service holds all state in memory.
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
