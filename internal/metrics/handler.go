package metrics

import (
	"encoding/json"
	"net/http"
)

// Handler serves the current metrics snapshot as JSON.
func (c *Collector) Handler(strategy func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := c.metrics.Snapshot(strategy())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}
