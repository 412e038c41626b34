package handlers

import (
	"net/http"
	"time"
)

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "ShopSmart Backend is running",
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// Root identifies the service for plain requests to "/".
func Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ShopSmart Backend Service"))
}
