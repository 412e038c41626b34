package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/shopsmart-be/internal/services"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// statusFor maps a service error kind onto its HTTP status code.
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindConflict:
		return http.StatusConflict
	case services.KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError logs err at a level matching its kind and writes the
// client-safe message.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	kind := services.KindOf(err)
	if kind == services.KindInfrastructure {
		log.Error().Err(err).Str("op", op).Str("path", r.URL.Path).Msg("Request failed")
	} else {
		log.Debug().Err(err).Str("op", op).Msg("Request rejected")
	}
	writeMessage(w, statusFor(kind), services.PublicMessage(err))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	return true
}
