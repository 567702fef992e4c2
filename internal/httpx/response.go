// Package httpx tiene los helpers JSON de las rutas no-HTML (health checks).
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorPayload es el cuerpo de toda respuesta JSON de error.
type ErrorPayload struct {
	Error string `json:"error"`
}

// JSON escribe el payload con el status dado. Si el payload no serializa,
// responde un 500 con un cuerpo fijo para no dejar JSON a medias.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		_ = err
	}
}

// JSONError escribe un error con el formato estándar {"error": msg}.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorPayload{Error: msg})
}
