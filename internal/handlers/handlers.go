// Package handlers implementa las rutas del back-office: un archivo por
// entidad, formularios server-rendered y redirects tipo PRG. Los padres
// inexistentes no son error visible: se redirige al listado seguro más cercano.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/nlitteri/taller-app/internal/auth"
	"github.com/nlitteri/taller-app/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Explicit constant for 303 See Other (Post/Redirect/Get)
const statusSeeOther = 303

// render agrega el principal logueado (si hay) para la barra de navegación.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Principal"]; !ok {
		if p, pok := auth.FromContext(r.Context()); pok {
			data["Principal"] = p
		}
	}
	if err := view.Render(w, r, name+".html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error")); werr != nil {
			_ = werr
		}
	}
}

// urlID parsea el parámetro de ruta como id. 0/false si no es numérico.
func urlID(r *http.Request, name string) (uint, bool) {
	v := chi.URLParam(r, name)
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// formFloat coerciona el campo a float64: vacío o no numérico valen 0.
func formFloat(r *http.Request, name string) float64 {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
