// Package view renderiza las páginas HTML sobre un layout común, con cache de
// templates parseados. La presentación es deliberadamente mínima: el sistema
// es un back-office y las vistas sólo vuelcan datos de dominio.
package view

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	baseDir  string
	once     sync.Once
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"year":  func() int { return time.Now().Year() },
}

// resolveBaseDir detecta el directorio de templates tanto corriendo desde la
// raíz del repo como desde un subdirectorio (tests de paquetes internos).
func resolveBaseDir() {
	candidates := []string{"templates", "../templates", "../../templates", "../../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	// fallback relativo; el parseo va a fallar con un error claro
	baseDir = "templates"
}

func load(name string) (*template.Template, error) {
	tplCache.RLock()
	t, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return t, nil
	}
	layout := filepath.Join(baseDir, "layout.html")
	page := filepath.Join(baseDir, name)
	t, err := template.New("layout.html").Funcs(funcs).ParseFiles(layout, page)
	if err != nil {
		return nil, err
	}
	tplCache.Lock()
	tplCache.m[name] = t
	tplCache.Unlock()
	return t, nil
}

// Render ejecuta la página sobre el layout. data puede ser nil.
func Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	once.Do(resolveBaseDir)
	if data == nil {
		data = map[string]any{}
	}
	t, err := load(name)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, "layout.html", data)
}
