package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nlitteri/taller-app/internal/config"
	"github.com/nlitteri/taller-app/internal/logger"
	"github.com/nlitteri/taller-app/internal/models"

	"github.com/disintegration/imaging"
	"gorm.io/gorm"
)

// Extensiones de imagen aceptadas para subir.
var allowedExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

type ImagenHandler struct {
	DB  *gorm.DB
	Cfg config.Config
}

func NewImagenHandler(db *gorm.DB, cfg config.Config) *ImagenHandler {
	return &ImagenHandler{DB: db, Cfg: cfg}
}

func (h *ImagenHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	repID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var rep models.Reparacion
	if err := h.DB.First(&rep, repID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	render(w, r, "imagen_form", map[string]any{"Reparacion": rep})
}

// Upload: POST /reparaciones/{id}/imagenes/nueva — acepta varios archivos en
// el campo "imagenes". Cada archivo se escribe a disco antes de insertar su
// fila; un corte entre ambos deja un archivo huérfano.
func (h *ImagenHandler) Upload(w http.ResponseWriter, r *http.Request) {
	repID, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if err := h.DB.First(&models.Reparacion{}, repID).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}

	maxBytes := h.Cfg.MaxUploadMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	descripcion := strings.TrimSpace(r.FormValue("descripcion"))

	for _, fh := range r.MultipartForm.File["imagenes"] {
		name := sanitizeFilename(filepath.Base(fh.Filename))
		ext := strings.ToLower(filepath.Ext(name))
		if name == "" || !allowedExts[ext] {
			continue
		}
		unique := fmt.Sprintf("rep_%d_%d_%s", repID, time.Now().Unix(), name)
		dst := filepath.Join(h.Cfg.UploadDir, unique)
		if err := h.saveFile(fh, dst); err != nil {
			logger.Get().WithField("file", unique).WithError(err).Error("image save failed")
			continue
		}
		h.thumbnail(dst)
		img := models.ReparacionImagen{ReparacionID: repID, Filename: unique, Descripcion: descripcion}
		if err := h.DB.Create(&img).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", repID), statusSeeOther)
}

// Delete: GET /reparaciones/imagenes/eliminar/{id} — errores al borrar
// archivos se ignoran en silencio.
func (h *ImagenHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var img models.ReparacionImagen
	if err := h.DB.First(&img, id).Error; err != nil {
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	if img.Filename != "" {
		_ = os.Remove(filepath.Join(h.Cfg.UploadDir, img.Filename))
		_ = os.Remove(filepath.Join(h.Cfg.UploadDir, "thumb_"+img.Filename))
	}
	h.DB.Delete(&models.ReparacionImagen{}, id)
	http.Redirect(w, r, fmt.Sprintf("/reparaciones/%d", img.ReparacionID), http.StatusSeeOther)
}

func (h *ImagenHandler) saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// thumbnail deja una versión de 200px de ancho al lado del original. Si la
// imagen no decodifica, se sigue sin thumbnail.
func (h *ImagenHandler) thumbnail(path string) {
	img, err := imaging.Open(path)
	if err != nil {
		return
	}
	small := imaging.Resize(img, 200, 0, imaging.Lanczos)
	thumb := filepath.Join(filepath.Dir(path), "thumb_"+filepath.Base(path))
	_ = imaging.Save(small, thumb)
}

// sanitizeFilename reduce el nombre original a [A-Za-z0-9._-].
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
