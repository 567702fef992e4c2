package handlers

import (
	"net/http"
	"time"

	"github.com/nlitteri/taller-app/internal/config"
	"github.com/nlitteri/taller-app/internal/db"
	"github.com/nlitteri/taller-app/internal/logger"
	"github.com/nlitteri/taller-app/internal/services"
)

type DashboardHandler struct {
	Svc *services.DashboardService
	Cfg config.Config
}

func NewDashboardHandler(svc *services.DashboardService, cfg config.Config) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Cfg: cfg}
}

// Home: GET / — resumen del taller más el timestamp del último backup.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.Armar(time.Now())
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	data := map[string]any{"Resumen": res}
	if t, ok := db.LastBackupTime(h.Cfg.BackupDir); ok {
		data["UltimoBackup"] = t.Format("2006-01-02 15:04")
	}
	render(w, r, "dashboard", data)
}

// BackupHandler dispara la copia manual, sólo admin.
type BackupHandler struct {
	Cfg config.Config
}

func NewBackupHandler(cfg config.Config) *BackupHandler {
	return &BackupHandler{Cfg: cfg}
}

// Run: POST /backup — copia completa y vuelta al dashboard.
func (h *BackupHandler) Run(w http.ResponseWriter, r *http.Request) {
	if path, err := db.Backup(h.Cfg.DBPath, h.Cfg.BackupDir); err != nil {
		logger.Get().WithError(err).Error("manual backup failed")
	} else if path != "" {
		logger.Get().WithField("path", path).Info("manual backup written")
	}
	http.Redirect(w, r, "/", statusSeeOther)
}
