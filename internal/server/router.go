package server

import (
	"context"
	"net/http"

	"github.com/nlitteri/taller-app/internal/auth"
	"github.com/nlitteri/taller-app/internal/config"
	"github.com/nlitteri/taller-app/internal/handlers"
	"github.com/nlitteri/taller-app/internal/httpx"
	"github.com/nlitteri/taller-app/internal/middleware"
	"github.com/nlitteri/taller-app/internal/models"
	"github.com/nlitteri/taller-app/internal/services"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// New arma el router completo. Todas las rutas salvo login y health pasan por
// RequireAuth; usuarios y backup además por RequireAdmin.
func New(dbConn *gorm.DB, cfg config.Config) http.Handler {
	// El principal se resuelve contra la base en cada request: un usuario
	// borrado pierde la sesión de inmediato y los cambios de rol pegan al toque.
	auth.SetResolver(func(_ context.Context, uid uint) *auth.Principal {
		var u models.User
		if err := dbConn.First(&u, uid).Error; err != nil {
			return nil
		}
		return &auth.Principal{ID: u.ID, Username: u.Username, Rol: u.Rol}
	})

	facturaSvc := services.NewFacturaService(dbConn)
	dashboardSvc := services.NewDashboardService(dbConn)

	ah := handlers.NewAuthHandler(dbConn)
	ch := handlers.NewClienteHandler(dbConn)
	vh := handlers.NewVehiculoHandler(dbConn)
	rh := handlers.NewReparacionHandler(dbConn, facturaSvc)
	ih := handlers.NewItemHandler(dbConn)
	imh := handlers.NewImagenHandler(dbConn, cfg)
	fh := handlers.NewFacturaHandler(dbConn, facturaSvc)
	gh := handlers.NewGastoHandler(dbConn)
	cih := handlers.NewCitaHandler(dbConn)
	uh := handlers.NewUsuarioHandler(dbConn)
	dh := handlers.NewDashboardHandler(dashboardSvc, cfg)
	bh := handlers.NewBackupHandler(cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.Recover)
	r.Use(auth.Middleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := dbConn.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "db unavailable")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/login", ah.LoginForm)
	r.Post("/login", ah.Login)
	r.Get("/logout", ah.Logout)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)

		r.Get("/", dh.Home)

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", ch.List)
			r.Get("/nuevo", ch.NewForm)
			r.Post("/nuevo", ch.Create)
			r.Get("/editar/{id}", ch.EditForm)
			r.Post("/editar/{id}", ch.Update)
			r.Get("/eliminar/{id}", ch.Delete)
			r.Get("/{id}/vehiculos", vh.ListByCliente)
			r.Get("/{id}/vehiculos/nuevo", vh.NewForm)
			r.Post("/{id}/vehiculos/nuevo", vh.Create)
		})

		r.Route("/vehiculos", func(r chi.Router) {
			r.Get("/editar/{id}", vh.EditForm)
			r.Post("/editar/{id}", vh.Update)
			r.Get("/eliminar/{id}", vh.Delete)
			r.Get("/{id}/reparaciones", rh.ListByVehiculo)
			r.Get("/{id}/reparaciones/nueva", rh.NewForm)
			r.Post("/{id}/reparaciones/nueva", rh.Create)
		})

		r.Route("/reparaciones", func(r chi.Router) {
			r.Get("/editar/{id}", rh.EditForm)
			r.Post("/editar/{id}", rh.Update)
			r.Get("/eliminar/{id}", rh.Delete)
			r.Get("/imagenes/eliminar/{id}", imh.Delete)
			r.Get("/{id}", rh.Detail)
			r.Post("/{id}/estado", rh.Estado)
			r.Get("/{id}/items/nuevo", ih.NewForm)
			r.Post("/{id}/items/nuevo", ih.Create)
			r.Get("/{id}/imagenes/nueva", imh.NewForm)
			r.Post("/{id}/imagenes/nueva", imh.Upload)
			r.Get("/{id}/factura", fh.View)
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/editar/{id}", ih.EditForm)
			r.Post("/editar/{id}", ih.Update)
			r.Get("/eliminar/{id}", ih.Delete)
			r.Get("/concepto/eliminar/{id}", ih.ConceptoDelete)
		})

		r.Route("/facturas", func(r chi.Router) {
			r.Get("/", fh.Listado)
			r.Get("/export", fh.Export)
			r.Post("/{id}/descuento", fh.Descuento)
			r.Post("/{id}/confirmar", fh.Confirmar)
		})

		r.Route("/gastos", func(r chi.Router) {
			r.Get("/", gh.List)
			r.Get("/nuevo", gh.NewForm)
			r.Post("/nuevo", gh.Create)
			r.Get("/eliminar/{id}", gh.Delete)
		})

		r.Route("/citas", func(r chi.Router) {
			r.Get("/", cih.List)
			r.Get("/nueva", cih.NewForm)
			r.Post("/nueva", cih.Create)
			r.Get("/editar/{id}", cih.EditForm)
			r.Post("/editar/{id}", cih.Update)
			r.Get("/eliminar/{id}", cih.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/usuarios", uh.List)
			r.Get("/usuarios/nuevo", uh.NewForm)
			r.Post("/usuarios/nuevo", uh.Create)
			r.Post("/backup", bh.Run)
		})
	})

	return r
}
