package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nlitteri/taller-app/internal/models"
	"github.com/nlitteri/taller-app/internal/services"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

func reparacionRouter(conn *gorm.DB) chi.Router {
	svc := services.NewFacturaService(conn)
	rh := NewReparacionHandler(conn, svc)
	ih := NewItemHandler(conn)
	r := chi.NewRouter()
	r.Get("/vehiculos/{id}/reparaciones", rh.ListByVehiculo)
	r.Post("/vehiculos/{id}/reparaciones/nueva", rh.Create)
	r.Get("/reparaciones/{id}", rh.Detail)
	r.Get("/reparaciones/eliminar/{id}", rh.Delete)
	r.Post("/reparaciones/{id}/estado", rh.Estado)
	r.Post("/reparaciones/{id}/items/nuevo", ih.Create)
	return r
}

func TestReparacionCreateConEstadoPorDefecto(t *testing.T) {
	conn := testDB(t)
	r := reparacionRouter(conn)
	c := models.Cliente{Nombre: "Ana", Apellido: "García"}
	conn.Create(&c)
	v := models.Vehiculo{ClienteID: c.ID, Patente: "AB123CD"}
	conn.Create(&v)

	rec := do(r, postForm("/vehiculos/1/reparaciones/nueva", url.Values{
		"fecha":       {"2024-05-01"},
		"descripcion": {"Cambio de correa"},
	}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	var rep models.Reparacion
	if err := conn.First(&rep).Error; err != nil {
		t.Fatal(err)
	}
	if rep.Estado != models.EstadoIngresado {
		t.Errorf("estado = %q, want %q", rep.Estado, models.EstadoIngresado)
	}
	if rec.Header().Get("Location") != "/reparaciones/1" {
		t.Errorf("redirect = %q", rec.Header().Get("Location"))
	}
}

func TestReparacionDeleteBorraSoloItems(t *testing.T) {
	conn := testDB(t)
	r := reparacionRouter(conn)
	rep := seedReparacion(t, conn)
	conn.Create(&models.ReparacionImagen{ReparacionID: rep.ID, Filename: "rep_1_1_a.jpg"})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/reparaciones/eliminar/1", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	var count int64
	conn.Model(&models.Reparacion{}).Count(&count)
	if count != 0 {
		t.Error("la reparación sigue existiendo")
	}
	conn.Model(&models.ReparacionItem{}).Count(&count)
	if count != 0 {
		t.Error("los ítems tienen que borrarse con la reparación")
	}
	conn.Model(&models.ReparacionImagen{}).Count(&count)
	if count != 1 {
		t.Error("las imágenes quedan huérfanas, no se borran")
	}
}

func TestReparacionEstadoVacioNoActualiza(t *testing.T) {
	conn := testDB(t)
	r := reparacionRouter(conn)
	rep := seedReparacion(t, conn)

	rec := do(r, postForm("/reparaciones/1/estado", url.Values{"estado": {"  "}}))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("estado vacío: %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
	var saved models.Reparacion
	conn.First(&saved, rep.ID)
	if saved.Estado != models.EstadoEnProceso {
		t.Errorf("estado = %q, no tendría que cambiar", saved.Estado)
	}
}

func TestItemCreateGuardaConcepto(t *testing.T) {
	conn := testDB(t)
	r := reparacionRouter(conn)
	seedReparacion(t, conn)

	rec := do(r, postForm("/reparaciones/1/items/nuevo", url.Values{
		"concepto":        {"cambio de aceite"},
		"cantidad":        {"1"},
		"precio_unitario": {"500"},
	}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	var it models.ReparacionItem
	conn.Order("id DESC").First(&it)
	if it.Concepto != "CAMBIO DE ACEITE" {
		t.Errorf("concepto = %q, want mayúsculas", it.Concepto)
	}
	if it.Tipo != models.TipoServicio {
		t.Errorf("tipo = %q", it.Tipo)
	}
	var concepto models.ItemConcepto
	if err := conn.Where("nombre = ?", "CAMBIO DE ACEITE").First(&concepto).Error; err != nil {
		t.Error("el concepto tiene que quedar como sugerencia")
	}

	// repetir el concepto no duplica la sugerencia
	do(r, postForm("/reparaciones/1/items/nuevo", url.Values{
		"concepto": {"cambio de aceite"}, "cantidad": {"1"}, "precio_unitario": {"500"},
	}))
	var count int64
	conn.Model(&models.ItemConcepto{}).Where("nombre = ?", "CAMBIO DE ACEITE").Count(&count)
	if count != 1 {
		t.Errorf("hay %d sugerencias para el mismo concepto", count)
	}
}

func TestReparacionDetailMuestraTotal(t *testing.T) {
	conn := testDB(t)
	r := reparacionRouter(conn)
	seedReparacion(t, conn)

	rec := do(r, httptest.NewRequest(http.MethodGet, "/reparaciones/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "PASTILLAS") || !strings.Contains(body, "200.00") {
		t.Error("el detalle tiene que listar los ítems y el total")
	}
}
