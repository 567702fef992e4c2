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

func facturaRouter(conn *gorm.DB) chi.Router {
	svc := services.NewFacturaService(conn)
	fh := NewFacturaHandler(conn, svc)
	r := chi.NewRouter()
	r.Get("/reparaciones/{id}/factura", fh.View)
	r.Post("/facturas/{id}/descuento", fh.Descuento)
	r.Post("/facturas/{id}/confirmar", fh.Confirmar)
	r.Get("/facturas", fh.Listado)
	return r
}

func seedReparacion(t *testing.T, conn *gorm.DB) models.Reparacion {
	t.Helper()
	c := models.Cliente{Nombre: "Ana", Apellido: "García", Telefono: "1123456789"}
	conn.Create(&c)
	v := models.Vehiculo{ClienteID: c.ID, Patente: "AB123CD", Marca: "Ford", Modelo: "Ka"}
	conn.Create(&v)
	rep := models.Reparacion{VehiculoID: v.ID, Fecha: "2024-05-01", Estado: models.EstadoEnProceso, Descripcion: "Frenos"}
	conn.Create(&rep)
	conn.Create(&models.ReparacionItem{ReparacionID: rep.ID, Concepto: "PASTILLAS", Cantidad: 2, PrecioUnitario: 100})
	return rep
}

func TestFacturaViewCreaPresupuesto(t *testing.T) {
	conn := testDB(t)
	r := facturaRouter(conn)
	rep := seedReparacion(t, conn)

	rec := do(r, httptest.NewRequest(http.MethodGet, "/reparaciones/1/factura", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Presupuesto") {
		t.Error("la primera vista tiene que mostrar un presupuesto")
	}
	if !strings.Contains(body, "wa.me/541123456789") {
		t.Error("falta el link de WhatsApp con el número armado")
	}

	var f models.Factura
	if err := conn.Where("reparacion_id = ?", rep.ID).First(&f).Error; err != nil {
		t.Fatalf("no se creó la factura: %v", err)
	}
	if !f.EsPresupuesto || f.Total != 200 {
		t.Errorf("factura = %+v", f)
	}

	// segunda vista: no duplica
	do(r, httptest.NewRequest(http.MethodGet, "/reparaciones/1/factura", nil))
	var count int64
	conn.Model(&models.Factura{}).Count(&count)
	if count != 1 {
		t.Errorf("hay %d facturas para la misma reparación", count)
	}
}

func TestFacturaDescuentoYConfirmacion(t *testing.T) {
	conn := testDB(t)
	r := facturaRouter(conn)
	rep := seedReparacion(t, conn)

	do(r, httptest.NewRequest(http.MethodGet, "/reparaciones/1/factura", nil))
	var f models.Factura
	conn.Where("reparacion_id = ?", rep.ID).First(&f)

	rec := do(r, postForm("/facturas/1/descuento", url.Values{"descuento_global": {"25"}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("descuento status = %d", rec.Code)
	}
	conn.First(&f, f.ID)
	if f.DescuentoGlobal != 25 || f.Total != 150 {
		t.Errorf("tras descuento: %+v", f)
	}

	rec = do(r, postForm("/facturas/1/confirmar", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("confirmar status = %d", rec.Code)
	}
	conn.First(&f, f.ID)
	if f.EsPresupuesto {
		t.Error("la factura sigue como presupuesto")
	}
	var savedRep models.Reparacion
	conn.First(&savedRep, rep.ID)
	if savedRep.Estado != models.EstadoFacturada {
		t.Errorf("estado = %q", savedRep.Estado)
	}
}

func TestListadoSoloFacturasConfirmadas(t *testing.T) {
	conn := testDB(t)
	r := facturaRouter(conn)
	seedReparacion(t, conn)

	// presupuesto (sin confirmar): no aparece en finanzas
	do(r, httptest.NewRequest(http.MethodGet, "/reparaciones/1/factura", nil))

	rec := do(r, httptest.NewRequest(http.MethodGet, "/facturas", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "AB123CD") {
		t.Error("un presupuesto no puede figurar en el listado financiero")
	}

	do(r, postForm("/facturas/1/confirmar", nil))
	rec = do(r, httptest.NewRequest(http.MethodGet, "/facturas", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "AB123CD") || !strings.Contains(body, "García") {
		t.Error("la factura confirmada tiene que listarse con vehículo y cliente")
	}
}
