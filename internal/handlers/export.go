package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nlitteri/taller-app/internal/logger"

	"github.com/xuri/excelize/v2"
)

// Export: GET /facturas/export — baja el listado de facturas confirmadas como
// .xlsx, con los mismos filtros desde/hasta del listado.
func (h *FacturaHandler) Export(w http.ResponseWriter, r *http.Request) {
	desde := strings.TrimSpace(r.URL.Query().Get("desde"))
	hasta := strings.TrimSpace(r.URL.Query().Get("hasta"))
	facturas, err := h.queryListado(desde, hasta)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	const sheet = "Facturas"
	index, err := f.NewSheet(sheet)
	if err != nil {
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	headers := []string{"Factura", "Fecha", "Cliente", "Patente", "Vehículo", "Total"}
	for col, hname := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, hname)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	var total float64
	for i, row := range facturas {
		fila := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", fila), row.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", fila), row.Fecha)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", fila), row.Apellido+", "+row.Nombre)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", fila), row.Patente)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", fila), row.Marca+" "+row.Modelo)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", fila), row.Total)
		total += row.Total
	}
	filaTotal := len(facturas) + 2
	f.SetCellValue(sheet, fmt.Sprintf("E%d", filaTotal), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", filaTotal), total)

	name := "facturas_" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		logger.Get().WithError(err).Error("xlsx write failed")
	}
}
