package infra

import (
	"renove/internal/dto"
	"renove/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	hojaPacientes = "Pacientes"
	hojaTotales   = "Totales"
	formatoMoneda = `"$"#,##0.00`
)

// GenerarCierreDiarioXLSX writes the daily report as a workbook with the
// visit list and the day's totals on separate sheets.
func GenerarCierreDiarioXLSX(registros []model.RegistroPaciente, stats dto.EstadisticasDiarias) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(hojaPacientes)
	if err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(hojaTotales); err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Fecha", "Sucursal", "Cliente", "Teléfono", "Tratamiento",
		"Regular", "Promoción", "Pagado", "Método", "Efectivo", "Tarjeta", "Observaciones"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(hojaPacientes, cell, v)
	}
	for i, r := range registros {
		row := i + 2
		values := []any{
			r.ID,
			r.Fecha.String(),
			r.Sucursal,
			r.Cliente,
			r.Telefono,
			r.Tratamiento,
			celda(r.CostoRegular),
			celda(r.Promocion),
			celda(r.Pago.PagoRealizado),
			r.Pago.Metodo.Etiqueta(),
			celda(r.Pago.Parte(model.MetodoEfectivo)),
			celda(r.Pago.Parte(model.MetodoTarjeta)),
			r.Observaciones,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(hojaPacientes, cell, v)
		}
	}

	_ = f.SetColWidth(hojaPacientes, "A", "A", 16)
	_ = f.SetColWidth(hojaPacientes, "B", "C", 12)
	_ = f.SetColWidth(hojaPacientes, "D", "D", 28)
	_ = f.SetColWidth(hojaPacientes, "E", "E", 14)
	_ = f.SetColWidth(hojaPacientes, "F", "F", 28)
	_ = f.SetColWidth(hojaPacientes, "G", "L", 13)
	_ = f.SetColWidth(hojaPacientes, "M", "M", 40)

	encabezado, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#428BCA"}, Pattern: 1},
	})
	numFmt := formatoMoneda
	dinero, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	_ = f.SetCellStyle(hojaPacientes, "A1", "M1", encabezado)
	if len(registros) > 0 {
		last, _ := excelize.CoordinatesToCellName(12, len(registros)+1)
		_ = f.SetCellStyle(hojaPacientes, "G2", last, dinero)
	}

	// ── Totales ──────────────────────────────────────────────────────────────
	totales := [][]any{
		{"Fecha", stats.Fecha.String()},
		{"Total pacientes", stats.TotalPacientes},
		{"Total regular", celda(stats.TotalRegular)},
		{"Total promociones", celda(stats.TotalPromociones)},
		{"Total pagado", celda(stats.TotalPagado)},
		{"Total efectivo", celda(stats.TotalEfectivo)},
		{"Total tarjeta", celda(stats.TotalTarjeta)},
		{"Total mixto", celda(stats.TotalMixto)},
		{"Mixto en efectivo", celda(stats.DesgloseMixto.Efectivo)},
		{"Mixto en tarjeta", celda(stats.DesgloseMixto.Tarjeta)},
	}
	for i, fila := range totales {
		for c, v := range fila {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+1)
			_ = f.SetCellValue(hojaTotales, cell, v)
		}
	}
	_ = f.SetColWidth(hojaTotales, "A", "A", 22)
	_ = f.SetColWidth(hojaTotales, "B", "B", 16)
	_ = f.SetCellStyle(hojaTotales, "B3", "B10", dinero)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// celda converts an amount for a numeric cell; two decimals are all the
// clinic ever records.
func celda(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
