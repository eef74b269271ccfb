package infra

// pdf.go: printable documents using go-pdf/fpdf.
//   - Comprobante de Servicio: one visit, signed by the client, with coupon.
//   - Nota de Remisión: the day's visits, totals and closing signatures.
//
// Both are A4 portrait and rendered in memory; callers stream the bytes.

import (
	"bytes"
	"fmt"

	"renove/internal/dto"
	"renove/internal/model"
	"renove/internal/moneda"

	"github.com/go-pdf/fpdf"
)

const (
	margen        = 20.0
	anchoPagina   = 210.0
	altoPagina    = 297.0
	anchoUtil     = anchoPagina - 2*margen
	textoLegal    = "Al firmar, confirmo que leí y resolví mis dudas. Acepto los riesgos y beneficios del tratamiento."
	cuponOferta   = "Facial Rejuveness $1,500 (antes $3,500)"
	cuponVigencia = "Válido únicamente en su próxima cita"
)

// documento wraps fpdf with the cp1252 translator so accented text renders
// with the core fonts.
type documento struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func nuevoDocumento() *documento {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margen, margen, margen)
	pdf.SetAutoPageBreak(true, margen)
	pdf.AddPage()
	return &documento{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (d *documento) fuente(estilo string, tam float64) { d.pdf.SetFont("Helvetica", estilo, tam) }

func (d *documento) linea(h float64, txt, align string) {
	d.pdf.CellFormat(anchoUtil, h, d.tr(txt), "", 1, align, false, 0, "")
}

func (d *documento) seccion(titulo string) {
	d.fuente("B", 12)
	d.linea(8, titulo, "L")
	d.fuente("", 12)
}

func (d *documento) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// encabezado prints the clinic name, the document title and the
// branch/date line.
func (d *documento) encabezado(clinica, titulo, sucursal string, fecha model.Fecha) {
	d.fuente("B", 18)
	d.linea(8, clinica, "C")
	d.fuente("", 14)
	d.linea(8, titulo, "C")
	d.pdf.Ln(7)

	d.fuente("", 12)
	half := anchoUtil / 2
	d.pdf.CellFormat(half, 8, d.tr("Sucursal: "+sucursal), "", 0, "L", false, 0, "")
	d.pdf.CellFormat(half, 8, d.tr("Fecha: "+fecha.Larga()), "", 1, "R", false, 0, "")
	d.pdf.Ln(10)
}

// ── Comprobante de Servicio ──────────────────────────────────────────────────

// GenerarComprobantePDF renders the single-visit receipt.
func GenerarComprobantePDF(r model.RegistroPaciente, clinica string) ([]byte, error) {
	d := nuevoDocumento()
	d.encabezado(clinica, "Comprobante de Servicio", r.Sucursal, r.Fecha)

	d.seccion("INFORMACIÓN DEL CLIENTE")
	d.linea(6, "Cliente: "+r.Cliente, "L")
	d.linea(6, "Teléfono: "+r.Telefono, "L")
	d.linea(6, "Tratamiento: "+r.Tratamiento, "L")
	d.pdf.Ln(10)

	d.seccion("DETALLE ECONÓMICO")
	d.linea(6, "Precio Regular: "+moneda.Formatear(r.CostoRegular), "L")
	d.linea(8, "Precio con Promoción: "+moneda.Formatear(r.Promocion), "L")
	d.fuente("B", 12)
	d.linea(8, "TOTAL PAGADO: "+moneda.Formatear(r.Pago.PagoRealizado), "L")
	d.pdf.Ln(10)

	d.seccion("MÉTODO DE PAGO")
	if r.Pago.Metodo == model.MetodoMixto {
		d.linea(6, "Pago Mixto:", "L")
		d.linea(6, "  • Efectivo: "+moneda.Formatear(r.Pago.Parte(model.MetodoEfectivo)), "L")
		d.linea(6, "  • Tarjeta: "+moneda.Formatear(r.Pago.Parte(model.MetodoTarjeta)), "L")
	} else {
		d.linea(6, r.Pago.Metodo.Etiqueta()+": "+moneda.Formatear(r.Pago.PagoRealizado), "L")
	}
	d.pdf.Ln(10)

	if r.Observaciones != "" {
		d.seccion("OBSERVACIONES")
		d.pdf.MultiCell(anchoUtil, 6, d.tr(r.Observaciones), "", "L", false)
		d.pdf.Ln(10)
	}

	// Firma del cliente
	d.pdf.Ln(20)
	y := d.pdf.GetY()
	d.pdf.Line(margen, y, anchoPagina-margen, y)
	d.pdf.Ln(3)
	d.fuente("", 10)
	d.linea(6, "Firma del Cliente", "C")
	d.pdf.Ln(8)
	d.fuente("", 9)
	d.pdf.MultiCell(anchoUtil, 5, d.tr(textoLegal), "", "C", false)

	// The coupon is only printed when it fits on the same page.
	if d.pdf.GetY() <= altoPagina-60 {
		d.pdf.Ln(10)
		top := d.pdf.GetY()
		d.pdf.SetDrawColor(0, 0, 0)
		d.pdf.SetLineWidth(0.5)
		d.pdf.Rect(margen, top, anchoUtil, 30, "D")
		d.pdf.SetY(top + 4)
		d.fuente("B", 11)
		d.linea(8, "CUPÓN DE DESCUENTO", "C")
		d.fuente("", 10)
		d.linea(6, cuponOferta, "C")
		d.linea(6, cuponVigencia, "C")
	}

	return d.bytes()
}

// ── Nota de Remisión – Registro Diario ───────────────────────────────────────

type columna struct {
	titulo string
	ancho  float64
	valor  func(model.RegistroPaciente) string
}

var columnasDiario = []columna{
	{"Cliente", 24, func(r model.RegistroPaciente) string { return r.Cliente }},
	{"Teléfono", 20, func(r model.RegistroPaciente) string { return r.Telefono }},
	{"Tratamiento", 28, func(r model.RegistroPaciente) string { return r.Tratamiento }},
	{"Regular", 17, func(r model.RegistroPaciente) string { return moneda.Formatear(r.CostoRegular) }},
	{"Promoción", 17, func(r model.RegistroPaciente) string { return moneda.Formatear(r.Promocion) }},
	{"Pagado", 17, func(r model.RegistroPaciente) string { return moneda.Formatear(r.Pago.PagoRealizado) }},
	{"Método", 20, EtiquetaPago},
	{"Observaciones", 27, func(r model.RegistroPaciente) string { return r.Observaciones }},
}

// EtiquetaPago describes the payment for tables, e.g. "Mixto (E:$500.00 T:$500.00)".
func EtiquetaPago(r model.RegistroPaciente) string {
	if r.Pago.Metodo == model.MetodoMixto {
		return fmt.Sprintf("Mixto (E:%s T:%s)",
			moneda.Formatear(r.Pago.Parte(model.MetodoEfectivo)),
			moneda.Formatear(r.Pago.Parte(model.MetodoTarjeta)))
	}
	return r.Pago.Metodo.Etiqueta()
}

// SucursalDelDia is the branch printed on daily reports.
func SucursalDelDia(registros []model.RegistroPaciente) string {
	if len(registros) == 0 {
		return "Todas las sucursales"
	}
	return registros[0].Sucursal
}

// GenerarCierreDiarioPDF renders the daily closing report for the records of
// stats.Fecha.
func GenerarCierreDiarioPDF(registros []model.RegistroPaciente, stats dto.EstadisticasDiarias, clinica string) ([]byte, error) {
	d := nuevoDocumento()
	d.encabezado(clinica, "Nota de Remisión – Registro Diario", SucursalDelDia(registros), stats.Fecha)

	if len(registros) == 0 {
		d.fuente("", 12)
		d.linea(8, "No hay pacientes registrados para el día de hoy.", "L")
		d.pdf.Ln(12)
	} else {
		d.tablaPacientes(registros)
		d.pdf.Ln(10)
	}

	d.seccion("TOTALES DEL DÍA")
	d.linea(6, fmt.Sprintf("Total Pacientes del Día: %d", stats.TotalPacientes), "L")
	d.linea(6, "Total Promociones Aplicadas: "+moneda.Formatear(stats.TotalPromociones), "L")
	d.linea(6, "Total Pagado Hoy: "+moneda.Formatear(stats.TotalPagado), "L")
	d.pdf.Ln(10)

	d.seccion("TOTALES POR MÉTODO DE PAGO")
	d.linea(6, "Total en Efectivo: "+moneda.Formatear(stats.TotalEfectivo), "L")
	d.linea(6, "Total en Tarjeta: "+moneda.Formatear(stats.TotalTarjeta), "L")
	d.linea(6, "Total Mixto: "+moneda.Formatear(stats.TotalMixto), "L")
	if stats.TotalMixto.IsPositive() {
		d.linea(6, "  • Efectivo (mixto): "+moneda.Formatear(stats.DesgloseMixto.Efectivo), "L")
		d.linea(6, "  • Tarjeta (mixto): "+moneda.Formatear(stats.DesgloseMixto.Tarjeta), "L")
	}
	d.pdf.Ln(15)

	if d.pdf.GetY() > altoPagina-80 {
		d.pdf.AddPage()
	}
	d.seccion("FIRMAS Y COMENTARIOS")
	d.pdf.Ln(15)
	y := d.pdf.GetY()
	d.pdf.Line(margen, y, 80, y)
	d.pdf.Line(110, y, anchoPagina-margen, y)
	d.pdf.Ln(3)
	d.pdf.SetX(margen + 15)
	d.pdf.CellFormat(60, 6, "Responsable de Caja", "", 0, "L", false, 0, "")
	d.pdf.SetX(125)
	d.pdf.CellFormat(50, 6, d.tr("Médico"), "", 1, "L", false, 0, "")
	d.pdf.Ln(15)
	d.linea(8, "Comentarios o Incidencias:", "L")
	d.pdf.Ln(4)
	for i := 0; i < 4; i++ {
		y = d.pdf.GetY()
		d.pdf.Line(margen, y, anchoPagina-margen, y)
		d.pdf.Ln(8)
	}

	return d.bytes()
}

func (d *documento) tablaPacientes(registros []model.RegistroPaciente) {
	d.fuente("B", 8)
	d.pdf.SetFillColor(66, 139, 202)
	d.pdf.SetTextColor(255, 255, 255)
	for _, c := range columnasDiario {
		d.pdf.CellFormat(c.ancho, 7, d.tr(c.titulo), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.fuente("", 7)
	d.pdf.SetTextColor(0, 0, 0)
	for _, r := range registros {
		for _, c := range columnasDiario {
			d.pdf.CellFormat(c.ancho, 6, d.recortar(c.valor(r), c.ancho-2), "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
}

// recortar shortens txt (already translated) to fit w millimetres.
func (d *documento) recortar(txt string, w float64) string {
	s := d.tr(txt)
	if d.pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && d.pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}
