package handler

import (
	"regexp"
	"strings"

	"renove/internal/infra"
	"renove/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var noArchivo = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// ReportesHandler renders printable documents from the visit register.
type ReportesHandler struct {
	svc     service.PacienteService
	clinica string
}

func NewReportesHandler(svc service.PacienteService, clinica string) *ReportesHandler {
	return &ReportesHandler{svc: svc, clinica: clinica}
}

// Comprobante godoc
// @Summary Comprobante de servicio de una visita
// @Tags reportes
// @Produce application/pdf
// @Param id path int true "ID de la visita"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/pacientes/{id}/comprobante.pdf [get]
func (h *ReportesHandler) Comprobante(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	r, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	data, err := infra.GenerarComprobantePDF(*r, h.clinica)
	if err != nil {
		fail(c, err)
		return
	}
	cliente := noArchivo.ReplaceAllString(strings.Join(strings.Fields(r.Cliente), "_"), "")
	attachment(c, contentTypePDF, "Comprobante_"+cliente+"_"+fechaArchivo(r.Fecha.String())+".pdf", data)
}

// CierrePDF godoc
// @Summary Nota de remision del dia (PDF)
// @Tags reportes
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 503 {object} apierror.APIError
// @Router /v1/reportes/diario.pdf [get]
func (h *ReportesHandler) CierrePDF(c *gin.Context) {
	lista, err := h.svc.ListarHoy(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	stats := service.CalcularEstadisticasDiarias(lista.Data, lista.Fecha)
	data, err := infra.GenerarCierreDiarioPDF(lista.Data, stats, h.clinica)
	if err != nil {
		fail(c, err)
		return
	}
	attachment(c, contentTypePDF, "Cierre_Diario_"+fechaArchivo(lista.Fecha.String())+".pdf", data)
}

// CierreXLSX godoc
// @Summary Registro del dia en hoja de calculo
// @Tags reportes
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 503 {object} apierror.APIError
// @Router /v1/reportes/diario.xlsx [get]
func (h *ReportesHandler) CierreXLSX(c *gin.Context) {
	lista, err := h.svc.ListarHoy(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	stats := service.CalcularEstadisticasDiarias(lista.Data, lista.Fecha)
	data, err := infra.GenerarCierreDiarioXLSX(lista.Data, stats)
	if err != nil {
		fail(c, err)
		return
	}
	attachment(c, contentTypeXLSX, "Cierre_Diario_"+fechaArchivo(lista.Fecha.String())+".xlsx", data)
}

// fechaArchivo turns "14/10/2026" into "14-10-2026".
func fechaArchivo(fecha string) string { return strings.ReplaceAll(fecha, "/", "-") }
