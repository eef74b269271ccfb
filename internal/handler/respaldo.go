package handler

import (
	"encoding/json"
	"net/http"

	"renove/internal/apierror"
	"renove/internal/dto"
	"renove/internal/service"

	"github.com/gin-gonic/gin"
)

// maxRespaldoBytes bounds an uploaded snapshot.
const maxRespaldoBytes = 20 << 20

type RespaldoHandler struct{ svc service.RespaldoService }

func NewRespaldoHandler(svc service.RespaldoService) *RespaldoHandler {
	return &RespaldoHandler{svc: svc}
}

// Exportar godoc
// @Summary Descarga un respaldo con todas las visitas y tratamientos personalizados
// @Tags respaldo
// @Produce json
// @Success 200 {object} dto.Respaldo
// @Failure 503 {object} apierror.APIError
// @Router /v1/respaldo [get]
func (h *RespaldoHandler) Exportar(c *gin.Context) {
	snap, err := h.svc.Exportar(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		fail(c, err)
		return
	}
	attachment(c, "application/json", h.svc.NombreArchivo(), data)
}

// Importar godoc
// @Summary Restaura un respaldo; cada coleccion presente reemplaza la guardada
// @Tags respaldo
// @Accept json
// @Produce json
// @Param body body dto.Respaldo true "Respaldo"
// @Success 200 {object} dto.ImportResultado
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/respaldo [post]
func (h *RespaldoHandler) Importar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRespaldoBytes)
	var entrada dto.RespaldoEntrada
	if err := c.ShouldBindJSON(&entrada); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	res, err := h.svc.Importar(c.Request.Context(), entrada)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
