package handler

import (
	"net/http"

	"renove/internal/dto"
	"renove/internal/service"

	"github.com/gin-gonic/gin"
)

type PacientesHandler struct{ svc service.PacienteService }

func NewPacientesHandler(svc service.PacienteService) *PacientesHandler {
	return &PacientesHandler{svc: svc}
}

// Registrar godoc
// @Summary Registra la visita de un paciente
// @Tags pacientes
// @Accept json
// @Produce json
// @Param body body dto.RegistrarPacienteRequest true "Formulario de recepcion"
// @Success 201 {object} model.RegistroPaciente
// @Failure 422 {object} apierror.ValidationError
// @Failure 503 {object} apierror.APIError
// @Router /v1/pacientes [post]
func (h *PacientesHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPacienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListarHoy godoc
// @Summary Visitas registradas hoy
// @Tags pacientes
// @Produce json
// @Success 200 {object} dto.PacienteListResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/pacientes [get]
func (h *PacientesHandler) ListarHoy(c *gin.Context) {
	resp, err := h.svc.ListarHoy(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina una visita
// @Tags pacientes
// @Param id path int true "ID de la visita"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/pacientes/{id} [delete]
func (h *PacientesHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Limpiar godoc
// @Summary Elimina todas las visitas (requiere confirmacion "LIMPIAR TODO")
// @Tags pacientes
// @Accept json
// @Param body body dto.LimpiarRequest true "Confirmacion"
// @Success 204
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/pacientes/limpiar [post]
func (h *PacientesHandler) Limpiar(c *gin.Context) {
	var req dto.LimpiarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.LimpiarTodo(c.Request.Context(), req); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EstadisticasHoy godoc
// @Summary Totales del dia por metodo de pago
// @Tags estadisticas
// @Produce json
// @Success 200 {object} dto.EstadisticasDiarias
// @Router /v1/estadisticas/hoy [get]
func (h *PacientesHandler) EstadisticasHoy(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.EstadisticasHoy(c.Request.Context()))
}
