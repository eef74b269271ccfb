package handler

import (
	"net/http"
	"strings"

	"renove/internal/apierror"
	"renove/internal/dto"
	"renove/internal/model"
	"renove/internal/service"

	"github.com/gin-gonic/gin"
)

type TratamientosHandler struct{ svc service.CatalogoService }

func NewTratamientosHandler(svc service.CatalogoService) *TratamientosHandler {
	return &TratamientosHandler{svc: svc}
}

// Listar godoc
// @Summary Lista el catalogo de tratamientos (predefinidos y personalizados)
// @Tags tratamientos
// @Produce json
// @Param q query string false "Busqueda por nombre o descripcion"
// @Success 200 {array} dto.TratamientoResponse
// @Router /v1/tratamientos [get]
func (h *TratamientosHandler) Listar(c *gin.Context) {
	var ts []model.Tratamiento
	if q := c.Query("q"); strings.TrimSpace(q) != "" {
		ts = h.svc.Search(c.Request.Context(), q)
	} else {
		ts = h.svc.ListAll(c.Request.Context())
	}
	out := make([]dto.TratamientoResponse, len(ts))
	for i, t := range ts {
		out[i] = dto.TratamientoResponse{Tratamiento: t, Descuento: service.Descuento(t.CostoRegular, t.Promocion)}
	}
	c.JSON(http.StatusOK, out)
}

// Cotizar godoc
// @Summary Precio regular, promocion y pago sugerido de un tratamiento
// @Tags tratamientos
// @Produce json
// @Param nombre query string true "Nombre exacto del tratamiento"
// @Success 200 {object} dto.CotizacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/tratamientos/cotizacion [get]
func (h *TratamientosHandler) Cotizar(c *gin.Context) {
	nombre := c.Query("nombre")
	if nombre == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Parametro nombre requerido"))
		return
	}
	resp, err := h.svc.PriceQuote(c.Request.Context(), nombre)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Agrega un tratamiento personalizado
// @Tags tratamientos
// @Accept json
// @Produce json
// @Param body body dto.CrearTratamientoRequest true "Datos del tratamiento"
// @Success 201 {object} dto.TratamientoResponse
// @Failure 422 {object} apierror.ValidationError
// @Failure 503 {object} apierror.APIError
// @Router /v1/tratamientos [post]
func (h *TratamientosHandler) Crear(c *gin.Context) {
	var req dto.CrearTratamientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.svc.AddCustom(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TratamientoResponse{Tratamiento: *t, Descuento: service.Descuento(t.CostoRegular, t.Promocion)})
}

// Validar godoc
// @Summary Valida un tratamiento sin guardarlo
// @Tags tratamientos
// @Accept json
// @Produce json
// @Param body body dto.CrearTratamientoRequest true "Datos del tratamiento"
// @Success 200 {object} dto.ValidacionResponse
// @Router /v1/tratamientos/validar [post]
func (h *TratamientosHandler) Validar(c *gin.Context) {
	var req dto.CrearTratamientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.svc.Validate(req))
}

// Estadisticas godoc
// @Summary Conteos y promedios del catalogo
// @Tags tratamientos
// @Produce json
// @Success 200 {object} dto.CatalogoStats
// @Router /v1/tratamientos/estadisticas [get]
func (h *TratamientosHandler) Estadisticas(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats(c.Request.Context()))
}

// Exportar godoc
// @Summary Descarga el catalogo completo con estadisticas
// @Tags tratamientos
// @Produce json
// @Success 200 {object} dto.CatalogoExport
// @Router /v1/tratamientos/exportar [get]
func (h *TratamientosHandler) Exportar(c *gin.Context) {
	exp := h.svc.ExportCatalog(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="renove_catalogo.json"`)
	c.JSON(http.StatusOK, exp)
}
