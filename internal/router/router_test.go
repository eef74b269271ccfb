package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"renove/internal/config"
	"renove/internal/infra"
	"renove/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clinicaTZ = time.FixedZone("CST", -6*3600)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:                "test",
		RateLimitPerMinute: 1000,
		StorageDriver:      config.DriverMemory,
		ClinicName:         "RENOVÉ CLÍNICA & SPA",
	}
	store := repository.NewGuardedStore(repository.NewMemoryStore(), infra.NewCircuitBreaker(infra.DefaultCBConfig()))
	tick := time.Date(2026, 10, 14, 10, 0, 0, 0, clinicaTZ)
	now := func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	return New(cfg, store, now)
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

var visitaBotox = map[string]any{
	"sucursal":       "Polanco",
	"cliente":        "Ana López",
	"telefono":       "5512345678",
	"tratamiento":    "Botox Full",
	"costo_regular":  6500,
	"promocion":      2999,
	"pago_realizado": "2999",
	"metodo_pago":    "Efectivo",
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "memory", body["driver"])
	assert.Equal(t, "closed", body["breaker"])
}

func TestTratamientos_Cotizacion(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodGet, "/v1/tratamientos/cotizacion?nombre=Botox%20Full", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"costo_regular":"6500","promocion":"2999","pago_sugerido":"2999"}`, w.Body.String())

	w = do(r, http.MethodGet, "/v1/tratamientos/cotizacion?nombre=Rinomodelaci%C3%B3n", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Tratamiento no encontrado"}`, w.Body.String())

	w = do(r, http.MethodGet, "/v1/tratamientos/cotizacion", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTratamientos_CrearYListar(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/v1/tratamientos", map[string]any{
		"nombre": "Dermapen", "costo_regular": 2000, "promocion": 1500, "descripcion": "Microagujas",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Dermapen", decode(t, w)["nombre"])

	w = do(r, http.MethodPost, "/v1/tratamientos", map[string]any{
		"nombre": "Caro", "costo_regular": 100, "promocion": 200,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodGet, "/v1/tratamientos?q=dermapen", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lista []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lista))
	require.Len(t, lista, 1)
	assert.Equal(t, true, lista[0]["custom"])
}

func TestPacientes_Registrar(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/v1/pacientes", visitaBotox)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	creado := decode(t, w)
	assert.Equal(t, "14/10/2026", creado["fecha"])

	w = do(r, http.MethodPost, "/v1/pacientes", map[string]any{
		"sucursal": "Polanco", "tratamiento": "Botox Full", "metodo_pago": "efectivo", "pago_realizado": "abc",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Error de validacion", body["detail"])
	assert.Contains(t, body["errores"], "Pago realizado debe ser un número válido")
	assert.Contains(t, body["errores"], "Cliente es requerido")

	w = do(r, http.MethodGet, "/v1/pacientes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	w = do(r, http.MethodGet, "/v1/estadisticas/hoy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)
	assert.Equal(t, "2999", stats["total_efectivo"])
	assert.EqualValues(t, 1, stats["total_pacientes"])
}

func TestPacientes_EliminarYLimpiar(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/v1/pacientes", visitaBotox)
	require.Equal(t, http.StatusCreated, w.Code)
	id := int64(decode(t, w)["id"].(float64))

	w = do(r, http.MethodDelete, "/v1/pacientes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/v1/pacientes/"+jsonInt(id), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodDelete, "/v1/pacientes/"+jsonInt(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	do(r, http.MethodPost, "/v1/pacientes", visitaBotox)
	w = do(r, http.MethodPost, "/v1/pacientes/limpiar", map[string]any{"confirmacion": "limpiar todo"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w = do(r, http.MethodPost, "/v1/pacientes/limpiar", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/v1/pacientes/limpiar", map[string]any{"confirmacion": "LIMPIAR TODO"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodGet, "/v1/pacientes", nil)
	assert.EqualValues(t, 0, decode(t, w)["total"])
}

func jsonInt(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestReportes(t *testing.T) {
	r := newTestRouter(t)
	w := do(r, http.MethodPost, "/v1/pacientes", visitaBotox)
	require.Equal(t, http.StatusCreated, w.Code)
	id := int64(decode(t, w)["id"].(float64))

	w = do(r, http.MethodGet, "/v1/pacientes/"+jsonInt(id)+"/comprobante.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Comprobante_Ana_López_14-10-2026.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = do(r, http.MethodGet, "/v1/reportes/diario.pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Cierre_Diario_14-10-2026.pdf")

	w = do(r, http.MethodGet, "/v1/reportes/diario.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestRespaldo_RoundTrip(t *testing.T) {
	r := newTestRouter(t)
	do(r, http.MethodPost, "/v1/pacientes", visitaBotox)
	do(r, http.MethodPost, "/v1/tratamientos", map[string]any{"nombre": "Dermapen", "costo_regular": 2000, "promocion": 1500})

	w := do(r, http.MethodGet, "/v1/respaldo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "renove_backup_2026-10-14.json")
	snapshot := w.Body.String()

	w = do(r, http.MethodPost, "/v1/pacientes/limpiar", map[string]any{"confirmacion": "LIMPIAR TODO", "incluir_tratamientos": true})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodPost, "/v1/respaldo", snapshot)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"pacientes":1,"tratamientos":1}`, w.Body.String())

	w = do(r, http.MethodGet, "/v1/pacientes", nil)
	assert.EqualValues(t, 1, decode(t, w)["total"])

	w = do(r, http.MethodPost, "/v1/respaldo", `{"patients": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/v1/respaldo", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetrics(t *testing.T) {
	r := newTestRouter(t)
	do(r, http.MethodGet, "/v1/tratamientos", nil)

	w := do(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `renove_http_requests_total{method="GET",route="/v1/tratamientos",status="200"}`)
}

func TestGzip_JSON(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/tratamientos", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}
