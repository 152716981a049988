package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registryStub mimics the national registry API and counts incoming calls.
func registryStub(t *testing.T, status int, body infra.DocumentoResponse, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "Bearer token-de-prueba", r.Header.Get("Authorization"))
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
}

func newDocumentoServiceForTest(baseURL string) DocumentoService {
	client := infra.NewDocumentoClient(baseURL, "token-de-prueba")
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	return NewDocumentoService(client, cb)
}

func TestConsultar_DNIDevuelveNombreCompleto(t *testing.T) {
	var calls int32
	srv := registryStub(t, http.StatusOK, infra.DocumentoResponse{
		Numero:         "45678901",
		NombreCompleto: "Maria Quispe Huaman",
		RazonSocial:    "",
	}, &calls)
	defer srv.Close()

	svc := newDocumentoServiceForTest(srv.URL)

	resp, err := svc.Consultar(context.Background(), dto.ConsultarDocumentoRequest{Tipo: "dni", Numero: "45678901"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Maria Quispe Huaman", resp.Data.Nombre)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConsultar_RUCDevuelveRazonSocial(t *testing.T) {
	var calls int32
	srv := registryStub(t, http.StatusOK, infra.DocumentoResponse{
		Numero:      "20123456789",
		RazonSocial: "Distribuidora Norte SAC",
		Estado:      "ACTIVO",
		Condicion:   "HABIDO",
	}, &calls)
	defer srv.Close()

	svc := newDocumentoServiceForTest(srv.URL)

	resp, err := svc.Consultar(context.Background(), dto.ConsultarDocumentoRequest{Tipo: "ruc", Numero: "20123456789"})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Distribuidora Norte SAC", resp.Data.Nombre)
	assert.Equal(t, "ACTIVO", resp.Data.Estado)
}

func TestConsultar_LongitudInvalidaNoLlamaUpstream(t *testing.T) {
	var calls int32
	srv := registryStub(t, http.StatusOK, infra.DocumentoResponse{}, &calls)
	defer srv.Close()

	svc := newDocumentoServiceForTest(srv.URL)

	casos := []dto.ConsultarDocumentoRequest{
		{Tipo: "dni", Numero: "1234567"},      // 7 digits
		{Tipo: "dni", Numero: "123456789"},    // 9 digits
		{Tipo: "ruc", Numero: "123"},          // too short
		{Tipo: "dni", Numero: "1234567a"},     // non-digit
		{Tipo: "pasaporte", Numero: "123456"}, // unsupported type
	}
	for _, c := range casos {
		_, err := svc.Consultar(context.Background(), c)
		assert.ErrorIs(t, err, ErrDocumentoInvalido, "caso %s/%s", c.Tipo, c.Numero)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestConsultar_UpstreamNoEncontrado(t *testing.T) {
	var calls int32
	srv := registryStub(t, http.StatusNotFound, infra.DocumentoResponse{}, &calls)
	defer srv.Close()

	svc := newDocumentoServiceForTest(srv.URL)

	_, err := svc.Consultar(context.Background(), dto.ConsultarDocumentoRequest{Tipo: "dni", Numero: "45678901"})
	require.Error(t, err)

	var upstream *infra.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusNotFound, upstream.Status)
}

func TestConsultar_CircuitoAbiertoTrasFallas(t *testing.T) {
	var calls int32
	srv := registryStub(t, http.StatusInternalServerError, infra.DocumentoResponse{}, &calls)
	defer srv.Close()

	client := infra.NewDocumentoClient(srv.URL, "token-de-prueba")
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 3})
	svc := NewDocumentoService(client, cb)

	req := dto.ConsultarDocumentoRequest{Tipo: "dni", Numero: "45678901"}
	for i := 0; i < 3; i++ {
		_, err := svc.Consultar(context.Background(), req)
		require.Error(t, err)
	}

	// Fourth call fails fast without touching the upstream.
	_, err := svc.Consultar(context.Background(), req)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}
