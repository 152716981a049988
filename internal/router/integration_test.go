//go:build integration

package router_test

// Integration tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/config"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/router"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server    *httptest.Server
	token     string // admin JWT
	idEmpresa string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("gestorpos_test"),
		tcPostgres.WithUsername("gestorpos"),
		tcPostgres.WithPassword("gestorpos"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		DocAPIURL:          "http://localhost:9999", // relay untouched in these tests
		AssetStoragePath:   t.TempDir(),
		PDFStoragePath:     t.TempDir(),
		Domain:             "http://localhost:8000",
		WorkerPoolSize:     1,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	store, err := infra.NewDiskAssetStore(cfg.AssetStoragePath, cfg.Domain)
	require.NoError(t, err)

	// Seed empresa + admin
	empresa := model.Empresa{
		Nombre:      "Empresa Test",
		RUC:         "20123456789",
		Moneda:      "PEN",
		ImpuestoPct: decimal.NewFromInt(18),
		Activo:      true,
	}
	require.NoError(t, db.Create(&empresa).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("gestorpos2026"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := model.Usuario{
		IDEmpresa:    empresa.ID,
		Username:     "admin@test.local",
		Nombre:       "Admin Test",
		PasswordHash: string(hash),
		Rol:          "administrador",
		Activo:       true,
	}
	require.NoError(t, db.Create(&admin).Error)

	r := router.New(cfg, router.Deps{
		DB:         db,
		RDB:        rdb,
		RegistroCB: infra.NewCircuitBreaker(infra.DefaultCBConfig()),
		Store:      store,
		Dispatcher: worker.NewDispatcher(rdb),
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@test.local", "password": "gestorpos2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server:    srv,
		token:     loginBody.AccessToken,
		idEmpresa: empresa.ID.String(),
	}
}

func (env *testEnv) crearProducto(t *testing.T, nombre, barras string, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"id_empresa":    env.idEmpresa,
			"codigo_barras": barras,
			"nombre":        nombre,
			"categoria":     "abarrotes",
			"precio_compra": "2.50",
			"precio_venta":  "3.90",
			"stock_actual":  stock,
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestIntegration_VentaCompleta(t *testing.T) {
	env := setupTestEnv(t)

	prodID := env.crearProducto(t, "Gaseosa 500ml", "7890001000001", 20)

	// Sucursal
	sucResp := do(t, env.server, "POST", "/v1/sucursales",
		jsonBody(t, map[string]any{"id_empresa": env.idEmpresa, "nombre": "Sucursal Centro"}),
		env.token)
	require.Equal(t, http.StatusCreated, sucResp.StatusCode)
	var suc struct {
		ID string `json:"id"`
	}
	decodeJSON(t, sucResp, &suc)

	// Venta
	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"id_empresa":  env.idEmpresa,
			"id_sucursal": suc.ID,
			"items":       []map[string]any{{"id_producto": prodID, "cantidad": 3}},
		}),
		env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		ID           string `json:"id"`
		NumeroTicket int64  `json:"numero_ticket"`
		Estado       string `json:"estado"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.Equal(t, "completada", venta.Estado)
	assert.Equal(t, int64(1), venta.NumeroTicket)

	// Stock was decremented
	prodGet := do(t, env.server, "GET", "/v1/productos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodGet.StatusCode)
	var prod struct {
		StockActual int `json:"stock_actual"`
	}
	decodeJSON(t, prodGet, &prod)
	assert.Equal(t, 17, prod.StockActual)
}

func TestIntegration_TicketsConcurrentesSonUnicos(t *testing.T) {
	env := setupTestEnv(t)

	prodID := env.crearProducto(t, "Cafe Molido", "7890001000003", 100)

	sucResp := do(t, env.server, "POST", "/v1/sucursales",
		jsonBody(t, map[string]any{"id_empresa": env.idEmpresa, "nombre": "Sucursal Sur"}),
		env.token)
	require.Equal(t, http.StatusCreated, sucResp.StatusCode)
	var suc struct {
		ID string `json:"id"`
	}
	decodeJSON(t, sucResp, &suc)

	payload, err := json.Marshal(map[string]any{
		"id_empresa":  env.idEmpresa,
		"id_sucursal": suc.ID,
		"items":       []map[string]any{{"id_producto": prodID, "cantidad": 1}},
	})
	require.NoError(t, err)

	// Ventas simultáneas no deben chocar en el índice único de numero_ticket.
	type resultado struct {
		status int
		ticket int64
		err    error
	}
	const n = 8
	resultados := make(chan resultado, n)
	for i := 0; i < n; i++ {
		go func() {
			req, err := http.NewRequest("POST", env.server.URL+"/v1/ventas", bytes.NewReader(payload))
			if err != nil {
				resultados <- resultado{err: err}
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+env.token)
			resp, err := env.server.Client().Do(req)
			if err != nil {
				resultados <- resultado{err: err}
				return
			}
			defer resp.Body.Close()
			var venta struct {
				NumeroTicket int64 `json:"numero_ticket"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&venta); err != nil {
				resultados <- resultado{err: err}
				return
			}
			resultados <- resultado{status: resp.StatusCode, ticket: venta.NumeroTicket}
		}()
	}

	vistos := make(map[int64]bool)
	for i := 0; i < n; i++ {
		r := <-resultados
		require.NoError(t, r.err)
		require.Equal(t, http.StatusCreated, r.status)
		assert.False(t, vistos[r.ticket], "numero_ticket %d repetido", r.ticket)
		vistos[r.ticket] = true
	}
}

func TestIntegration_EliminacionProtegidaPorVentas(t *testing.T) {
	env := setupTestEnv(t)

	prodID := env.crearProducto(t, "Agua Mineral", "7890001000002", 50)

	sucResp := do(t, env.server, "POST", "/v1/sucursales",
		jsonBody(t, map[string]any{"id_empresa": env.idEmpresa, "nombre": "Sucursal Norte"}),
		env.token)
	require.Equal(t, http.StatusCreated, sucResp.StatusCode)
	var suc struct {
		ID string `json:"id"`
	}
	decodeJSON(t, sucResp, &suc)

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{
			"id_empresa":  env.idEmpresa,
			"id_sucursal": suc.ID,
			"items":       []map[string]any{{"id_producto": prodID, "cantidad": 1}},
		}),
		env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)

	// Pre-check reports the reference
	valResp := do(t, env.server, "GET", "/v1/productos/"+prodID+"/validar-eliminar", nil, env.token)
	require.Equal(t, http.StatusOK, valResp.StatusCode)
	var validacion struct {
		PuedeEliminar bool `json:"puede_eliminar"`
		Referencias   []struct {
			Tabla    string `json:"tabla"`
			Cantidad int64  `json:"cantidad"`
		} `json:"referencias"`
	}
	decodeJSON(t, valResp, &validacion)
	assert.False(t, validacion.PuedeEliminar)
	require.Len(t, validacion.Referencias, 1)
	assert.Equal(t, "venta_items", validacion.Referencias[0].Tabla)

	// Guarded delete is rejected but the HTTP call itself succeeds
	delResp := do(t, env.server, "DELETE", "/v1/productos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	var eliminacion struct {
		Exito bool `json:"exito"`
	}
	decodeJSON(t, delResp, &eliminacion)
	assert.False(t, eliminacion.Exito)

	// forzar deactivates despite the references
	forzResp := do(t, env.server, "DELETE", "/v1/productos/"+prodID+"?forzar=true", nil, env.token)
	require.Equal(t, http.StatusOK, forzResp.StatusCode)
	decodeJSON(t, forzResp, &eliminacion)
	assert.True(t, eliminacion.Exito)

	// Restore brings it back
	restResp := do(t, env.server, "PATCH", "/v1/productos/"+prodID+"/restaurar", nil, env.token)
	require.Equal(t, http.StatusOK, restResp.StatusCode)

	prodGet := do(t, env.server, "GET", "/v1/productos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodGet.StatusCode)
	var prod struct {
		Activo bool `json:"activo"`
	}
	decodeJSON(t, prodGet, &prod)
	assert.True(t, prod.Activo)
}

func TestIntegration_PermisosReemplazoAtomico(t *testing.T) {
	env := setupTestEnv(t)

	// Crear usuario cajero
	userResp := do(t, env.server, "POST", "/v1/usuarios",
		jsonBody(t, map[string]any{
			"id_empresa": env.idEmpresa,
			"username":   "cajero@test.local",
			"nombre":     "Cajero Test",
			"password":   "clave-segura",
			"rol":        "cajero",
		}),
		env.token)
	require.Equal(t, http.StatusCreated, userResp.StatusCode)
	var user struct {
		ID string `json:"id"`
	}
	decodeJSON(t, userResp, &user)

	// Empty set is a valid full replacement
	permResp := do(t, env.server, "PUT", "/v1/usuarios/"+user.ID+"/permisos",
		jsonBody(t, map[string]any{"modulos": []string{}}),
		env.token)
	require.Equal(t, http.StatusOK, permResp.StatusCode)

	getResp := do(t, env.server, "GET", "/v1/usuarios/"+user.ID+"/permisos", nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var permisos []struct {
		ID string `json:"id"`
	}
	decodeJSON(t, getResp, &permisos)
	assert.Empty(t, permisos)
}

func TestIntegration_RutasProtegidas(t *testing.T) {
	env := setupTestEnv(t)

	// Sin token → 401
	resp := do(t, env.server, "GET", fmt.Sprintf("/v1/productos?id_empresa=%s", env.idEmpresa), nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Health es público
	health := do(t, env.server, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, health.StatusCode)
	health.Body.Close()
}
