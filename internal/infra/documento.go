package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DocumentoResponse is the raw shape returned by the national registry API
// for both DNI and RUC lookups.
type DocumentoResponse struct {
	Numero         string `json:"numero"`
	NombreCompleto string `json:"nombre_completo"`
	RazonSocial    string `json:"razon_social"`
	Direccion      string `json:"direccion"`
	Estado         string `json:"estado"`
	Condicion      string `json:"condicion"`
}

// UpstreamError carries the upstream HTTP status so the relay handler can
// pass it through verbatim.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("registro: upstream %d: %s", e.Status, e.Message)
}

// DocumentoClient relays identity document lookups to the national registry
// service, authenticated with a bearer credential. It is a stateless
// protocol translator: no retry, no cache.
type DocumentoClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewDocumentoClient(baseURL, token string) *DocumentoClient {
	return &DocumentoClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Consultar forwards a lookup for one document number.
// tipo must already be validated ("dni" or "ruc").
func (c *DocumentoClient) Consultar(ctx context.Context, tipo, numero string) (*DocumentoResponse, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, tipo, numero)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("registro: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registro: servicio no disponible: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: "documento no encontrado"}
	}

	var result DocumentoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("registro: decode response: %w", err)
	}
	return &result, nil
}
