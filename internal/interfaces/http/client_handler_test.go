package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Mantenix-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeClientRepo repositorio en memoria para ejercer el handler de punta a
// punta sin base de datos.
type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (f *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientRepo) Update(c *entity.Client) error {
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range f.clients {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeClientRepo) Delete(id string) error {
	delete(f.clients, id)
	return nil
}

// buildTestApp monta las rutas de clientes sobre el repo fake.
func buildTestApp(repo *fakeClientRepo) *fiber.App {
	app := fiber.New()
	handler := apphttp.NewClientHandler(usecase.NewClientUseCase(repo))
	clients := app.Group("/api/clients")
	clients.Post("/", handler.Create)
	clients.Get("/", handler.List)
	clients.Get("/:id", handler.GetByID)
	clients.Put("/:id", handler.Update)
	clients.Delete("/:id", handler.Delete)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeClient(t *testing.T, resp *http.Response) dto.ClientResponse {
	t.Helper()
	var out dto.ClientResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Crear un cliente válido debe retornar 201 con el recurso creado.
func TestClientHandler_Create_Retorna201(t *testing.T) {
	app := buildTestApp(newFakeClientRepo())

	resp := doJSON(t, app, http.MethodPost, "/api/clients/", dto.CreateClientRequest{
		Name:     "Torre Empresarial Andina",
		Type:     "Office Tower",
		Location: "Bogotá",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decodeClient(t, resp)
	assert.NotEmpty(t, out.ID, "el cliente creado debe tener ID")
	assert.Equal(t, "Torre Empresarial Andina", out.Name)
}

// Crear sin nombre debe mapear ErrInvalidInput a 400 con código VALIDATION.
func TestClientHandler_Create_SinNombreRetorna400(t *testing.T) {
	app := buildTestApp(newFakeClientRepo())

	resp := doJSON(t, app, http.MethodPost, "/api/clients/", dto.CreateClientRequest{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "VALIDATION")
}

// GetByID de un ID inexistente debe mapear ErrNotFound a 404.
func TestClientHandler_GetByID_NoExisteRetorna404(t *testing.T) {
	app := buildTestApp(newFakeClientRepo())

	resp := doJSON(t, app, http.MethodGet, "/api/clients/no-existe", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NOT_FOUND")
}

// Update parcial: solo los campos enviados cambian.
func TestClientHandler_Update_Parcial(t *testing.T) {
	app := buildTestApp(newFakeClientRepo())

	created := decodeClient(t, doJSON(t, app, http.MethodPost, "/api/clients/", dto.CreateClientRequest{
		Name:     "Hospital San Rafael",
		Location: "Medellín",
	}))

	nuevoContacto := "Laura Gómez"
	resp := doJSON(t, app, http.MethodPut, "/api/clients/"+created.ID, dto.UpdateClientRequest{
		ContactPerson: &nuevoContacto,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeClient(t, resp)
	assert.Equal(t, "Laura Gómez", out.ContactPerson)
	assert.Equal(t, "Hospital San Rafael", out.Name, "los campos no enviados no deben cambiar")
	assert.Equal(t, "Medellín", out.Location)
}

// Delete debe retornar 204 y el recurso deja de existir.
func TestClientHandler_Delete_Retorna204(t *testing.T) {
	app := buildTestApp(newFakeClientRepo())

	created := decodeClient(t, doJSON(t, app, http.MethodPost, "/api/clients/", dto.CreateClientRequest{
		Name: "Centro Comercial Plaza Norte",
	}))

	resp := doJSON(t, app, http.MethodDelete, "/api/clients/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/clients/"+created.ID, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Cuerpo no-JSON debe retornar 400 INVALID_BODY.
func TestClientHandler_Create_CuerpoInvalidoRetorna400(t *testing.T) {
	app := buildTestApp(newFakeClientRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/clients/", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_BODY")
}
