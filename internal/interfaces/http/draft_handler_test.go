package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-studio/internal/application/dto"
	"github.com/jhoicas/invoice-studio/internal/application/invoice"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/memory"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/render"
	apphttp "github.com/jhoicas/invoice-studio/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubRasterizer struct {
	block bool
	err   error
}

func (s *stubRasterizer) Capture(ctx context.Context, _ []byte, _ string) ([]byte, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte("\x89PNG-stub"), nil
}

type stubAssembler struct{}

func (stubAssembler) AssembleImagePage(_ context.Context, png []byte) ([]byte, error) {
	return append([]byte("%PDF-1.3 stub "), png...), nil
}

type stubVector struct{}

func (stubVector) GenerateInvoicePDF(_ context.Context, doc *entity.InvoiceDocument) ([]byte, error) {
	return []byte("%PDF-1.3 vector " + doc.Draft.ID), nil
}

type testEnv struct {
	app        *fiber.App
	drafts     *invoice.DraftUseCase
	rasterizer *stubRasterizer
}

// buildTestApp arma la aplicación completa con captura y armado simulados.
func buildTestApp(t *testing.T, exportTimeout time.Duration) *testEnv {
	t.Helper()
	renderer, err := render.NewRenderer("invoice.pdf")
	require.NoError(t, err)

	drafts := invoice.NewDraftUseCase(memory.NewDraftRepository(), invoice.DraftConfig{
		TTL:    time.Hour,
		Seller: entity.BusinessProfile{Name: "Stomach Care Food", InvoiceNumber: "INVO001", DueText: "On Receipt"},
	}, zerolog.Nop())

	rasterizer := &stubRasterizer{}
	export := invoice.NewExportUseCase(drafts, renderer, rasterizer, stubAssembler{}, stubVector{},
		invoice.ExportConfig{Timeout: exportTimeout}, zerolog.Nop())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Drafts: drafts, Export: export, Renderer: renderer})
	return &testEnv{app: app, drafts: drafts, rasterizer: rasterizer}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) createDraft(t *testing.T) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/drafts", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeDraft(t, resp).ID
}

func decodeDraft(t *testing.T, resp *http.Response) dto.DraftResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.DraftResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// API JSON
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDraft_UnaLineaVacia(t *testing.T) {
	env := buildTestApp(t, time.Second)

	resp := env.do(t, http.MethodPost, "/api/drafts", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	d := decodeDraft(t, resp)
	assert.NotEmpty(t, d.ID)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "0.00", d.Items[0].Rate)
	assert.Equal(t, "0", d.Items[0].Quantity)
	assert.Equal(t, "0.00", d.Total)
	assert.Equal(t, "0.00", d.Paid)
	assert.Equal(t, "0.00", d.BalanceDue)
}

func TestUpdateItem_RecalculaTotales(t *testing.T) {
	env := buildTestApp(t, time.Second)
	id := env.createDraft(t)

	resp := env.do(t, http.MethodPatch, "/api/drafts/"+id+"/items/0", `{"field":"rate","value":"10"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Un número JSON también se acepta.
	resp = env.do(t, http.MethodPatch, "/api/drafts/"+id+"/items/0", `{"field":"quantity","value":3}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	d := decodeDraft(t, resp)
	assert.Equal(t, "30.00", d.Items[0].Amount)
	assert.Equal(t, "30.00", d.Total)
	assert.Equal(t, "30.00", d.Paid)
	assert.Equal(t, "0.00", d.BalanceDue)
}

func TestUpdateItem_EntradaNoNumerica(t *testing.T) {
	env := buildTestApp(t, time.Second)
	id := env.createDraft(t)

	resp := env.do(t, http.MethodPatch, "/api/drafts/"+id+"/items/0", `{"field":"rate","value":"abc"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	d := decodeDraft(t, resp)
	assert.Equal(t, "0.00", d.Items[0].Rate)
	assert.Equal(t, "0.00", d.Items[0].Amount)
}

func TestUpdateItem_ExponenteEnormeValeCero(t *testing.T) {
	env := buildTestApp(t, time.Second)
	id := env.createDraft(t)

	resp := env.do(t, http.MethodPatch, "/api/drafts/"+id+"/items/0", `{"field":"rate","value":"1e5000000"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Less(t, resp.ContentLength, int64(4096))

	d := decodeDraft(t, resp)
	assert.Equal(t, "0.00", d.Items[0].Rate)
	assert.Equal(t, "0.00", d.Total)

	resp = env.do(t, http.MethodGet, "/api/drafts/"+id+"/preview", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Less(t, len(body), 64*1024)
}

func TestUpdateItem_Errores(t *testing.T) {
	env := buildTestApp(t, time.Second)
	id := env.createDraft(t)

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"fuera de rango", "/api/drafts/" + id + "/items/5", `{"field":"rate","value":"1"}`, fiber.StatusBadRequest, "ITEM_OUT_OF_RANGE"},
		{"índice inválido", "/api/drafts/" + id + "/items/x", `{"field":"rate","value":"1"}`, fiber.StatusBadRequest, "VALIDATION"},
		{"campo desconocido", "/api/drafts/" + id + "/items/0", `{"field":"amount","value":"1"}`, fiber.StatusBadRequest, "VALIDATION"},
		{"cuerpo inválido", "/api/drafts/" + id + "/items/0", `{`, fiber.StatusBadRequest, "INVALID_BODY"},
		{"borrador inexistente", "/api/drafts/nope/items/0", `{"field":"rate","value":"1"}`, fiber.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPatch, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

func TestUpdateHeader(t *testing.T) {
	env := buildTestApp(t, time.Second)
	id := env.createDraft(t)

	resp := env.do(t, http.MethodPatch, "/api/drafts/"+id+"/header", `{"field":"customer_name","value":"Jane Doe"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	d := decodeDraft(t, resp)
	assert.Equal(t, "Jane Doe", d.CustomerName)
	assert.Equal(t, "", d.CustomerPhone)

	resp = env.do(t, http.MethodPatch, "/api/drafts/"+id+"/header", `{"field":"total","value":"1"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestAppendItem(t *testing.T) {
	env := buildTestApp(t, time.Second)
	id := env.createDraft(t)

	resp := env.do(t, http.MethodPost, "/api/drafts/"+id+"/items", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	d := decodeDraft(t, resp)
	require.Len(t, d.Items, 2)
	assert.Equal(t, 1, d.Items[1].Index)
	assert.Equal(t, "1", d.Items[1].Quantity)
	assert.Equal(t, "0.00", d.Items[1].Amount)
}

func TestGetByID(t *testing.T) {
	env := buildTestApp(t, time.Second)
	id := env.createDraft(t)

	resp := env.do(t, http.MethodGet, "/api/drafts/"+id, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, id, decodeDraft(t, resp).ID)

	resp = env.do(t, http.MethodGet, "/api/drafts/nope", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestPreview_FragmentoHTML(t *testing.T) {
	env := buildTestApp(t, time.Second)
	id := env.createDraft(t)
	env.do(t, http.MethodPatch, "/api/drafts/"+id+"/header", `{"field":"customer_name","value":"Jane"}`).Body.Close()

	resp := env.do(t, http.MethodGet, "/api/drafts/"+id+"/preview", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `id="invoice"`)
	assert.Contains(t, string(body), "Jane")
	assert.Contains(t, string(body), "Balance Due: $0.00")
}
