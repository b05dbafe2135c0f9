package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/leads-api/internal/httpapi"
	"github.com/autocrm/leads-api/internal/models"
)

type fakeClients struct {
	getFn      func(ctx context.Context, clientID string) (*models.Client, error)
	saveFn     func(ctx context.Context, c *models.Client) error
	deleteFn   func(ctx context.Context, clientID string) error
	listFn     func(ctx context.Context, cursor string) ([]models.Client, string, error)
	byEmailFn  func(ctx context.Context, email string) (*models.Client, error)
	byNumberFn func(ctx context.Context, number string) (*models.Client, error)
	byNameFn   func(ctx context.Context, name string) (*models.Client, error)
}

func (f *fakeClients) Get(ctx context.Context, clientID string) (*models.Client, error) {
	return f.getFn(ctx, clientID)
}
func (f *fakeClients) Save(ctx context.Context, c *models.Client) error { return f.saveFn(ctx, c) }
func (f *fakeClients) Delete(ctx context.Context, clientID string) error {
	return f.deleteFn(ctx, clientID)
}
func (f *fakeClients) List(ctx context.Context, cursor string) ([]models.Client, string, error) {
	return f.listFn(ctx, cursor)
}
func (f *fakeClients) ByEmail(ctx context.Context, email string) (*models.Client, error) {
	return f.byEmailFn(ctx, email)
}
func (f *fakeClients) ByNumber(ctx context.Context, number string) (*models.Client, error) {
	return f.byNumberFn(ctx, number)
}
func (f *fakeClients) ByName(ctx context.Context, name string) (*models.Client, error) {
	return f.byNameFn(ctx, name)
}

type fakeVendedores struct {
	getFn        func(ctx context.Context, vendedorID string) (*models.Vendedor, error)
	saveFn       func(ctx context.Context, v *models.Vendedor) error
	deleteFn     func(ctx context.Context, vendedorID string) error
	listFn       func(ctx context.Context, cursor string) ([]models.Vendedor, string, error)
	byEmailFn    func(ctx context.Context, email string) (*models.Vendedor, error)
	bySucursalFn func(ctx context.Context, sucursal string) ([]models.Vendedor, error)
}

func (f *fakeVendedores) Get(ctx context.Context, vendedorID string) (*models.Vendedor, error) {
	return f.getFn(ctx, vendedorID)
}
func (f *fakeVendedores) Save(ctx context.Context, v *models.Vendedor) error { return f.saveFn(ctx, v) }
func (f *fakeVendedores) Delete(ctx context.Context, vendedorID string) error {
	return f.deleteFn(ctx, vendedorID)
}
func (f *fakeVendedores) List(ctx context.Context, cursor string) ([]models.Vendedor, string, error) {
	return f.listFn(ctx, cursor)
}
func (f *fakeVendedores) ByEmail(ctx context.Context, email string) (*models.Vendedor, error) {
	return f.byEmailFn(ctx, email)
}
func (f *fakeVendedores) BySucursal(ctx context.Context, sucursal string) ([]models.Vendedor, error) {
	return f.bySucursalFn(ctx, sucursal)
}

type fakeEvents struct {
	createFn       func(ctx context.Context, e *models.Event) error
	saveFn         func(ctx context.Context, e *models.Event) error
	getFn          func(ctx context.Context, eventID, sessionID string) (*models.Event, error)
	deleteFn       func(ctx context.Context, eventID, sessionID string) error
	listFn         func(ctx context.Context, cursor string) ([]models.Event, string, error)
	byClientFn     func(ctx context.Context, clientID, cursor string) ([]models.Event, string, error)
	bySessionFn    func(ctx context.Context, sessionID string) ([]models.Event, error)
	todaysVisitsFn func(ctx context.Context) ([]models.Event, error)
}

func (f *fakeEvents) Create(ctx context.Context, e *models.Event) error { return f.createFn(ctx, e) }
func (f *fakeEvents) Save(ctx context.Context, e *models.Event) error   { return f.saveFn(ctx, e) }
func (f *fakeEvents) Get(ctx context.Context, eventID, sessionID string) (*models.Event, error) {
	return f.getFn(ctx, eventID, sessionID)
}
func (f *fakeEvents) Delete(ctx context.Context, eventID, sessionID string) error {
	return f.deleteFn(ctx, eventID, sessionID)
}
func (f *fakeEvents) List(ctx context.Context, cursor string) ([]models.Event, string, error) {
	return f.listFn(ctx, cursor)
}
func (f *fakeEvents) ByClient(ctx context.Context, clientID, cursor string) ([]models.Event, string, error) {
	return f.byClientFn(ctx, clientID, cursor)
}
func (f *fakeEvents) BySession(ctx context.Context, sessionID string) ([]models.Event, error) {
	return f.bySessionFn(ctx, sessionID)
}
func (f *fakeEvents) TodaysVisits(ctx context.Context) ([]models.Event, error) {
	return f.todaysVisitsFn(ctx)
}

type fakeMessages struct {
	byPhoneFn       func(ctx context.Context, phone string) ([]models.Message, error)
	deleteByPhoneFn func(ctx context.Context, phone string) (int, bool, error)
}

func (f *fakeMessages) ByPhone(ctx context.Context, phone string) ([]models.Message, error) {
	return f.byPhoneFn(ctx, phone)
}
func (f *fakeMessages) DeleteByPhone(ctx context.Context, phone string) (int, bool, error) {
	return f.deleteByPhoneFn(ctx, phone)
}

type fakeAttributor struct {
	clientFn   func(ctx context.Context, c *models.Client, sessionID string) error
	vendedorFn func(ctx context.Context, v *models.Vendedor, sessionID string) error
}

func (f *fakeAttributor) AttributeClient(ctx context.Context, c *models.Client, sessionID string) error {
	return f.clientFn(ctx, c, sessionID)
}
func (f *fakeAttributor) AttributeVendedor(ctx context.Context, v *models.Vendedor, sessionID string) error {
	return f.vendedorFn(ctx, v, sessionID)
}

// deps bundles the fakes one test cares about; unused stores stay nil and
// panic loudly if a handler unexpectedly reaches them.
type deps struct {
	clients    *fakeClients
	vendedores *fakeVendedores
	events     *fakeEvents
	messages   *fakeMessages
	engine     *fakeAttributor
}

func newTestRouter(d deps) http.Handler {
	if d.clients == nil {
		d.clients = &fakeClients{}
	}
	if d.vendedores == nil {
		d.vendedores = &fakeVendedores{}
	}
	if d.events == nil {
		d.events = &fakeEvents{}
	}
	if d.messages == nil {
		d.messages = &fakeMessages{}
	}
	if d.engine == nil {
		d.engine = &fakeAttributor{}
	}
	api := httpapi.New(d.clients, d.vendedores, d.events, d.messages, d.engine, zerolog.Nop())
	return api.Router(nil)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
