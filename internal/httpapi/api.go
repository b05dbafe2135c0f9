// Package httpapi exposes the CRM over REST: four collections with CRUD,
// secondary-attribute queries, and cursor pagination, routed with gorilla/mux.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/autocrm/leads-api/internal/metrics"
	"github.com/autocrm/leads-api/internal/models"
)

// ClientStore is the client-collection surface the handlers dispatch to.
type ClientStore interface {
	Get(ctx context.Context, clientID string) (*models.Client, error)
	Save(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, clientID string) error
	List(ctx context.Context, cursor string) ([]models.Client, string, error)
	ByEmail(ctx context.Context, email string) (*models.Client, error)
	ByNumber(ctx context.Context, number string) (*models.Client, error)
	ByName(ctx context.Context, name string) (*models.Client, error)
}

// VendedorStore is the vendedor-collection surface.
type VendedorStore interface {
	Get(ctx context.Context, vendedorID string) (*models.Vendedor, error)
	Save(ctx context.Context, v *models.Vendedor) error
	Delete(ctx context.Context, vendedorID string) error
	List(ctx context.Context, cursor string) ([]models.Vendedor, string, error)
	ByEmail(ctx context.Context, email string) (*models.Vendedor, error)
	BySucursal(ctx context.Context, sucursal string) ([]models.Vendedor, error)
}

// EventStore is the event-collection surface.
type EventStore interface {
	Create(ctx context.Context, e *models.Event) error
	Save(ctx context.Context, e *models.Event) error
	Get(ctx context.Context, eventID, sessionID string) (*models.Event, error)
	Delete(ctx context.Context, eventID, sessionID string) error
	List(ctx context.Context, cursor string) ([]models.Event, string, error)
	ByClient(ctx context.Context, clientID, cursor string) ([]models.Event, string, error)
	BySession(ctx context.Context, sessionID string) ([]models.Event, error)
	TodaysVisits(ctx context.Context) ([]models.Event, error)
}

// MessageStore is the chat-message surface.
type MessageStore interface {
	ByPhone(ctx context.Context, phone string) ([]models.Message, error)
	DeleteByPhone(ctx context.Context, phone string) (deleted int, more bool, err error)
}

// Attributor creates an identity and backfills its session's events.
type Attributor interface {
	AttributeClient(ctx context.Context, c *models.Client, sessionID string) error
	AttributeVendedor(ctx context.Context, v *models.Vendedor, sessionID string) error
}

// API holds the handler dependencies.
type API struct {
	clients    ClientStore
	vendedores VendedorStore
	events     EventStore
	messages   MessageStore
	engine     Attributor
	validate   *validator.Validate
	log        zerolog.Logger
}

func New(clients ClientStore, vendedores VendedorStore, events EventStore, messages MessageStore, engine Attributor, log zerolog.Logger) *API {
	return &API{
		clients:    clients,
		vendedores: vendedores,
		events:     events,
		messages:   messages,
		engine:     engine,
		validate:   validator.New(),
		log:        log,
	}
}

// Router builds the full route table. Fixed segments are registered before
// the parameterized detail routes so "create", "query" and friends never
// match as identifiers.
func (a *API) Router(provider metrics.Provider) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.Use(Observability(a.log, provider))

	clients := r.PathPrefix("/clients").Subrouter()
	clients.HandleFunc("/", a.listClients).Methods(http.MethodGet)
	clients.HandleFunc("/create/", a.createClient).Methods(http.MethodPost)
	clients.HandleFunc("/query/number/{number}/", a.clientByNumber).Methods(http.MethodGet)
	clients.HandleFunc("/query/name/{name}/", a.clientByName).Methods(http.MethodGet)
	clients.HandleFunc("/query/{email}/", a.clientByEmail).Methods(http.MethodGet)
	clients.HandleFunc("/messages/{phone_number}/", a.messagesByPhone).Methods(http.MethodGet)
	clients.HandleFunc("/messages/{phone_number}/", a.deleteMessagesByPhone).Methods(http.MethodDelete)
	clients.HandleFunc("/{client_id}/events/", a.clientEvents).Methods(http.MethodGet)
	clients.HandleFunc("/{client_id}/", a.getClient).Methods(http.MethodGet)
	clients.HandleFunc("/{client_id}/", a.updateClient).Methods(http.MethodPut)
	clients.HandleFunc("/{client_id}/", a.deleteClient).Methods(http.MethodDelete)

	vendedores := r.PathPrefix("/vendedores").Subrouter()
	vendedores.HandleFunc("/", a.listVendedores).Methods(http.MethodGet)
	vendedores.HandleFunc("/create/", a.createVendedor).Methods(http.MethodPost)
	vendedores.HandleFunc("/query/{email}/", a.vendedorByEmail).Methods(http.MethodGet)
	vendedores.HandleFunc("/sucursal/{sucursal}/", a.vendedoresBySucursal).Methods(http.MethodGet)
	vendedores.HandleFunc("/{vendedor_id}/", a.getVendedor).Methods(http.MethodGet)
	vendedores.HandleFunc("/{vendedor_id}/", a.updateVendedor).Methods(http.MethodPut)
	vendedores.HandleFunc("/{vendedor_id}/", a.deleteVendedor).Methods(http.MethodDelete)

	events := r.PathPrefix("/events").Subrouter()
	events.HandleFunc("/", a.listEvents).Methods(http.MethodGet)
	events.HandleFunc("/create/", a.createEvent).Methods(http.MethodPost)
	events.HandleFunc("/today-visits/", a.todaysVisits).Methods(http.MethodGet)
	events.HandleFunc("/session/{session_id}/", a.sessionEvents).Methods(http.MethodGet)
	events.HandleFunc("/event/{event_id}/{session_id}/", a.getEvent).Methods(http.MethodGet)
	events.HandleFunc("/event/{event_id}/{session_id}/", a.updateEvent).Methods(http.MethodPut)
	events.HandleFunc("/event/{event_id}/{session_id}/", a.deleteEvent).Methods(http.MethodDelete)

	return r
}
