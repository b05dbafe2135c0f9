// Package models declares the four record collections of the CRM and the
// constants shared by the repositories: table key names, secondary index
// names, and the sentinel session identifier for non-web events.
package models

const (
	// SentinelSessionID marks events that did not originate from a browser
	// session (event_source != "website"), e.g. a physical-location check-in.
	SentinelSessionID = "00000000-0000-0000-0000-000000000000"

	// EventSourceWebsite is the only event source that carries a real session.
	EventSourceWebsite = "website"

	// EventTypeVisitRegistration is the event type behind the today-visits
	// listing.
	EventTypeVisitRegistration = "visit_registration"

	// VendedoresPartition is the constant partition value stamped on every
	// vendedor so listings can query gsi_pk-index instead of scanning.
	VendedoresPartition = "VENDEDORES"
)

// Index names, per table.
const (
	IndexEmail         = "email-index"
	IndexNumber        = "number-index"
	IndexName          = "name-index"
	IndexSucursal      = "sucursal-index"
	IndexVendedoresPK  = "gsi_pk-index"
	IndexSession       = "session_id-index"
	IndexClient        = "client_id-index"
	IndexTypeTimestamp = "event_type-timestamp-index"
	IndexDeNumero      = "de_numero-index"
	IndexParaNumero    = "para_numero-index"
)

// Client is a lead captured from the website or a branch. Deleting a client
// does not cascade to its events; dangling client_id references are accepted.
type Client struct {
	ClientID         string `json:"client_id" dynamodbav:"client_id" validate:"required,max=40"`
	Name             string `json:"name" dynamodbav:"name" validate:"required,max=200"`
	Email            string `json:"email" dynamodbav:"email" validate:"required,email"`
	Number           string `json:"number,omitempty" dynamodbav:"number,omitempty" validate:"omitempty,max=15"`
	VendedorAsignado string `json:"vendedor_asignado,omitempty" dynamodbav:"vendedor_asignado,omitempty" validate:"omitempty,max=40"`
	UnidadDeInteres  string `json:"unidad_de_interes,omitempty" dynamodbav:"unidad_de_interes,omitempty" validate:"omitempty,max=50"`
	IDChat           string `json:"id_chat,omitempty" dynamodbav:"id_chat,omitempty" validate:"omitempty,max=50"`
	Sucursal         string `json:"sucursal,omitempty" dynamodbav:"sucursal,omitempty" validate:"omitempty,max=50"`
}

// Vendedor is a salesperson. GsiPK is denormalized storage plumbing, never
// accepted from or exposed to callers.
type Vendedor struct {
	VendedorID   string `json:"vendedor_id" dynamodbav:"vendedor_id" validate:"required,max=40"`
	Nombre       string `json:"nombre" dynamodbav:"nombre" validate:"required,max=200"`
	Email        string `json:"email" dynamodbav:"email" validate:"required,email"`
	Telefono     string `json:"telefono,omitempty" dynamodbav:"telefono,omitempty" validate:"omitempty,max=15"`
	Direccion    string `json:"direccion,omitempty" dynamodbav:"direccion,omitempty" validate:"omitempty,max=200"`
	Ciudad       string `json:"ciudad,omitempty" dynamodbav:"ciudad,omitempty" validate:"omitempty,max=100"`
	Estado       string `json:"estado,omitempty" dynamodbav:"estado,omitempty" validate:"omitempty,max=100"`
	CodigoPostal string `json:"codigo_postal,omitempty" dynamodbav:"codigo_postal,omitempty" validate:"omitempty,max=10"`
	Sucursal     string `json:"sucursal" dynamodbav:"sucursal" validate:"required,max=100"`
	Activo       *bool  `json:"activo,omitempty" dynamodbav:"activo"`
	GsiPK        string `json:"-" dynamodbav:"gsi_pk"`
}

// Event is one interaction, possibly anonymous at creation. ClientID and
// VendedorID are back-references stamped later by the attribution engine via
// full-record rewrite; concurrent attribution of the same session is a known
// lost-update hazard.
type Event struct {
	EventID         string         `json:"event_id" dynamodbav:"event_id" validate:"omitempty,uuid"`
	SessionID       string         `json:"session_id" dynamodbav:"session_id" validate:"omitempty,uuid"`
	EventSource     string         `json:"event_source,omitempty" dynamodbav:"event_source,omitempty"`
	EventType       string         `json:"event_type" dynamodbav:"event_type" validate:"required,max=50"`
	EventData       map[string]any `json:"event_data" dynamodbav:"event_data" validate:"required"`
	EventProperties map[string]any `json:"event_properties,omitempty" dynamodbav:"event_properties,omitempty"`
	Timestamp       string         `json:"timestamp,omitempty" dynamodbav:"timestamp,omitempty"`
	ClientID        string         `json:"client_id,omitempty" dynamodbav:"client_id,omitempty" validate:"omitempty,max=40"`
	VendedorID      string         `json:"vendedor_id,omitempty" dynamodbav:"vendedor_id,omitempty" validate:"omitempty,max=40"`
}

// Message is one directional chat record, immutable once stored except for
// bulk deletion by phone number.
type Message struct {
	IDChat     string `json:"id_chat" dynamodbav:"id_chat"`
	Fecha      string `json:"fecha" dynamodbav:"fecha"`
	DeNumero   string `json:"de_numero" dynamodbav:"de_numero"`
	ParaNumero string `json:"para_numero" dynamodbav:"para_numero"`
	Mensaje    string `json:"mensaje,omitempty" dynamodbav:"mensaje,omitempty"`
}
