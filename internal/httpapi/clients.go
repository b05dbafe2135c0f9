package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/autocrm/leads-api/dynstore"
	"github.com/autocrm/leads-api/internal/models"
)

// clientCreateRequest carries the optional session identifier alongside the
// client fields; the session is only used for attribution, never persisted.
type clientCreateRequest struct {
	models.Client
	SessionID string `json:"session_id"`
}

func (a *API) listClients(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("last_evaluated_key")

	clients, next, err := a.clients.List(r.Context(), cursor)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"clients":         clients,
		"next_page_token": nullableToken(next),
	})
}

func (a *API) createClient(w http.ResponseWriter, r *http.Request) {
	var req clientCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ClientID == "" {
		req.ClientID = uuid.NewString()
	}
	if err := a.validate.Struct(req.Client); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := a.engine.AttributeClient(r.Context(), &req.Client, req.SessionID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Cliente creado exitosamente.")
}

func (a *API) getClient(w http.ResponseWriter, r *http.Request) {
	client, err := a.clients.Get(r.Context(), mux.Vars(r)["client_id"])
	if errors.Is(err, dynstore.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "Cliente no encontrado.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// updateClient merges the request body over the stored record, then
// overwrites it whole. Concurrent updates can lose one writer's change;
// the store offers no compare-and-swap here and none is attempted.
func (a *API) updateClient(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["client_id"]

	client, err := a.clients.Get(r.Context(), clientID)
	if errors.Is(err, dynstore.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "Cliente no encontrado.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if !decodeBody(w, r, client) {
		return
	}
	client.ClientID = clientID

	if err := a.validate.Struct(client); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := a.clients.Save(r.Context(), client); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Cliente actualizado exitosamente.")
}

func (a *API) deleteClient(w http.ResponseWriter, r *http.Request) {
	if err := a.clients.Delete(r.Context(), mux.Vars(r)["client_id"]); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Cliente eliminado exitosamente.")
}

func (a *API) clientByEmail(w http.ResponseWriter, r *http.Request) {
	a.clientLookup(w, r, func() (*models.Client, error) {
		return a.clients.ByEmail(r.Context(), mux.Vars(r)["email"])
	})
}

func (a *API) clientByNumber(w http.ResponseWriter, r *http.Request) {
	a.clientLookup(w, r, func() (*models.Client, error) {
		return a.clients.ByNumber(r.Context(), mux.Vars(r)["number"])
	})
}

func (a *API) clientByName(w http.ResponseWriter, r *http.Request) {
	a.clientLookup(w, r, func() (*models.Client, error) {
		return a.clients.ByName(r.Context(), mux.Vars(r)["name"])
	})
}

func (a *API) clientLookup(w http.ResponseWriter, r *http.Request, lookup func() (*models.Client, error)) {
	client, err := lookup()
	if errors.Is(err, dynstore.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"message": "No se encontraron clientes con esos datos.",
		})
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (a *API) clientEvents(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("last_evaluated_key")

	events, next, err := a.events.ByClient(r.Context(), mux.Vars(r)["client_id"], cursor)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events":          events,
		"next_page_token": nullableToken(next),
	})
}
