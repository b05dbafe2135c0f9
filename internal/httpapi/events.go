package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/autocrm/leads-api/dynstore"
	"github.com/autocrm/leads-api/internal/models"
)

func (a *API) listEvents(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("last_evaluated_key")

	events, next, err := a.events.List(r.Context(), cursor)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events":          events,
		"next_page_token": nullableToken(next),
	})
}

func (a *API) createEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if !decodeBody(w, r, &event) {
		return
	}
	if err := a.validate.Struct(event); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := a.events.Create(r.Context(), &event); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "Evento creado exitosamente.",
		"event_id": event.EventID,
	})
}

func (a *API) getEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	event, err := a.events.Get(r.Context(), vars["event_id"], vars["session_id"])
	if errors.Is(err, dynstore.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "Evento no encontrado.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// updateEvent is the explicit admin edit: each supplied top-level field
// replaces the stored one wholesale, then the record is rewritten in full
// with the composite key from the path. Supplied maps must not key-merge
// with the stored ones, so those are cleared before decoding over the record.
func (a *API) updateEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	event, err := a.events.Get(r.Context(), vars["event_id"], vars["session_id"])
	if errors.Is(err, dynstore.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "Evento no encontrado.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "El cuerpo de la petición no es JSON válido.")
		return
	}
	var supplied map[string]json.RawMessage
	if err := json.Unmarshal(body, &supplied); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "El cuerpo de la petición no es JSON válido.")
		return
	}
	if _, ok := supplied["event_data"]; ok {
		event.EventData = nil
	}
	if _, ok := supplied["event_properties"]; ok {
		event.EventProperties = nil
	}
	if err := json.Unmarshal(body, event); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "El cuerpo de la petición no es JSON válido.")
		return
	}
	event.EventID = vars["event_id"]
	event.SessionID = vars["session_id"]

	if err := a.validate.Struct(event); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := a.events.Save(r.Context(), event); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Evento actualizado exitosamente.")
}

func (a *API) deleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := a.events.Delete(r.Context(), vars["event_id"], vars["session_id"]); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) sessionEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.events.BySession(r.Context(), mux.Vars(r)["session_id"])
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if len(events) == 0 {
		writeErrorMessage(w, http.StatusNotFound, "No se encontraron eventos para la sesión proporcionada.")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (a *API) todaysVisits(w http.ResponseWriter, r *http.Request) {
	events, err := a.events.TodaysVisits(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
