package httpapi

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/autocrm/leads-api/dynstore"
	"github.com/autocrm/leads-api/internal/models"
)

type vendedorCreateRequest struct {
	models.Vendedor
	SessionID string `json:"session_id"`
}

func (a *API) listVendedores(w http.ResponseWriter, r *http.Request) {
	cursor := r.URL.Query().Get("last_evaluated_key")

	vendedores, next, err := a.vendedores.List(r.Context(), cursor)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vendedores":      vendedores,
		"next_page_token": nullableToken(next),
	})
}

func (a *API) createVendedor(w http.ResponseWriter, r *http.Request) {
	var req vendedorCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.VendedorID == "" {
		req.VendedorID = uuid.NewString()
	}
	if err := a.validate.Struct(req.Vendedor); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := a.engine.AttributeVendedor(r.Context(), &req.Vendedor, req.SessionID); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, "Vendedor creado exitosamente.")
}

func (a *API) getVendedor(w http.ResponseWriter, r *http.Request) {
	vendedor, err := a.vendedores.Get(r.Context(), mux.Vars(r)["vendedor_id"])
	if errors.Is(err, dynstore.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "Vendedor no encontrado.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendedor)
}

func (a *API) updateVendedor(w http.ResponseWriter, r *http.Request) {
	vendedorID := mux.Vars(r)["vendedor_id"]

	vendedor, err := a.vendedores.Get(r.Context(), vendedorID)
	if errors.Is(err, dynstore.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "Vendedor no encontrado.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if !decodeBody(w, r, vendedor) {
		return
	}
	vendedor.VendedorID = vendedorID

	if err := a.validate.Struct(vendedor); err != nil {
		writeValidationError(w, err)
		return
	}
	if err := a.vendedores.Save(r.Context(), vendedor); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Vendedor actualizado exitosamente.")
}

func (a *API) deleteVendedor(w http.ResponseWriter, r *http.Request) {
	if err := a.vendedores.Delete(r.Context(), mux.Vars(r)["vendedor_id"]); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Vendedor eliminado exitosamente.")
}

func (a *API) vendedorByEmail(w http.ResponseWriter, r *http.Request) {
	vendedor, err := a.vendedores.ByEmail(r.Context(), mux.Vars(r)["email"])
	if errors.Is(err, dynstore.ErrNotFound) {
		writeErrorMessage(w, http.StatusNotFound, "Vendedor no encontrado.")
		return
	}
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendedor)
}

func (a *API) vendedoresBySucursal(w http.ResponseWriter, r *http.Request) {
	vendedores, err := a.vendedores.BySucursal(r.Context(), mux.Vars(r)["sucursal"])
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendedores)
}
