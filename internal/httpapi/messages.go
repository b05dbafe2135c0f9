package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) messagesByPhone(w http.ResponseWriter, r *http.Request) {
	messages, err := a.messages.ByPhone(r.Context(), mux.Vars(r)["phone_number"])
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// deleteMessagesByPhone removes one bounded batch per call; the caller loops
// while more_messages is true.
func (a *API) deleteMessagesByPhone(w http.ResponseWriter, r *http.Request) {
	deleted, more, err := a.messages.DeleteByPhone(r.Context(), mux.Vars(r)["phone_number"])
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":       deleted,
		"more_messages": more,
	})
}
