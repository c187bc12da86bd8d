package handlers

import (
	"net/http"

	"github.com/prplkane/umazona-website/internal/models"
	"github.com/prplkane/umazona-website/internal/services"
	"github.com/prplkane/umazona-website/internal/util"
)

type PublicEventsHandler struct {
	Events *services.EventService
}

// List returns upcoming events ascending by date. Organizer notes never
// appear here.
func (h *PublicEventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.ListPublic(r.Context())
	if err != nil {
		util.ErrorResponse(w, http.StatusInternalServerError, "An error occurred while retrieving events.")
		return
	}

	public := make([]models.PublicEvent, 0, len(events))
	for i := range events {
		public = append(public, events[i].Public())
	}

	util.JSONResponse(w, http.StatusOK, map[string]any{"data": public})
}
