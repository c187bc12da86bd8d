package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prplkane/umazona-website/internal/services"
	"github.com/prplkane/umazona-website/internal/util"
)

type AdminEventsHandler struct {
	Events *services.EventService
}

func (h *AdminEventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.ListAdmin(r.Context())
	if err != nil {
		util.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	util.JSONResponse(w, http.StatusOK, map[string]any{"data": events})
}

func (h *AdminEventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload services.CreateEventInput
	if err := util.ParseJSON(r, &payload); err != nil {
		util.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.Events.Create(r.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrDateUnparseable):
			util.ErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			util.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	util.JSONResponse(w, http.StatusCreated, map[string]any{"data": event})
}

func (h *AdminEventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		util.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload services.UpdateEventInput
	if err := util.ParseJSON(r, &payload); err != nil {
		util.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.Events.Update(r.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			util.ErrorResponse(w, http.StatusNotFound, "event not found")
		case errors.Is(err, services.ErrDateUnparseable):
			util.ErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			util.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	util.JSONResponse(w, http.StatusOK, map[string]any{"data": event})
}

func (h *AdminEventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := util.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		util.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Events.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			util.ErrorResponse(w, http.StatusNotFound, "event not found")
			return
		}
		util.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	util.JSONResponse(w, http.StatusOK, map[string]any{"deleted": id})
}
