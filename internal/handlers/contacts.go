package handlers

import (
	"errors"
	"net/http"

	"github.com/prplkane/umazona-website/internal/services"
	"github.com/prplkane/umazona-website/internal/util"
)

type ContactsHandler struct {
	Contacts *services.ContactService
}

func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload services.ContactInput
	if err := util.ParseJSON(r, &payload); err != nil {
		util.ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.Contacts.Save(r.Context(), payload)
	if err != nil {
		if errors.Is(err, services.ErrContactMissingFields) {
			util.ErrorResponse(w, http.StatusBadRequest, "Name and Email are required fields.")
			return
		}
		util.ErrorResponse(w, http.StatusInternalServerError, "An error occurred while saving the contact.")
		return
	}

	util.JSONResponse(w, http.StatusCreated, map[string]any{
		"id":    contact.ID,
		"name":  contact.Name,
		"email": contact.Email,
	})
}
