package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContacts_Create(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		h, _, contacts := newTestServer(t, "")

		rec := doJSON(t, h, http.MethodPost, "/api/contacts", "", map[string]string{
			"name":    "Ana",
			"email":   "ana@example.com",
			"phone":   "555-0101",
			"message": "table for six please",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			ID    int64  `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotZero(t, body.ID)
		assert.Equal(t, "Ana", body.Name)
		assert.Equal(t, "ana@example.com", body.Email)

		require.Len(t, contacts.Rows(), 1)
		assert.Equal(t, "table for six please", contacts.Rows()[0].Message)
	})

	t.Run("missing name", func(t *testing.T) {
		h, _, contacts := newTestServer(t, "")
		rec := doJSON(t, h, http.MethodPost, "/api/contacts", "", map[string]string{
			"email": "ana@example.com",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, contacts.Rows())
	})

	t.Run("missing email", func(t *testing.T) {
		h, _, _ := newTestServer(t, "")
		rec := doJSON(t, h, http.MethodPost, "/api/contacts", "", map[string]string{
			"name": "Ana",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate emails allowed", func(t *testing.T) {
		h, _, contacts := newTestServer(t, "")
		for range 2 {
			rec := doJSON(t, h, http.MethodPost, "/api/contacts", "", map[string]string{
				"name":  "Ana",
				"email": "ana@example.com",
			})
			require.Equal(t, http.StatusCreated, rec.Code)
		}
		assert.Len(t, contacts.Rows(), 2)
	})
}
