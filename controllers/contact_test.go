package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"glowbook-backend/crm"
	"glowbook-backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactRouter(store *repository.MemoryLeadStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cc := NewContactController(store, nil)
	r.POST("/contact", cc.SubmitContact)
	return r
}

func TestSubmitContactStoresLead(t *testing.T) {
	store := repository.NewMemoryLeadStore()
	r := contactRouter(store)

	body := `{
		"name": "Dana Reyes",
		"email": "dana@example.com",
		"service": "Bridal makeup",
		"preferredDate": "2025-06-14",
		"partySize": 6,
		"addOns": ["lashes", "airbrush"],
		"message": "Looking for soft glam."
	}`
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	rows, err := store.ListLeads()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	lead := crm.DecodeLead(rows[0])
	assert.Equal(t, "Dana Reyes", lead.Name)
	assert.Equal(t, "Looking for soft glam.", lead.PrimaryNote())
	assert.Equal(t, "Bridal makeup", lead.EventType)
	require.NotNil(t, lead.PartySize)
	assert.Equal(t, 6, *lead.PartySize)
	assert.Equal(t, []string{"lashes", "airbrush"}, lead.AddOns)
	assert.Equal(t, "contact-form", lead.Source)
	assert.Equal(t, crm.StageUncontacted, lead.Stage)
	require.NotNil(t, rows[0].EventDate)
}

func TestSubmitContactRejectsEmptyForm(t *testing.T) {
	r := contactRouter(repository.NewMemoryLeadStore())

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"phone": "+15551234567"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitContactEmailOnlyIsEnough(t *testing.T) {
	store := repository.NewMemoryLeadStore()
	r := contactRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"email": "dana@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	rows, err := store.ListLeads()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
