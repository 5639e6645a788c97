package category

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cuattro/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate_ReusesExistingCaseInsensitive(t *testing.T) {
	repo := NewInMemoryRepository(Category{ID: 5, Name: "Bebidas", Active: true})
	svc := NewService(repo, nil)

	got, err := svc.GetOrCreate(context.Background(), "bebidas")
	require.NoError(t, err)
	assert.Equal(t, 5, got.ID)

	all, _ := svc.List(context.Background())
	assert.Len(t, all, 1)
}

func TestGetOrCreate_CreatesWithDefaults(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)

	got, err := svc.GetOrCreate(context.Background(), "Massas")
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Massas", got.Name)
	assert.Equal(t, "Categoria Massas", got.Description)
	assert.Equal(t, 0, got.Order)
	assert.True(t, got.Active)
}

func TestGetOrCreate_IgnoresInactiveMatch(t *testing.T) {
	repo := NewInMemoryRepository(Category{ID: 1, Name: "Bebidas", Active: false})
	svc := NewService(repo, nil)

	got, err := svc.GetOrCreate(context.Background(), "Bebidas")
	require.NoError(t, err)
	assert.NotEqual(t, 1, got.ID)
}

func TestGetOrCreate_RejectsBlankName(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	_, err := svc.GetOrCreate(context.Background(), "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), nil)
	_, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListActive_FiltersAndOrders(t *testing.T) {
	repo := NewInMemoryRepository(
		Category{ID: 1, Name: "B", Order: 2, Active: true},
		Category{ID: 2, Name: "A", Order: 1, Active: true},
		Category{ID: 3, Name: "C", Order: 0, Active: false},
	)
	got, err := NewService(repo, nil).ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 1, got[1].ID)
}

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, nil)
	r.GET("/Categoria", h.List)
	r.GET("/Categoria/:id", h.Get)
	r.POST("/Categoria/obter-ou-criar", h.GetOrCreate)
	return r
}

func TestHandler_ListActive(t *testing.T) {
	repo := NewInMemoryRepository(
		Category{ID: 1, Name: "Bebidas", Active: true},
		Category{ID: 2, Name: "Antigas", Active: false},
	)
	r := newTestRouter(NewService(repo, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/Categoria?ativa=true", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body []Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Bebidas", body[0].Name)
}

func TestHandler_GetBadID(t *testing.T) {
	r := newTestRouter(NewService(NewInMemoryRepository(), nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/Categoria/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetOrCreate(t *testing.T) {
	r := newTestRouter(NewService(NewInMemoryRepository(), nil))

	req := httptest.NewRequest(http.MethodPost, "/Categoria/obter-ou-criar", strings.NewReader(`{"nome":"Doces"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Doces", got.Name)
	assert.Equal(t, "Categoria Doces", got.Description)
}
