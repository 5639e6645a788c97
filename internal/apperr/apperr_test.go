package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf_Wrapped(t *testing.T) {
	base := NotFoundf("item %d not found", 7)
	err := fmt.Errorf("load cart: %w", base)

	assert.Equal(t, NotFound, KindOf(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestKindOf_Plain(t *testing.T) {
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "item 7 not found", UserMessage(NotFoundf("item %d not found", 7)))
	assert.Equal(t, defaultMessages[Internal], UserMessage(errors.New("pq: relation does not exist")))
	assert.Equal(t, defaultMessages[ExternalService], UserMessage(Wrap(ExternalService, "", errors.New("502"))))
}

func TestRespond_ValidationFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Respond(c, nil, NewValidation("Dados do item inválidos.", map[string]string{"preco": "deve ser >= 0"}))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ValidationError", body["error"])
	assert.Equal(t, map[string]any{"preco": "deve ser >= 0"}, body["errors"])
}

func TestRespond_InternalHidesCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		Respond(c, nil, errors.New("password=hunter2"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
}
