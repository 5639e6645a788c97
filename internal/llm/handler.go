package llm

import (
	"net/http"

	"cuattro/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// POST /ai/sugestoes
func (h *Handler) Suggest(c *gin.Context) {
	var req struct {
		Request string `json:"pedido"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Pedido inválido.", map[string]string{"pedido": "obrigatório"}))
		return
	}

	suggestion, err := h.service.Suggest(c.Request.Context(), req.Request)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
