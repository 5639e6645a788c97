package cart

import (
	"net/http"
	"strconv"

	"cuattro/internal/apperr"
	"cuattro/internal/auth"

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

type addRequest struct {
	ItemID     int `json:"itemId" binding:"required"`
	Quantidade int `json:"quantidade"`
}

// GET /Carrinho
func (h *Handler) Get(c *gin.Context) {
	state, err := h.service.Get(c.Request.Context(), c.GetString(auth.ContextUserID))
	h.respond(c, http.StatusOK, state, err)
}

// POST /Carrinho/itens
func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Dados inválidos.", map[string]string{"itemId": "obrigatório"}))
		return
	}
	if req.Quantidade == 0 {
		req.Quantidade = 1
	}
	state, err := h.service.AddItem(c.Request.Context(), c.GetString(auth.ContextUserID), req.ItemID, req.Quantidade)
	h.respond(c, http.StatusOK, state, err)
}

// POST /Carrinho/itens/:itemId/decrementar
func (h *Handler) Decrement(c *gin.Context) {
	itemID, ok := h.itemID(c)
	if !ok {
		return
	}
	state, err := h.service.DecrementItem(c.Request.Context(), c.GetString(auth.ContextUserID), itemID)
	h.respond(c, http.StatusOK, state, err)
}

// DELETE /Carrinho/itens/:itemId
func (h *Handler) Remove(c *gin.Context) {
	itemID, ok := h.itemID(c)
	if !ok {
		return
	}
	state, err := h.service.RemoveItem(c.Request.Context(), c.GetString(auth.ContextUserID), itemID)
	h.respond(c, http.StatusOK, state, err)
}

// DELETE /Carrinho
func (h *Handler) Clear(c *gin.Context) {
	state, err := h.service.Clear(c.Request.Context(), c.GetString(auth.ContextUserID))
	h.respond(c, http.StatusOK, state, err)
}

func (h *Handler) respond(c *gin.Context, status int, state State, err error) {
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(status, state)
}

func (h *Handler) itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Item inválido.", map[string]string{"itemId": "deve ser numérico"}))
		return 0, false
	}
	return id, true
}
