package order

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

// POST /Pedido
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.New(apperr.Validation, "Dados do pedido inválidos."))
		return
	}
	o, err := h.service.Create(c.Request.Context(), c.GetString(auth.ContextUserID), req)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// POST /Pedido/checkout
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.New(apperr.Validation, "Dados do pedido inválidos."))
		return
	}
	o, err := h.service.Checkout(c.Request.Context(), c.GetString(auth.ContextUserID), req)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// GET /Pedido
func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), auth.PrincipalFrom(c))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	if orders == nil {
		orders = []Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// GET /Pedido/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	o, err := h.service.Get(c.Request.Context(), auth.PrincipalFrom(c), id)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// PATCH /Pedido/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := h.orderID(c)
	if !ok {
		return
	}
	var req struct {
		Status *Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Dados do pedido inválidos.", map[string]string{"status": "obrigatório"}))
		return
	}
	o, err := h.service.UpdateStatus(c.Request.Context(), id, *req.Status)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) orderID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Pedido inválido.", map[string]string{"id": "deve ser numérico"}))
		return 0, false
	}
	return id, true
}
