package auth

import (
	"encoding/json"
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

// GET /Usuario
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Current(c.Request.Context(), PrincipalFrom(c))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /Usuario
func (h *Handler) UpdateMe(c *gin.Context) {
	var req struct {
		Nome string `json:"nome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.New(apperr.Validation, "Dados do usuário inválidos."))
		return
	}

	p := PrincipalFrom(c)
	if _, err := h.service.Current(c.Request.Context(), p); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	user, err := h.service.UpdateName(c.Request.Context(), p.Subject, req.Nome)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /Usuario/todos
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	if users == nil {
		users = []User{}
	}
	c.JSON(http.StatusOK, users)
}

// PUT /Usuario/role/:id with the bare role as body: its number or its name.
func (h *Handler) UpdateRole(c *gin.Context) {
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		apperr.Respond(c, h.logger, invalidRole())
		return
	}
	text := string(raw)
	var name string
	if json.Unmarshal(raw, &name) == nil {
		text = name
	}
	role, err := ParseRole(text)
	if err != nil {
		apperr.Respond(c, h.logger, invalidRole())
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func invalidRole() error {
	return apperr.NewValidation("Perfil inválido.", map[string]string{"role": "deve ser 0, 1, 2 ou Cliente, Funcionario, Admin"})
}
