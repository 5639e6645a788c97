package category

import (
	"net/http"
	"strconv"

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

// GET /Categoria?ativa=true
func (h *Handler) List(c *gin.Context) {
	var (
		categories []Category
		err        error
	)
	if active, _ := strconv.ParseBool(c.Query("ativa")); active {
		categories, err = h.service.ListActive(c.Request.Context())
	} else {
		categories, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	if categories == nil {
		categories = []Category{}
	}
	c.JSON(http.StatusOK, categories)
}

// GET /Categoria/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Categoria inválida.", map[string]string{"id": "deve ser numérico"}))
		return
	}
	cat, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// POST /Categoria
func (h *Handler) Create(c *gin.Context) {
	var req Category
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.New(apperr.Validation, "Dados da categoria inválidos."))
		return
	}
	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /Categoria/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Categoria inválida.", map[string]string{"id": "deve ser numérico"}))
		return
	}
	var req Category
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.New(apperr.Validation, "Dados da categoria inválidos."))
		return
	}
	req.ID = id
	updated, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// POST /Categoria/obter-ou-criar
func (h *Handler) GetOrCreate(c *gin.Context) {
	var req struct {
		Nome string `json:"nome"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.New(apperr.Validation, "Dados da categoria inválidos."))
		return
	}
	cat, err := h.service.GetOrCreate(c.Request.Context(), req.Nome)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}
