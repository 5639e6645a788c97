package catalog

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

// GET /Item?todos=true
func (h *Handler) List(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("todos"))
	items, err := h.service.List(c.Request.Context(), !all)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	if items == nil {
		items = []Item{}
	}
	c.JSON(http.StatusOK, items)
}

// GET /Item/agrupado
func (h *Handler) Grouped(c *gin.Context) {
	groups, err := h.service.Grouped(c.Request.Context())
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GET /Item/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// POST /Item
func (h *Handler) Create(c *gin.Context) {
	var in ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, h.logger, apperr.New(apperr.Validation, "Dados do item inválidos."))
		return
	}
	item, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// PUT /Item/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	var in ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, h.logger, apperr.New(apperr.Validation, "Dados do item inválidos."))
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DELETE /Item/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /Item/:id/imagem
func (h *Handler) UploadImage(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Arquivo inválido.", map[string]string{"file": "obrigatório"}))
		return
	}
	defer file.Close()

	url, err := h.service.UploadImage(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imagemUrl": url})
}

func (h *Handler) itemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, apperr.NewValidation("Item inválido.", map[string]string{"id": "deve ser numérico"}))
		return 0, false
	}
	return id, true
}
