package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/service"
	resp "inventory-admin/internal/transport/http/response"
)

type CategoryAdmin interface {
	Create(ctx context.Context, in service.CreateCategoryInput) (*domain.Category, error)
	List(ctx context.Context, f domain.CategoryFilter, q domain.ListQuery) (*domain.ListResult[domain.Category], error)
	FindOne(ctx context.Context, id string) (*domain.Category, error)
	Update(ctx context.Context, id string, in service.UpdateCategoryInput) (*domain.Category, error)
	Remove(ctx context.Context, id string) (string, error)
}

type CategoryHandler struct {
	svc CategoryAdmin
}

func NewCategoryHandler(svc CategoryAdmin) *CategoryHandler { return &CategoryHandler{svc: svc} }

func (h *CategoryHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.findOne)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *CategoryHandler) create(c *gin.Context) {
	var in service.CreateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *CategoryHandler) list(c *gin.Context) {
	f := domain.CategoryFilter{IsActive: boolQuery(c, "isActive")}
	out, err := h.svc.List(c.Request.Context(), f, listQuery(c))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) findOne(c *gin.Context) {
	out, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) update(c *gin.Context) {
	var in service.UpdateCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) remove(c *gin.Context) {
	msg, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
