package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/service"
	resp "inventory-admin/internal/transport/http/response"
)

type SupplierAdmin interface {
	Create(ctx context.Context, in service.CreateSupplierInput) (*domain.Supplier, error)
	List(ctx context.Context, f domain.SupplierFilter, q domain.ListQuery) (*domain.ListResult[domain.Supplier], error)
	FindOne(ctx context.Context, id string) (*domain.Supplier, error)
	Update(ctx context.Context, id string, in service.UpdateSupplierInput) (*domain.Supplier, error)
	Remove(ctx context.Context, id string) (string, error)
}

type SupplierHandler struct {
	svc SupplierAdmin
}

func NewSupplierHandler(svc SupplierAdmin) *SupplierHandler { return &SupplierHandler{svc: svc} }

func (h *SupplierHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/suppliers")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.findOne)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *SupplierHandler) create(c *gin.Context) {
	var in service.CreateSupplierInput
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

func (h *SupplierHandler) list(c *gin.Context) {
	f := domain.SupplierFilter{IsActive: boolQuery(c, "isActive")}
	out, err := h.svc.List(c.Request.Context(), f, listQuery(c))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *SupplierHandler) findOne(c *gin.Context) {
	out, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *SupplierHandler) update(c *gin.Context) {
	var in service.UpdateSupplierInput
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

func (h *SupplierHandler) remove(c *gin.Context) {
	msg, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
