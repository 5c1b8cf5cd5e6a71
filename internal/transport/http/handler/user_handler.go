package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/service"
	resp "inventory-admin/internal/transport/http/response"
)

type UserAdmin interface {
	Create(ctx context.Context, in service.CreateUserInput) (*domain.User, error)
	List(ctx context.Context, f domain.UserFilter, q domain.ListQuery) (*domain.ListResult[domain.User], error)
	FindOne(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in service.UpdateUserInput) (*domain.User, error)
	Remove(ctx context.Context, id string) (string, error)
}

type UserHandler struct {
	svc UserAdmin
}

func NewUserHandler(svc UserAdmin) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.findOne)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *UserHandler) create(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) list(c *gin.Context) {
	f := domain.UserFilter{
		IsActive: boolQuery(c, "isActive"),
		Role:     c.Query("role"),
	}
	out, err := h.svc.List(c.Request.Context(), f, listQuery(c))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) findOne(c *gin.Context) {
	u, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) update(c *gin.Context) {
	var in service.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) remove(c *gin.Context) {
	msg, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
