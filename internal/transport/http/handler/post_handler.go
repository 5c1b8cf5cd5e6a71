package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/service"
	resp "inventory-admin/internal/transport/http/response"
)

type PostAdmin interface {
	Create(ctx context.Context, in service.CreatePostInput) (*domain.Post, error)
	List(ctx context.Context, f domain.PostFilter, q domain.ListQuery) (*domain.ListResult[domain.Post], error)
	FindOne(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, id string, in service.UpdatePostInput) (*domain.Post, error)
	Publish(ctx context.Context, id string) (*domain.Post, error)
	Unpublish(ctx context.Context, id string) (*domain.Post, error)
	Remove(ctx context.Context, id string) (string, error)
}

type PostHandler struct {
	svc PostAdmin
}

func NewPostHandler(svc PostAdmin) *PostHandler { return &PostHandler{svc: svc} }

func (h *PostHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/posts")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/published", h.listPublished)
	g.GET("/author/:authorId", h.listByAuthor)
	g.GET("/:id", h.findOne)
	g.PATCH("/:id", h.update)
	g.PATCH("/:id/publish", h.publish)
	g.PATCH("/:id/unpublish", h.unpublish)
	g.DELETE("/:id", h.remove)
}

func (h *PostHandler) create(c *gin.Context) {
	var in service.CreatePostInput
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

func (h *PostHandler) list(c *gin.Context) {
	f := domain.PostFilter{
		Published: boolQuery(c, "published"),
		AuthorID:  c.Query("authorId"),
	}
	out, err := h.svc.List(c.Request.Context(), f, listQuery(c))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) listPublished(c *gin.Context) {
	published := true
	f := domain.PostFilter{Published: &published}
	out, err := h.svc.List(c.Request.Context(), f, listQuery(c))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) listByAuthor(c *gin.Context) {
	f := domain.PostFilter{
		Published: boolQuery(c, "published"),
		AuthorID:  c.Param("authorId"),
	}
	out, err := h.svc.List(c.Request.Context(), f, listQuery(c))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) findOne(c *gin.Context) {
	out, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) update(c *gin.Context) {
	var in service.UpdatePostInput
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

func (h *PostHandler) publish(c *gin.Context) {
	out, err := h.svc.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) unpublish(c *gin.Context) {
	out, err := h.svc.Unpublish(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) remove(c *gin.Context) {
	msg, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
