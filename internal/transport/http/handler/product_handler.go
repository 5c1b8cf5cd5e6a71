package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inventory-admin/internal/domain"
	"inventory-admin/internal/service"
	resp "inventory-admin/internal/transport/http/response"
)

const maxImageBytes = 5 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

type ProductAdmin interface {
	Create(ctx context.Context, in service.CreateProductInput, image *service.ImageUpload) (*domain.Product, error)
	List(ctx context.Context, f domain.ProductFilter, q domain.ListQuery) (*domain.ListResult[domain.Product], error)
	FindOne(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, in service.UpdateProductInput, image *service.ImageUpload) (*domain.Product, error)
	Remove(ctx context.Context, id string) (string, error)
}

type ProductHandler struct {
	svc ProductAdmin
}

func NewProductHandler(svc ProductAdmin) *ProductHandler { return &ProductHandler{svc: svc} }

func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/products")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/category/:categoryId", h.listByCategory)
	g.GET("/supplier/:supplierId", h.listBySupplier)
	g.GET("/:id", h.findOne)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// imageFromForm 取 multipart 的 image 字段；字段缺失返回 (nil, "")
func imageFromForm(c *gin.Context) (*service.ImageUpload, string) {
	fh, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, ""
		}
		return nil, "Invalid image field"
	}
	if fh.Size > maxImageBytes {
		return nil, "Image size must not exceed 5MB"
	}
	ct := fh.Header.Get("Content-Type")
	if _, ok := allowedImageTypes[ct]; !ok {
		return nil, "Image must be JPEG, PNG or WebP"
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "Invalid image field"
	}
	defer func(f multipart.File) { _ = f.Close() }(f)
	// 读进内存：上限 5MiB，换文件名前还要重复读
	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, "Invalid image field"
	}
	if len(data) > maxImageBytes {
		return nil, "Image size must not exceed 5MB"
	}
	return &service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: ct,
		Body:        bytes.NewReader(data),
	}, ""
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

func (h *ProductHandler) create(c *gin.Context) {
	var in service.CreateProductInput
	var image *service.ImageUpload

	if isMultipart(c) {
		if err := c.ShouldBind(&in); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
		img, msg := imageFromForm(c)
		if msg != "" {
			resp.BadRequest(c, msg)
			return
		}
		image = img
	} else {
		if err := c.ShouldBindJSON(&in); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}

	out, err := h.svc.Create(c.Request.Context(), in, image)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) list(c *gin.Context) {
	f := domain.ProductFilter{
		IsActive:   boolQuery(c, "isActive"),
		CategoryID: c.Query("categoryId"),
		SupplierID: c.Query("supplierId"),
	}
	h.writeList(c, f)
}

func (h *ProductHandler) listByCategory(c *gin.Context) {
	f := domain.ProductFilter{
		IsActive:   boolQuery(c, "isActive"),
		CategoryID: c.Param("categoryId"),
	}
	h.writeList(c, f)
}

func (h *ProductHandler) listBySupplier(c *gin.Context) {
	f := domain.ProductFilter{
		IsActive:   boolQuery(c, "isActive"),
		SupplierID: c.Param("supplierId"),
	}
	h.writeList(c, f)
}

func (h *ProductHandler) writeList(c *gin.Context, f domain.ProductFilter) {
	out, err := h.svc.List(c.Request.Context(), f, listQuery(c))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) findOne(c *gin.Context) {
	out, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) update(c *gin.Context) {
	var in service.UpdateProductInput
	var image *service.ImageUpload

	if isMultipart(c) {
		if err := c.ShouldBind(&in); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
		img, msg := imageFromForm(c)
		if msg != "" {
			resp.BadRequest(c, msg)
			return
		}
		image = img
	} else {
		if err := c.ShouldBindJSON(&in); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}

	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), in, image)
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) remove(c *gin.Context) {
	msg, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
