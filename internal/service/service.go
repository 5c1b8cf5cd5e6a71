package service

import (
	"context"
	"io"
	"time"

	"inventory-admin/internal/domain"
)

// ObjectStorage 产品图片依赖的对象存储网关
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

// ImageUpload 传输层校验过的图片载荷（≤5MiB，jpeg/jpg/png/webp）
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (*time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, &domain.InvalidInputError{Message: "invalid date: " + s}
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	return parseDate(*s)
}

// setIf 部分更新：只收集显式传入的字段
func setIf[T any](m map[string]any, col string, v *T) {
	if v != nil {
		m[col] = *v
	}
}
