package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory-admin/internal/domain"
)

// listQuery skip 缺省 0，take 缺省 10；非法值回退缺省
func listQuery(c *gin.Context) domain.ListQuery {
	q := domain.ListQuery{Skip: 0, Take: 10}
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			q.Skip = n
		}
	}
	if v := c.Query("take"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Take = n
		}
	}
	return q
}

func boolQuery(c *gin.Context, name string) *bool {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}
