package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"inventory-admin/internal/domain"
)

func serve(t *testing.T, err error) (int, ErrorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { WriteError(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body ErrorBody
	if derr := json.Unmarshal(w.Body.Bytes(), &body); derr != nil {
		t.Fatalf("decode: %v", derr)
	}
	return w.Code, body
}

func TestWriteErrorMapping(t *testing.T) {
	if code, body := serve(t, &domain.NotFoundError{Entity: "Post", ID: "p1"}); code != 404 ||
		body.Message != "Post with ID p1 not found" {
		t.Fatalf("not found: code=%d body=%+v", code, body)
	}
	if code, _ := serve(t, &domain.ConflictError{Message: "Email already exists"}); code != 409 {
		t.Fatalf("conflict: code=%d", code)
	}
	if code, _ := serve(t, &domain.InvalidInputError{Message: "invalid date: x"}); code != 400 {
		t.Fatalf("invalid input: code=%d", code)
	}
}

func TestWriteErrorOpaqueInternal(t *testing.T) {
	// 未分类错误（如外键违规、连接断开）不把底层细节透出去
	raw := errors.New(`insert or update on table "posts" violates foreign key constraint`)
	code, body := serve(t, raw)
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("leaked detail: %q", body.Message)
	}
}
