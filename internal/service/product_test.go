package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"inventory-admin/internal/domain"
)

func newProductService() (*ProductService, *stubProductRepo, *stubStorage) {
	repo := newStubProductRepo()
	store := newStubStorage()
	return NewProductService(repo, store, zap.NewNop()), repo, store
}

func pngUpload(name string) *ImageUpload {
	return &ImageUpload{
		Filename:    name,
		ContentType: "image/png",
		Body:        bytes.NewReader([]byte("png-bytes")),
	}
}

func TestProductCreateWithImage(t *testing.T) {
	svc, _, store := newProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductInput{Name: "Cola", SKU: "COLA-01", Price: 1.5}, pngUpload("cola.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ImageURL == nil {
		t.Fatal("image url not set")
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("uploads = %d, want 1", len(store.uploaded))
	}
	key := store.uploaded[0]
	if !strings.HasPrefix(key, "products/COLA-01-") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key: %q", key)
	}
	if *p.ImageURL != stubCDN+key {
		t.Fatalf("url = %q, want %q", *p.ImageURL, stubCDN+key)
	}
}

func TestProductCreateSKUConflict(t *testing.T) {
	svc, _, store := newProductService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductInput{Name: "Cola", SKU: "COLA-01"}, nil); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, CreateProductInput{Name: "Other", SKU: "COLA-01"}, pngUpload("x.png"))
	if !domain.IsConflict(err) || err.Error() != "Product SKU already exists" {
		t.Fatalf("expected sku conflict, got %v", err)
	}
	// 预检查在上传之前挡掉，不应产生对象
	if len(store.uploaded) != 0 {
		t.Fatalf("conflict should not upload, got %v", store.uploaded)
	}
}

func TestProductCreateBarcodeConflict(t *testing.T) {
	svc, _, _ := newProductService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductInput{Name: "A", SKU: "A-1", Barcode: strp("111")}, nil); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, CreateProductInput{Name: "B", SKU: "B-1", Barcode: strp("111")}, nil)
	if !domain.IsConflict(err) || err.Error() != "Product barcode already exists" {
		t.Fatalf("expected barcode conflict, got %v", err)
	}
}

func TestProductCreateUploadFailure(t *testing.T) {
	svc, _, store := newProductService()
	store.uploadErr = errors.New("bucket down")

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "Cola", SKU: "COLA-01"}, pngUpload("x.png"))
	if !domain.IsStorageError(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Failed to upload image") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestProductCreateRowFailureCleansUpload(t *testing.T) {
	svc, repo, store := newProductService()
	repo.createErr = errors.New("db down")

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "Cola", SKU: "COLA-01"}, pngUpload("x.png"))
	if err == nil {
		t.Fatal("expected error")
	}
	// 行没写进去，已上传对象要被回收
	if len(store.objects) != 0 {
		t.Fatalf("orphan objects left: %v", store.objects)
	}
	if len(store.deleted) != 1 {
		t.Fatalf("deletes = %d, want 1", len(store.deleted))
	}
}

func TestProductUpdateReplacesImage(t *testing.T) {
	svc, _, store := newProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductInput{Name: "Cola", SKU: "COLA-01"}, pngUpload("old.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldKey := store.uploaded[0]

	got, err := svc.Update(ctx, p.ID, UpdateProductInput{}, pngUpload("new.png"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != oldKey {
		t.Fatalf("old image not removed: deleted=%v", store.deleted)
	}
	if len(store.uploaded) != 2 {
		t.Fatalf("uploads = %d, want 2", len(store.uploaded))
	}
	newKey := store.uploaded[1]
	if got.ImageURL == nil || *got.ImageURL != stubCDN+newKey {
		t.Fatalf("image url not replaced: %+v", got.ImageURL)
	}
}

func TestProductUpdateImageDeleteFailureNonFatal(t *testing.T) {
	svc, _, store := newProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductInput{Name: "Cola", SKU: "COLA-01"}, pngUpload("old.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	store.deleteErr = errors.New("object locked")
	got, err := svc.Update(ctx, p.ID, UpdateProductInput{}, pngUpload("new.png"))
	if err != nil {
		t.Fatalf("delete failure must not block replacement: %v", err)
	}
	if got.ImageURL == nil || !strings.HasSuffix(*got.ImageURL, ".png") {
		t.Fatalf("new image not applied: %+v", got.ImageURL)
	}
}

func TestProductUpdateSKUConflict(t *testing.T) {
	svc, _, _ := newProductService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductInput{Name: "A", SKU: "A-1"}, nil); err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.Create(ctx, CreateProductInput{Name: "B", SKU: "B-1"}, nil)
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	if _, err := svc.Update(ctx, b.ID, UpdateProductInput{SKU: strp("A-1")}, nil); !domain.IsConflict(err) {
		t.Fatalf("expected sku conflict, got %v", err)
	}
	// 自己的 SKU 原样传回来不算冲突
	if _, err := svc.Update(ctx, b.ID, UpdateProductInput{SKU: strp("B-1"), Price: floatp(9.9)}, nil); err != nil {
		t.Fatalf("same-sku update: %v", err)
	}
}

func TestProductRemoveDeletesImage(t *testing.T) {
	svc, _, store := newProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductInput{Name: "Cola", SKU: "COLA-01"}, pngUpload("cola.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	key := store.uploaded[0]

	msg, err := svc.Remove(ctx, p.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if msg != "Product with ID "+p.ID+" deleted successfully" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if len(store.deleted) != 1 || store.deleted[0] != key {
		t.Fatalf("image not removed: deleted=%v", store.deleted)
	}
}

func TestProductRemoveImageFailureNonFatal(t *testing.T) {
	svc, _, store := newProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductInput{Name: "Cola", SKU: "COLA-01"}, pngUpload("cola.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	store.deleteErr = errors.New("object locked")
	if _, err := svc.Remove(ctx, p.ID); err != nil {
		t.Fatalf("image delete failure must not block row delete: %v", err)
	}
	if _, err := svc.FindOne(ctx, p.ID); !domain.IsNotFound(err) {
		t.Fatalf("row should be gone, got %v", err)
	}
}

func TestProductListByCategory(t *testing.T) {
	svc, _, _ := newProductService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateProductInput{Name: "A", SKU: "A-1", CategoryID: strp("cat1")}, nil); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if _, err := svc.Create(ctx, CreateProductInput{Name: "B", SKU: "B-1", CategoryID: strp("cat2")}, nil); err != nil {
		t.Fatalf("create b: %v", err)
	}

	out, err := svc.List(ctx, domain.ProductFilter{CategoryID: "cat1"}, domain.ListQuery{Take: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Data) != 1 || out.Data[0].SKU != "A-1" {
		t.Fatalf("unexpected data: %+v", out.Data)
	}
	if out.Meta.Total != 1 || out.Meta.Take != 10 {
		t.Fatalf("unexpected meta: %+v", out.Meta)
	}
}

func TestProductListNewestFirst(t *testing.T) {
	svc, _, _ := newProductService()
	ctx := context.Background()

	for _, sku := range []string{"A-1", "B-1", "C-1"} {
		if _, err := svc.Create(ctx, CreateProductInput{Name: sku, SKU: sku}, nil); err != nil {
			t.Fatalf("create %s: %v", sku, err)
		}
	}

	out, err := svc.List(ctx, domain.ProductFilter{}, domain.ListQuery{Take: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := make([]string, 0, len(out.Data))
	for _, p := range out.Data {
		got = append(got, p.SKU)
	}
	// created_at 倒序：后建的排前面
	want := []string{"C-1", "B-1", "A-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	for i := 1; i < len(out.Data); i++ {
		if out.Data[i].CreatedAt.After(out.Data[i-1].CreatedAt) {
			t.Fatalf("rows not in descending creation time: %v", got)
		}
	}
}

func floatp(f float64) *float64 { return &f }
