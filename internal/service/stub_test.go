package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"inventory-admin/internal/domain"
)

// 内存桩仓库：模拟唯一索引、created_at 倒序和分页，测试不碰真库

// 单调递增的假时钟，代替 autoCreateTime
var stubClock = struct {
	mu sync.Mutex
	t  time.Time
}{t: time.Unix(1700000000, 0)}

func nextCreatedAt() time.Time {
	stubClock.mu.Lock()
	defer stubClock.mu.Unlock()
	stubClock.t = stubClock.t.Add(time.Second)
	return stubClock.t
}

func page[T any](items []T, q domain.ListQuery) []T {
	if q.Skip >= len(items) {
		return []T{}
	}
	items = items[q.Skip:]
	if q.Take > 0 && q.Take < len(items) {
		items = items[:q.Take]
	}
	return items
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return &domain.ConflictError{Message: "Email already exists"}
		}
	}
	cp := *u
	cp.CreatedAt = nextCreatedAt()
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) List(_ context.Context, f domain.UserFilter, q domain.ListQuery) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return page(out, q), total, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	for k, v := range data {
		switch k {
		case "email":
			u.Email = v.(string)
		case "password":
			u.Password = v.(string)
		case "role":
			u.Role = v.(string)
		case "name":
			s := v.(string)
			u.Name = &s
		case "is_active":
			u.IsActive = v.(bool)
		}
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type stubCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: map[string]*domain.Category{}}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.categories {
		if e.Name == c.Name {
			return &domain.ConflictError{Message: "Category name already exists"}
		}
	}
	cp := *c
	cp.CreatedAt = nextCreatedAt()
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubCategoryRepo) List(_ context.Context, f domain.CategoryFilter, q domain.ListQuery) ([]domain.Category, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Category
	for _, c := range r.categories {
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return page(out, q), total, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, id string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil
	}
	for k, v := range data {
		switch k {
		case "name":
			c.Name = v.(string)
		case "description":
			s := v.(string)
			c.Description = &s
		case "is_active":
			c.IsActive = v.(bool)
		}
	}
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

type stubSupplierRepo struct {
	mu        sync.Mutex
	suppliers map[string]*domain.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: map[string]*domain.Supplier{}}
}

func (r *stubSupplierRepo) Create(_ context.Context, s *domain.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.suppliers {
		if e.Name == s.Name {
			return &domain.ConflictError{Message: "Supplier name already exists"}
		}
	}
	cp := *s
	cp.CreatedAt = nextCreatedAt()
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id string) (*domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *stubSupplierRepo) FindByName(_ context.Context, name string) (*domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.suppliers {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubSupplierRepo) List(_ context.Context, f domain.SupplierFilter, q domain.ListQuery) ([]domain.Supplier, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Supplier
	for _, s := range r.suppliers {
		if f.IsActive != nil && s.IsActive != *f.IsActive {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return page(out, q), total, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, id string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return nil
	}
	for k, v := range data {
		switch k {
		case "name":
			s.Name = v.(string)
		case "contact_person":
			str := v.(string)
			s.ContactPerson = &str
		case "phone":
			str := v.(string)
			s.Phone = &str
		case "email":
			str := v.(string)
			s.Email = &str
		case "address":
			str := v.(string)
			s.Address = &str
		case "is_active":
			s.IsActive = v.(bool)
		}
	}
	return nil
}

func (r *stubSupplierRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.suppliers, id)
	return nil
}

type stubPostRepo struct {
	mu    sync.Mutex
	posts map[string]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: map[string]*domain.Post{}}
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.CreatedAt = nextCreatedAt()
	r.posts[p.ID] = &cp
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubPostRepo) List(_ context.Context, f domain.PostFilter, q domain.ListQuery) ([]domain.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Post
	for _, p := range r.posts {
		if f.Published != nil && p.Published != *f.Published {
			continue
		}
		if f.AuthorID != "" && p.AuthorID != f.AuthorID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return page(out, q), total, nil
}

func (r *stubPostRepo) Update(_ context.Context, id string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil
	}
	for k, v := range data {
		switch k {
		case "title":
			p.Title = v.(string)
		case "content":
			s := v.(string)
			p.Content = &s
		case "published":
			p.Published = v.(bool)
		case "author_id":
			p.AuthorID = v.(string)
		}
	}
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

type stubProductRepo struct {
	mu        sync.Mutex
	products  map[string]*domain.Product
	createErr error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: map[string]*domain.Product{}}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, e := range r.products {
		if e.SKU == p.SKU {
			return &domain.ConflictError{Message: "Product SKU already exists"}
		}
		if e.Barcode != nil && p.Barcode != nil && *e.Barcode == *p.Barcode {
			return &domain.ConflictError{Message: "Product barcode already exists"}
		}
	}
	cp := *p
	cp.CreatedAt = nextCreatedAt()
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) List(_ context.Context, f domain.ProductFilter, q domain.ListQuery) ([]domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		if f.SupplierID != "" && (p.SupplierID == nil || *p.SupplierID != f.SupplierID) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	return page(out, q), total, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, data map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil
	}
	for k, v := range data {
		switch k {
		case "name":
			p.Name = v.(string)
		case "description":
			s := v.(string)
			p.Description = &s
		case "price":
			p.Price = v.(float64)
		case "stock":
			p.Stock = v.(int)
		case "sku":
			p.SKU = v.(string)
		case "barcode":
			s := v.(string)
			p.Barcode = &s
		case "image_url":
			s := v.(string)
			p.ImageURL = &s
		case "is_active":
			p.IsActive = v.(bool)
		case "category_id":
			s := v.(string)
			p.CategoryID = &s
		case "supplier_id":
			s := v.(string)
			p.SupplierID = &s
		}
	}
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

// stubStorage 记录上传/删除轨迹的对象存储桩
type stubStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: map[string][]byte{}}
}

const stubCDN = "https://cdn.test/"

func (s *stubStorage) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	s.objects[key] = buf.Bytes()
	s.uploaded = append(s.uploaded, key)
	return stubCDN + key, nil
}

func (s *stubStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.objects[key]; !ok {
		return errors.New("object not found: " + key)
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubStorage) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, stubCDN)
}
