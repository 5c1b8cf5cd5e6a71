package repo

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"inventory-admin/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	return dupConflict(err, nil, "Email already exists")
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// 最近 5 篇文章预览
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", id).
		Order("created_at DESC").
		Limit(5).
		Find(&u.Posts).Error; err != nil {
		return nil, err
	}

	var posts, comments int64
	if err := r.db.WithContext(ctx).Model(&domain.Post{}).
		Where("author_id = ?", id).Count(&posts).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Where("author_id = ?", id).Count(&comments).Error; err != nil {
		return nil, err
	}
	u.Count = &domain.UserCount{Posts: posts, Comments: comments}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context, f domain.UserFilter, q domain.ListQuery) ([]domain.User, int64, error) {
	base := func(ctx context.Context) *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&domain.User{})
		if f.IsActive != nil {
			tx = tx.Where("is_active = ?", *f.IsActive)
		}
		if f.Role != "" {
			tx = tx.Where("role = ?", f.Role)
		}
		return tx
	}

	var (
		users []domain.User
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tx := base(gctx).Order("created_at DESC").Offset(q.Skip)
		if q.Take > 0 {
			tx = tx.Limit(q.Take)
		}
		if err := tx.Find(&users).Error; err != nil {
			return err
		}
		return r.fillCounts(gctx, users)
	})
	g.Go(func() error { return base(gctx).Count(&total).Error })
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) fillCounts(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]string, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}

	type row struct {
		AuthorID string
		N        int64
	}
	var posts, comments []row
	if err := r.db.WithContext(ctx).Model(&domain.Post{}).
		Select("author_id, COUNT(*) AS n").
		Where("author_id IN ?", ids).
		Group("author_id").
		Scan(&posts).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Select("author_id, COUNT(*) AS n").
		Where("author_id IN ?", ids).
		Group("author_id").
		Scan(&comments).Error; err != nil {
		return err
	}

	pc := make(map[string]int64, len(posts))
	for _, p := range posts {
		pc[p.AuthorID] = p.N
	}
	cc := make(map[string]int64, len(comments))
	for _, c := range comments {
		cc[c.AuthorID] = c.N
	}
	for i := range users {
		users[i].Count = &domain.UserCount{Posts: pc[users[i].ID], Comments: cc[users[i].ID]}
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, id string, data map[string]any) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(data).Error
	return dupConflict(err, nil, "Email already exists")
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{}).Error
}
