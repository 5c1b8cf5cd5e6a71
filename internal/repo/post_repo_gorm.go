package repo

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"inventory-admin/internal/domain"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", id).
		Order("created_at DESC").
		Find(&p.Comments).Error; err != nil {
		return nil, err
	}
	p.Count = &domain.PostCount{Comments: int64(len(p.Comments))}
	return &p, nil
}

func (r *PostRepo) List(ctx context.Context, f domain.PostFilter, q domain.ListQuery) ([]domain.Post, int64, error) {
	base := func(ctx context.Context) *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&domain.Post{})
		if f.Published != nil {
			tx = tx.Where("published = ?", *f.Published)
		}
		if f.AuthorID != "" {
			tx = tx.Where("author_id = ?", f.AuthorID)
		}
		return tx
	}

	var (
		posts []domain.Post
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tx := base(gctx).Preload("Author").Order("created_at DESC").Offset(q.Skip)
		if q.Take > 0 {
			tx = tx.Limit(q.Take)
		}
		if err := tx.Find(&posts).Error; err != nil {
			return err
		}
		return r.fillCommentCounts(gctx, posts)
	})
	g.Go(func() error { return base(gctx).Count(&total).Error })
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepo) fillCommentCounts(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].ID)
	}

	type row struct {
		PostID string
		N      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&domain.Comment{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	byPost := make(map[string]int64, len(rows))
	for _, rw := range rows {
		byPost[rw.PostID] = rw.N
	}
	for i := range posts {
		posts[i].Count = &domain.PostCount{Comments: byPost[posts[i].ID]}
	}
	return nil
}

func (r *PostRepo) Update(ctx context.Context, id string, data map[string]any) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).Updates(data).Error
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Post{}).Error
}
