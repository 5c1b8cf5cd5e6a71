package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-admin/internal/domain"
	"inventory-admin/pkg/utils"
)

type PostService struct {
	repo domain.PostRepository
	log  *zap.Logger
}

func NewPostService(repo domain.PostRepository, log *zap.Logger) *PostService {
	return &PostService{repo: repo, log: log}
}

type CreatePostInput struct {
	Title     string  `json:"title" binding:"required"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
	AuthorID  string  `json:"authorId" binding:"required"`
}

type UpdatePostInput struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
	AuthorID  *string `json:"authorId"`
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*domain.Post, error) {
	p := &domain.Post{
		ID:       utils.NewID(),
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: in.AuthorID,
	}
	if in.Published != nil {
		p.Published = *in.Published
	}
	// 作者存在性交给 author_id 外键约束
	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("create post failed", zap.Error(err))
		return nil, err
	}
	return s.FindOne(ctx, p.ID)
}

func (s *PostService) List(ctx context.Context, f domain.PostFilter, q domain.ListQuery) (*domain.ListResult[domain.Post], error) {
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		s.log.Error("list posts failed", zap.Error(err))
		return nil, err
	}
	return domain.NewListResult(items, total, q), nil
}

func (s *PostService) FindOne(ctx context.Context, id string) (*domain.Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("find post failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Entity: "Post", ID: id}
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id string, in UpdatePostInput) (*domain.Post, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return nil, err
	}

	data := map[string]any{}
	setIf(data, "title", in.Title)
	setIf(data, "content", in.Content)
	setIf(data, "published", in.Published)
	setIf(data, "author_id", in.AuthorID)

	if len(data) > 0 {
		if err := s.repo.Update(ctx, id, data); err != nil {
			s.log.Error("update post failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}
	return s.FindOne(ctx, id)
}

func (s *PostService) Publish(ctx context.Context, id string) (*domain.Post, error) {
	published := true
	return s.Update(ctx, id, UpdatePostInput{Published: &published})
}

func (s *PostService) Unpublish(ctx context.Context, id string) (*domain.Post, error) {
	published := false
	return s.Update(ctx, id, UpdatePostInput{Published: &published})
}

func (s *PostService) Remove(ctx context.Context, id string) (string, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("delete post failed", zap.String("id", id), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("Post with ID %s deleted successfully", id), nil
}
