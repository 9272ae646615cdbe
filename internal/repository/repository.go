package repository

import (
	"context"

	"github.com/blog-comment-api/internal/database"
	"github.com/blog-comment-api/internal/models"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context) ([]models.Article, error)
	AdjustCommentCount(ctx context.Context, id int64, delta int) error
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByArticle(ctx context.Context, articleID int64) ([]models.Comment, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
	}
}
