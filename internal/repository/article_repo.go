package repository

import (
	"context"
	"database/sql"

	"github.com/blog-comment-api/internal/database"
	"github.com/blog-comment-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article and returns its generated ID
func (r *articleRepo) Create(ctx context.Context, article *models.Article) (int64, error) {
	query := `
		INSERT INTO articles (title, description, link, category)
		VALUES ($1, $2, $3, $4) RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Description, article.Link, article.Category,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID retrieves an article by ID. Returns nil, nil when absent.
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `
		SELECT id, commentcount, title, description, link, category, time
		FROM articles WHERE id = $1
	`

	var article models.Article
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.CommentCount, &article.Title,
		&article.Description, &article.Link, &article.Category, &article.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// List retrieves all articles, newest first
func (r *articleRepo) List(ctx context.Context) ([]models.Article, error) {
	query := `
		SELECT id, commentcount, title, description, link, category, time
		FROM articles ORDER BY time DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var article models.Article
		err := rows.Scan(
			&article.ID, &article.CommentCount, &article.Title,
			&article.Description, &article.Link, &article.Category, &article.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// AdjustCommentCount shifts an article's comment counter by delta.
// The saga calls this with +1 before inserting a comment and -1 to
// compensate a failed insert.
func (r *articleRepo) AdjustCommentCount(ctx context.Context, id int64, delta int) error {
	query := `UPDATE articles SET commentcount = commentcount + $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, delta)
	return err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}
