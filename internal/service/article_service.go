package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/blog-comment-api/internal/models"
	"github.com/blog-comment-api/internal/ratelimit"
	"github.com/blog-comment-api/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleInfo is one article together with its comments, newest
// comment first.
type ArticleInfo struct {
	models.Article
	Comments []models.Comment `json:"comments"`
}

// ArticleCreation is a validated article creation request. SourceIP
// keys the brute-force attempt counter.
type ArticleCreation struct {
	Password    string
	Title       string
	Description string
	Link        string
	Category    string
	SourceIP    string
}

// articleService is the concrete ArticleService implementation
type articleService struct {
	repos    *repository.Repositories
	attempts *ratelimit.Attempts
	password string
	log      zerolog.Logger
}

func newArticleService(repos *repository.Repositories, attempts *ratelimit.Attempts, password string, log zerolog.Logger) *articleService {
	return &articleService{
		repos:    repos,
		attempts: attempts,
		password: password,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// List returns all articles, newest first
func (s *articleService) List(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repos.Article.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list articles")
		return nil, ErrStorage
	}
	return articles, nil
}

// GetWithComments returns one article and its comments, newest first
func (s *articleService) GetWithComments(ctx context.Context, id int64) (*ArticleInfo, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("article_id", id).Msg("Failed to get article")
		return nil, ErrStorage
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	comments, err := s.repos.Comment.ListByArticle(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("article_id", id).Msg("Failed to list comments")
		return nil, ErrStorage
	}

	return &ArticleInfo{Article: *article, Comments: comments}, nil
}

// Create checks the attempt counter and the shared secret, then
// persists the article. Wrong passwords feed the counter; a correct
// password never touches it.
func (s *articleService) Create(ctx context.Context, req *ArticleCreation) (int64, error) {
	if s.attempts.IsBlocked(req.SourceIP, time.Now()) {
		return 0, ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.password)) != 1 {
		s.attempts.RecordFailure(req.SourceIP, time.Now())
		s.log.Warn().Str("source", req.SourceIP).Msg("Incorrect article password")
		return 0, ErrWrongPassword
	}

	id, err := s.repos.Article.Create(ctx, &models.Article{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Category:    req.Category,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to create article")
		return 0, ErrStorage
	}

	s.log.Info().Int64("article_id", id).Str("category", req.Category).Msg("Article created")
	return id, nil
}

// Count returns the total number of articles
func (s *articleService) Count(ctx context.Context) (int, error) {
	return s.repos.Article.Count(ctx)
}
