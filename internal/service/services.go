package service

import (
	"context"
	"errors"

	"github.com/blog-comment-api/internal/config"
	"github.com/blog-comment-api/internal/github"
	"github.com/blog-comment-api/internal/models"
	"github.com/blog-comment-api/internal/ratelimit"
	"github.com/blog-comment-api/internal/repository"
	"github.com/rs/zerolog"
)

// Sentinel errors mapped to HTTP statuses by the handlers. Storage
// details never cross this boundary; callers see ErrStorage only.
var (
	ErrInvalidToken    = errors.New("invalid github login token")
	ErrTooFrequent     = errors.New("commented too frequently")
	ErrWrongPassword   = errors.New("password incorrect")
	ErrTooManyAttempts = errors.New("too many incorrect password attempts")
	ErrArticleNotFound = errors.New("article not found")
	ErrStorage         = errors.New("storage failure")
)

// CommentService handles authenticated comment submission.
type CommentService interface {
	// Add runs the full submission pipeline: token verification,
	// cooldown authorization and the two-step persistence saga.
	Add(ctx context.Context, sub *CommentSubmission) error
	Count(ctx context.Context) (int, error)
	CompensationFailures() int64
}

// ArticleService handles article reads and password-gated creation.
type ArticleService interface {
	List(ctx context.Context) ([]models.Article, error)
	GetWithComments(ctx context.Context, id int64) (*ArticleInfo, error)
	Create(ctx context.Context, req *ArticleCreation) (int64, error)
	Count(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Comment CommentService
	Article ArticleService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, verifier github.Verifier, cfg *config.Config, log zerolog.Logger) *Services {
	cooldown := ratelimit.NewCooldown(cfg.RateLimit.CommentCooldown)
	attempts := ratelimit.NewAttempts(cfg.RateLimit.AttemptThreshold, cfg.RateLimit.AttemptWindow)

	return &Services{
		Comment: newCommentService(repos, verifier, cooldown, log),
		Article: newArticleService(repos, attempts, cfg.ArticlePassword, log),
	}
}

// Limiters exposes the services' limiter state for janitor wiring.
func (s *Services) Limiters() []ratelimit.Sweepable {
	var stores []ratelimit.Sweepable
	if cs, ok := s.Comment.(*commentService); ok {
		stores = append(stores, cs.cooldown)
	}
	if as, ok := s.Article.(*articleService); ok {
		stores = append(stores, as.attempts)
	}
	return stores
}
