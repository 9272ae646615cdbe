package service

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/blog-comment-api/internal/github"
	"github.com/blog-comment-api/internal/models"
	"github.com/blog-comment-api/internal/ratelimit"
	"github.com/blog-comment-api/internal/repository"
	"github.com/rs/zerolog"
)

// compensationTimeout bounds the background decrement after a failed
// comment insert. It runs on its own context so it survives the
// request finishing.
const compensationTimeout = 10 * time.Second

// CommentSubmission carries a validated comment through the pipeline.
// Content is already sanitized and length-checked.
type CommentSubmission struct {
	Token     string
	ArticleID int64
	Content   string
	Client    string
	OS        string
	SourceIP  string
}

// commentService is the concrete CommentService implementation
type commentService struct {
	repos    *repository.Repositories
	verifier github.Verifier
	cooldown *ratelimit.Cooldown
	log      zerolog.Logger

	compensationFailures atomic.Int64
}

func newCommentService(repos *repository.Repositories, verifier github.Verifier, cooldown *ratelimit.Cooldown, log zerolog.Logger) *commentService {
	return &commentService{
		repos:    repos,
		verifier: verifier,
		cooldown: cooldown,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Add verifies the submitter's token, authorizes against the
// per-identity cooldown and persists the comment.
//
// Persistence is a two-step saga: the article's comment count is
// incremented first, then the comment row is inserted. A failed
// insert triggers an asynchronous best-effort decrement to restore
// the count; the compensation outcome is never returned to the
// caller.
func (s *commentService) Add(ctx context.Context, sub *CommentSubmission) error {
	outcome := s.verifier.Verify(ctx, sub.Token)
	if !outcome.Valid {
		s.log.Debug().Str("reason", outcome.Reason).Msg("Token rejected")
		return ErrInvalidToken
	}

	key := strconv.FormatInt(outcome.UserID, 10)
	if !s.cooldown.Authorize(key, time.Now()) {
		return ErrTooFrequent
	}

	if err := s.repos.Article.AdjustCommentCount(ctx, sub.ArticleID, +1); err != nil {
		s.log.Error().Err(err).Int64("article_id", sub.ArticleID).Msg("Failed to increment comment count")
		return ErrStorage
	}

	comment := &models.Comment{
		ArticleID: sub.ArticleID,
		Username:  outcome.Login,
		Client:    sub.Client,
		OS:        sub.OS,
		Content:   sub.Content,
		GitHubID:  outcome.UserID,
		FromIP:    sub.SourceIP,
	}
	if err := s.repos.Comment.Create(ctx, comment); err != nil {
		s.log.Error().Err(err).Int64("article_id", sub.ArticleID).Msg("Failed to insert comment")
		go s.compensate(sub.ArticleID)
		return ErrStorage
	}

	return nil
}

// compensate undoes the comment count increment after a failed
// insert. Best effort: its own failure is logged and counted, never
// retried.
func (s *commentService) compensate(articleID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), compensationTimeout)
	defer cancel()

	if err := s.repos.Article.AdjustCommentCount(ctx, articleID, -1); err != nil {
		s.compensationFailures.Add(1)
		s.log.Error().Err(err).Int64("article_id", articleID).Msg("Comment count compensation failed")
	}
}

// Count returns the total number of comments
func (s *commentService) Count(ctx context.Context) (int, error) {
	return s.repos.Comment.Count(ctx)
}

// CompensationFailures returns how many compensating decrements have
// failed since startup, leaving over-counted articles for external
// reconciliation.
func (s *commentService) CompensationFailures() int64 {
	return s.compensationFailures.Load()
}

