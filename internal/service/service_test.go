package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blog-comment-api/internal/github"
	"github.com/blog-comment-api/internal/mocks"
	"github.com/blog-comment-api/internal/models"
	"github.com/blog-comment-api/internal/ratelimit"
	"github.com/blog-comment-api/internal/repository"
	"github.com/rs/zerolog"
)

func setupCommentService() (*commentService, *mocks.MockArticleRepository, *mocks.MockCommentRepository, *mocks.MockVerifier) {
	articleRepo := mocks.NewMockArticleRepository()
	commentRepo := mocks.NewMockCommentRepository()
	verifier := mocks.NewMockVerifier()
	verifier.Outcomes["good-token"] = github.Outcome{Valid: true, UserID: 42, Login: "octocat"}

	repos := &repository.Repositories{Article: articleRepo, Comment: commentRepo}
	cooldown := ratelimit.NewCooldown(20 * time.Second)

	return newCommentService(repos, verifier, cooldown, zerolog.Nop()), articleRepo, commentRepo, verifier
}

func submission(token string) *CommentSubmission {
	return &CommentSubmission{
		Token:     token,
		ArticleID: 5,
		Content:   "hello",
		Client:    "Chrome 120",
		OS:        "Linux",
		SourceIP:  "1.2.3.4",
	}
}

func TestAddCommentSuccess(t *testing.T) {
	svc, articleRepo, commentRepo, _ := setupCommentService()
	articleRepo.Articles[5] = &models.Article{ID: 5, Title: "T"}

	if err := svc.Add(context.Background(), submission("good-token")); err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if got := articleRepo.CommentCount(5); got != 1 {
		t.Errorf("Expected comment count 1, got %d", got)
	}
	if got := commentRepo.CommentCountFor(5); got != 1 {
		t.Errorf("Expected 1 stored comment, got %d", got)
	}

	stored := commentRepo.Comments[0]
	if stored.Username != "octocat" || stored.GitHubID != 42 {
		t.Errorf("Expected verifier identity on the comment, got %q/%d", stored.Username, stored.GitHubID)
	}
}

func TestAddCommentInvalidToken(t *testing.T) {
	svc, articleRepo, _, _ := setupCommentService()

	err := svc.Add(context.Background(), submission("bad-token"))
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken, got %v", err)
	}
	if articleRepo.AdjustCallCount() != 0 {
		t.Error("Expected no storage calls for a rejected token")
	}
}

func TestAddCommentCooldown(t *testing.T) {
	svc, articleRepo, _, _ := setupCommentService()
	articleRepo.Articles[5] = &models.Article{ID: 5}

	if err := svc.Add(context.Background(), submission("good-token")); err != nil {
		t.Fatalf("Expected first submission to succeed, got %v", err)
	}
	err := svc.Add(context.Background(), submission("good-token"))
	if !errors.Is(err, ErrTooFrequent) {
		t.Fatalf("Expected ErrTooFrequent, got %v", err)
	}
	if got := articleRepo.CommentCount(5); got != 1 {
		t.Errorf("Expected denied submission to leave count at 1, got %d", got)
	}
}

func TestAddCommentIncrementFails(t *testing.T) {
	svc, articleRepo, commentRepo, _ := setupCommentService()
	articleRepo.AdjustError = errors.New("db down")

	err := svc.Add(context.Background(), submission("good-token"))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("Expected ErrStorage, got %v", err)
	}
	if len(commentRepo.Comments) != 0 {
		t.Error("Expected no insert after a failed increment")
	}
	if articleRepo.AdjustCallCount() != 1 {
		t.Errorf("Expected a single adjust call, got %d", articleRepo.AdjustCallCount())
	}
}

func TestAddCommentInsertFailsTriggersCompensation(t *testing.T) {
	svc, articleRepo, commentRepo, _ := setupCommentService()
	articleRepo.Articles[5] = &models.Article{ID: 5}
	commentRepo.CreateError = errors.New("db down")

	err := svc.Add(context.Background(), submission("good-token"))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("Expected ErrStorage, got %v", err)
	}

	// Compensation runs asynchronously
	deadline := time.Now().Add(2 * time.Second)
	for articleRepo.AdjustCallCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	calls := articleRepo.AdjustCalls
	if len(calls) != 2 {
		t.Fatalf("Expected increment and compensating decrement, got %d calls", len(calls))
	}
	if calls[0].Delta != 1 || calls[1].Delta != -1 {
		t.Errorf("Expected +1 then -1, got %+v", calls)
	}
	if got := articleRepo.CommentCount(5); got != 0 {
		t.Errorf("Expected count restored to 0, got %d", got)
	}
}

func TestAddCommentCompensationFailureIsCounted(t *testing.T) {
	svc, articleRepo, commentRepo, _ := setupCommentService()
	commentRepo.CreateError = errors.New("db down")

	// The increment succeeds, the compensating decrement fails
	articleRepo.AdjustFunc = func(id int64, delta int) error {
		if delta < 0 {
			return errors.New("still down")
		}
		return nil
	}

	if err := svc.Add(context.Background(), submission("good-token")); !errors.Is(err, ErrStorage) {
		t.Fatalf("Expected ErrStorage, got %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for svc.CompensationFailures() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if svc.CompensationFailures() != 1 {
		t.Errorf("Expected 1 counted compensation failure, got %d", svc.CompensationFailures())
	}
}

func setupArticleService() (*articleService, *mocks.MockArticleRepository) {
	articleRepo := mocks.NewMockArticleRepository()
	repos := &repository.Repositories{Article: articleRepo, Comment: mocks.NewMockCommentRepository()}
	attempts := ratelimit.NewAttempts(3, 30*time.Second)
	return newArticleService(repos, attempts, "hunter2", zerolog.Nop()), articleRepo
}

func creation(password string) *ArticleCreation {
	return &ArticleCreation{
		Password:    password,
		Title:       "Title",
		Description: "Desc",
		Link:        "https://example.com/a.md",
		Category:    "tech",
		SourceIP:    "1.2.3.4",
	}
}

func TestCreateArticleSuccess(t *testing.T) {
	svc, articleRepo := setupArticleService()

	id, err := svc.Create(context.Background(), creation("hunter2"))
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if id == 0 {
		t.Error("Expected a non-zero article id")
	}
	if articleRepo.Articles[id].Title != "Title" {
		t.Error("Expected the article to be stored")
	}
}

func TestCreateArticleWrongPassword(t *testing.T) {
	svc, articleRepo := setupArticleService()

	_, err := svc.Create(context.Background(), creation("wrong"))
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("Expected ErrWrongPassword, got %v", err)
	}
	if len(articleRepo.Articles) != 0 {
		t.Error("Expected no article for a wrong password")
	}
}

func TestCreateArticleBlockedAfterThreeFailures(t *testing.T) {
	svc, _ := setupArticleService()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), creation("wrong")); !errors.Is(err, ErrWrongPassword) {
			t.Fatalf("Expected ErrWrongPassword on attempt %d, got %v", i+1, err)
		}
	}

	// Even a correct password is rejected inside the block window:
	// the gate runs before the compare.
	_, err := svc.Create(context.Background(), creation("hunter2"))
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("Expected ErrTooManyAttempts, got %v", err)
	}
}

func TestCreateArticleOtherSourceUnaffected(t *testing.T) {
	svc, _ := setupArticleService()

	for i := 0; i < 3; i++ {
		svc.Create(context.Background(), creation("wrong"))
	}

	req := creation("hunter2")
	req.SourceIP = "5.6.7.8"
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Errorf("Expected a different source to pass, got %v", err)
	}
}

func TestGetWithCommentsNotFound(t *testing.T) {
	articleRepo := mocks.NewMockArticleRepository()
	repos := &repository.Repositories{Article: articleRepo, Comment: mocks.NewMockCommentRepository()}
	svc := newArticleService(repos, ratelimit.NewAttempts(3, 30*time.Second), "p", zerolog.Nop())

	_, err := svc.GetWithComments(context.Background(), 999)
	if !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("Expected ErrArticleNotFound, got %v", err)
	}
}

func TestGetWithComments(t *testing.T) {
	articleRepo := mocks.NewMockArticleRepository()
	commentRepo := mocks.NewMockCommentRepository()
	repos := &repository.Repositories{Article: articleRepo, Comment: commentRepo}
	svc := newArticleService(repos, ratelimit.NewAttempts(3, 30*time.Second), "p", zerolog.Nop())

	articleRepo.Articles[7] = &models.Article{ID: 7, Title: "T", CommentCount: 1}
	commentRepo.Create(context.Background(), &models.Comment{ArticleID: 7, Username: "octocat", Content: "hi"})

	info, err := svc.GetWithComments(context.Background(), 7)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if info.Title != "T" {
		t.Errorf("Expected article title, got %q", info.Title)
	}
	if len(info.Comments) != 1 || info.Comments[0].Username != "octocat" {
		t.Errorf("Expected the article's comment, got %+v", info.Comments)
	}
}
