package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/blog-comment-api/internal/github"
	"github.com/blog-comment-api/internal/models"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	mu sync.Mutex

	Articles    map[int64]*models.Article
	NextID      int64
	CreateError error
	AdjustError error
	AdjustFunc  func(id int64, delta int) error
	ListError   error
	GetError    error

	AdjustCalls []AdjustCall
}

// AdjustCall records one AdjustCommentCount invocation
type AdjustCall struct {
	ArticleID int64
	Delta     int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[int64]*models.Article),
		NextID:   1,
	}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return 0, m.CreateError
	}
	id := m.NextID
	m.NextID++
	stored := *article
	stored.ID = id
	stored.CreatedAt = time.Now()
	m.Articles[id] = &stored
	return id, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Articles[id], nil
}

func (m *MockArticleRepository) List(ctx context.Context) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	articles := make([]models.Article, 0, len(m.Articles))
	for _, a := range m.Articles {
		articles = append(articles, *a)
	}
	return articles, nil
}

func (m *MockArticleRepository) AdjustCommentCount(ctx context.Context, id int64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AdjustCalls = append(m.AdjustCalls, AdjustCall{ArticleID: id, Delta: delta})
	if m.AdjustFunc != nil {
		if err := m.AdjustFunc(id, delta); err != nil {
			return err
		}
	}
	if m.AdjustError != nil {
		return m.AdjustError
	}
	if a, ok := m.Articles[id]; ok {
		a.CommentCount += delta
	}
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Articles), nil
}

// CommentCount returns the stored count for an article
func (m *MockArticleRepository) CommentCount(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.Articles[id]; ok {
		return a.CommentCount
	}
	return 0
}

// AdjustCallCount returns how many AdjustCommentCount calls were made
func (m *MockArticleRepository) AdjustCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.AdjustCalls)
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu sync.Mutex

	Comments    []*models.Comment
	CreateError error
	ListError   error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}
	stored := *comment
	stored.ID = int64(len(m.Comments) + 1)
	stored.CreatedAt = time.Now()
	m.Comments = append(m.Comments, &stored)
	return nil
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListError != nil {
		return nil, m.ListError
	}
	var comments []models.Comment
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Comments), nil
}

// CommentCountFor returns how many stored comments reference articleID
func (m *MockCommentRepository) CommentCountFor(articleID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}

// MockVerifier is a canned-response token verifier
type MockVerifier struct {
	Outcomes map[string]github.Outcome
	Calls    int
}

func NewMockVerifier() *MockVerifier {
	return &MockVerifier{Outcomes: make(map[string]github.Outcome)}
}

func (m *MockVerifier) Verify(ctx context.Context, token string) github.Outcome {
	m.Calls++
	if out, ok := m.Outcomes[token]; ok {
		return out
	}
	return github.Outcome{Reason: "unknown token"}
}
