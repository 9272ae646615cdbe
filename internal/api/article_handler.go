package api

import (
	"errors"
	"net/http"

	"github.com/blog-comment-api/internal/config"
	"github.com/blog-comment-api/internal/models"
	"github.com/blog-comment-api/internal/service"
	"github.com/blog-comment-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article reads and creation
type ArticleHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// GetContents handles GET /getcontents
func (h *ArticleHandler) GetContents(c *gin.Context) {
	articles, err := h.services.Article.List(c.Request.Context())
	if err != nil {
		respond(c, http.StatusInternalServerError, "Failed to access database.")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	respond(c, http.StatusOK, articles)
}

// GetArticleInfo handles GET /getarticleinfo
func (h *ArticleHandler) GetArticleInfo(c *gin.Context) {
	id, verr := validation.ValidateArticleID(c.Request.URL.Query())
	if verr != nil {
		respond(c, http.StatusBadRequest, verr.Message)
		return
	}

	info, err := h.services.Article.GetWithComments(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrArticleNotFound):
		respond(c, http.StatusBadRequest, "Article not found.")
	case err != nil:
		respond(c, http.StatusInternalServerError, "Failed to access database.")
	default:
		if info.Comments == nil {
			info.Comments = []models.Comment{}
		}
		respond(c, http.StatusOK, info)
	}
}

// AddArticle handles POST /addarticle
func (h *ArticleHandler) AddArticle(c *gin.Context) {
	form, ok := bufferForm(c, h.cfg.Server.MaxBodyBytes)
	if !ok {
		return
	}

	req, verr := validation.ValidateAddArticle(form)
	if verr != nil {
		respond(c, http.StatusBadRequest, verr.Message)
		return
	}

	id, err := h.services.Article.Create(c.Request.Context(), &service.ArticleCreation{
		Password:    req.Password,
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Category:    req.Category,
		SourceIP:    c.ClientIP(),
	})
	switch {
	case errors.Is(err, service.ErrTooManyAttempts):
		respond(c, http.StatusTooManyRequests, "Too many incorrect password attempts.")
	case errors.Is(err, service.ErrWrongPassword):
		respond(c, http.StatusForbidden, "Password incorrect.")
	case err != nil:
		respond(c, http.StatusInternalServerError, "Failed to access database.")
	default:
		respond(c, http.StatusOK, gin.H{"id": id})
	}
}
