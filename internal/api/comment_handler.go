package api

import (
	"errors"
	"net/http"

	"github.com/blog-comment-api/internal/clientinfo"
	"github.com/blog-comment-api/internal/config"
	"github.com/blog-comment-api/internal/service"
	"github.com/blog-comment-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment submission
type CommentHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// AddComment handles POST /addcomment
func (h *CommentHandler) AddComment(c *gin.Context) {
	form, ok := bufferForm(c, h.cfg.Server.MaxBodyBytes)
	if !ok {
		return
	}

	req, verr := validation.ValidateAddComment(form)
	if verr != nil {
		respond(c, http.StatusBadRequest, verr.Message)
		return
	}

	client, os := clientinfo.Parse(c.Request.UserAgent())

	err := h.services.Comment.Add(c.Request.Context(), &service.CommentSubmission{
		Token:     req.Token,
		ArticleID: req.ArticleID,
		Content:   req.Content,
		Client:    client,
		OS:        os,
		SourceIP:  c.ClientIP(),
	})
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		respond(c, http.StatusUnauthorized, "Invalid GitHub login token.")
	case errors.Is(err, service.ErrTooFrequent):
		respond(c, http.StatusTooManyRequests, "You commented too frequently.")
	case err != nil:
		respond(c, http.StatusInternalServerError, "Failed to access database")
	default:
		respond(c, http.StatusOK, "Comment added")
	}
}
