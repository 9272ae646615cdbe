// Package validation checks decoded form/query payloads per endpoint
// and produces typed requests for the next pipeline stage. At this
// layer every value is a string; a missing key and a wrong type are
// the same failure.
package validation

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/blog-comment-api/internal/models"
	"github.com/blog-comment-api/internal/sanitize"
)

// FieldError reports the field or rule a payload violated. Message is
// the externally observable response text.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// AddCommentRequest is a validated comment submission. Content is
// already sanitized.
type AddCommentRequest struct {
	Token     string
	ArticleID int64
	Content   string
}

// AddArticleRequest is a validated article creation payload. The four
// text fields are trimmed and non-empty.
type AddArticleRequest struct {
	Password    string
	Title       string
	Description string
	Link        string
	Category    string
}

// ValidateAddComment checks a comment submission payload.
func ValidateAddComment(form url.Values) (*AddCommentRequest, *FieldError) {
	if !form.Has("token") {
		return nil, &FieldError{Field: "token", Message: "Invalid token type. Expected a string."}
	}
	token := form.Get("token")
	if token == "" {
		return nil, &FieldError{Field: "token", Message: "Invalid token type. Expected a string."}
	}

	articleID, err := strconv.ParseInt(form.Get("articleid"), 10, 64)
	if err != nil {
		return nil, &FieldError{Field: "articleid", Message: "Invalid articleid type. Expected a number."}
	}

	if !form.Has("content") {
		return nil, &FieldError{Field: "content", Message: "Invalid content type. Expected a string."}
	}
	content := strings.TrimSpace(form.Get("content"))
	if content == "" {
		return nil, &FieldError{Field: "content", Message: "Content is empty."}
	}

	// Length is bounded after sanitization: entity encoding can only
	// expand the content.
	content = sanitize.Clean(content)
	if utf8.RuneCountInString(content) > models.MaxContentLength {
		return nil, &FieldError{Field: "content", Message: "Content is too long."}
	}

	return &AddCommentRequest{Token: token, ArticleID: articleID, Content: content}, nil
}

// ValidateArticleID checks an article lookup query string.
func ValidateArticleID(query url.Values) (int64, *FieldError) {
	articleID, err := strconv.ParseInt(query.Get("articleid"), 10, 64)
	if err != nil {
		return 0, &FieldError{Field: "articleid", Message: "Invalid articleid type. Expected a number."}
	}
	return articleID, nil
}

// ValidateAddArticle checks an article creation payload. All four text
// fields must be present and non-empty after trimming; the product of
// their lengths being zero means at least one is missing.
func ValidateAddArticle(form url.Values) (*AddArticleRequest, *FieldError) {
	if !form.Has("password") {
		return nil, &FieldError{Field: "password", Message: "Invalid password type. Expected a string."}
	}

	for _, field := range []string{"title", "description", "link", "category"} {
		if !form.Has(field) {
			return nil, &FieldError{Field: field, Message: "Information incomplete."}
		}
	}

	trimmed := map[string]string{}
	for _, field := range []string{"title", "description", "link", "category"} {
		trimmed[field] = strings.TrimSpace(form.Get(field))
	}
	title, desc := trimmed["title"], trimmed["description"]
	link, category := trimmed["link"], trimmed["category"]
	if len(title)*len(desc)*len(link)*len(category) == 0 {
		for _, field := range []string{"title", "description", "link", "category"} {
			if trimmed[field] == "" {
				return nil, &FieldError{Field: field, Message: "Information incomplete."}
			}
		}
	}

	return &AddArticleRequest{
		Password:    form.Get("password"),
		Title:       title,
		Description: desc,
		Link:        link,
		Category:    category,
	}, nil
}
