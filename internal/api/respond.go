package api

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// envelope is the response shape shared by every endpoint: the HTTP
// status mirrored in the body, plus a message that is either a plain
// string or a JSON payload.
type envelope struct {
	Status  int         `json:"status"`
	Message interface{} `json:"message"`
}

// respond writes the JSON envelope with a matching HTTP status code
// and ends the request.
func respond(c *gin.Context, status int, message interface{}) {
	c.JSON(status, envelope{Status: status, Message: message})
	c.Abort()
}

// bufferForm reads a form-encoded request body, subject to the hard
// size cap, and parses it into url.Values.
//
// A body exceeding the cap aborts the connection outright via
// http.ErrAbortHandler: no response is written, the client is cut
// off. A read error (client gone mid-body) abandons the pipeline
// silently.
func bufferForm(c *gin.Context, maxBytes int64) (url.Values, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBytes+1))
	if err != nil {
		c.Abort()
		return nil, false
	}
	if int64(len(body)) > maxBytes {
		panic(http.ErrAbortHandler)
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		respond(c, http.StatusBadRequest, "Cannot parse the requested body.")
		return nil, false
	}
	return form, true
}
