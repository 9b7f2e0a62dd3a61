package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/pkg/apperr"
)

// Envelope is the uniform response body:
// {success, data?, count?, pagination?, token?, error?}.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Token      string      `json:"token,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      interface{} `json:"error,omitempty"`
}

// Pagination carries next/prev page links for list endpoints.
type Pagination struct {
	Next *Page `json:"next,omitempty"`
	Prev *Page `json:"prev,omitempty"`
}

type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// List writes a collection body with count and optional pagination meta.
func List(c *gin.Context, data interface{}, count int, pagination *Pagination) {
	env := Envelope{Success: true, Data: data, Count: &count}
	if pagination != nil && (pagination.Next != nil || pagination.Prev != nil) {
		env.Pagination = pagination
	}
	c.JSON(http.StatusOK, env)
}

// Token writes a body carrying a freshly issued session token.
func Token(c *gin.Context, status int, token string) {
	c.JSON(status, Envelope{Success: true, Token: token})
}

func Msg(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: true, Message: msg})
}

// FromError is the single translator from typed errors to the HTTP
// envelope. Handlers never pick status codes themselves.
func FromError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Server("Server Error", err)
	}
	body := Envelope{Success: false, Error: ae.Message}
	if len(ae.Fields) > 0 {
		body.Error = ae.Fields
	}
	c.AbortWithStatusJSON(ae.Status(), body)
}
