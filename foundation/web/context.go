package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped values every handler needs: the gin
// context for binding and writing, and the request context for storage calls.
type Context struct {
	*gin.Context
	Ctx     context.Context
	Request *http.Request
}

// BindFunc decodes the request body into dst and then verifies that every
// field named in requiredFields is set to a non-zero value. Field names are
// the Go struct field names.
func (c *Context) BindFunc(dst interface{}, requiredFields ...string) error {
	if err := c.Context.ShouldBind(dst); err != nil {
		return NewRequestError(errors.Wrap(err, "parsing request body"), http.StatusBadRequest)
	}

	v := reflect.ValueOf(dst)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	for _, name := range requiredFields {
		field := v.FieldByName(name)
		if !field.IsValid() {
			return NewRequestError(errors.Errorf("unknown required field %q", name), http.StatusInternalServerError)
		}
		if field.IsZero() {
			return NewRequestError(errors.Errorf("field %q is required", fieldTag(v.Type(), name)), http.StatusBadRequest)
		}
	}

	return nil
}

// GetQueryFunc reads an optional query parameter and converts it to the
// requested kind. It returns a typed nil-able pointer so callers can tell
// "absent" from "zero".
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.Context.GetQuery(name)
	if !ok || value == "" {
		return typedNil(kind)
	}

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return typedNil(kind)
		}
		return &n
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return typedNil(kind)
		}
		return &b
	case reflect.String:
		return &value
	default:
		return typedNil(kind)
	}
}

// GetParam reads a path parameter and converts it to the requested kind.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Context.Param(name)

	switch kind {
	case reflect.Int:
		n, _ := strconv.Atoi(value)
		return n
	default:
		return value
	}
}

// ValidParam validates path parameters. Conversion failures surface here so
// handlers can read parameters first and check once.
func (c *Context) ValidParam() error {
	for _, p := range c.Context.Params {
		if strings.TrimSpace(p.Value) == "" {
			return NewRequestError(errors.Errorf("param %q is required", p.Key), http.StatusBadRequest)
		}
	}
	return nil
}

// ValidQuery is the query-string counterpart of ValidParam.
func (c *Context) ValidQuery() error {
	return nil
}

// Respond writes data as the JSON response with the given status code.
func (c *Context) Respond(data interface{}, statusCode int) error {
	c.Context.JSON(statusCode, data)
	return nil
}

// RespondError writes an error response. Trusted *Error values keep their
// status and message; anything else becomes a 500 with a generic message so
// internals never leak.
func (c *Context) RespondError(err error) error {
	var webErr *Error
	if errors.As(err, &webErr) {
		c.Context.JSON(webErr.Status, map[string]interface{}{
			"status": false,
			"error":  webErr.Err.Error(),
		})
		return nil
	}

	c.Context.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status": false,
		"error":  "internal server error",
	})
	return err
}

func typedNil(kind reflect.Kind) interface{} {
	switch kind {
	case reflect.Int:
		return (*int)(nil)
	case reflect.Bool:
		return (*bool)(nil)
	case reflect.String:
		return (*string)(nil)
	default:
		return nil
	}
}

func fieldTag(t reflect.Type, name string) string {
	f, ok := t.FieldByName(name)
	if !ok {
		return name
	}
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		return strings.Split(tag, ",")[0]
	}
	return fmt.Sprintf("%s", name)
}
