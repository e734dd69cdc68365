package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "todoapi/internal/errors"
	"todoapi/internal/service"
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the echo validator. Field names in messages use the
// json or query tag, and "notblank" rejects empty or whitespace-only strings.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Only the first failing field
// is reported; fields are checked in declaration order.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		field := fieldErrs[0].Field()
		return apperrors.NewValidationError(field, field+" is required")
	}
	return err
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewValidationError("body", "invalid request body")
	}
	return c.Validate(req)
}

var addTodoFields = []string{"value", "isComplete", "userId"}

// decodeAddTodo applies the add_list rules in order and stops at the first
// failure: the body must be an object, every field must be present as a key,
// then value, isComplete and userId are type checked in that order.
func decodeAddTodo(r io.Reader) (service.AddTodoInput, error) {
	var in service.AddTodoInput

	var body map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&body); err != nil || body == nil {
		return in, apperrors.NewValidationError("body", "request body must be a JSON object")
	}

	for _, field := range addTodoFields {
		if _, ok := body[field]; !ok {
			return in, apperrors.NewValidationError(field, "missing required field: "+field)
		}
	}

	value, ok := rawString(body["value"])
	if !ok || strings.TrimSpace(value) == "" {
		return in, apperrors.NewValidationError("value", "value must be a non-empty string")
	}
	isComplete, ok := rawBool(body["isComplete"])
	if !ok {
		return in, apperrors.NewValidationError("isComplete", "isComplete must be a boolean")
	}
	userID, ok := rawString(body["userId"])
	if !ok || strings.TrimSpace(userID) == "" {
		return in, apperrors.NewValidationError("userId", "userId must be a non-empty string")
	}

	in.Value = value
	in.IsComplete = isComplete
	in.UserID = userID
	return in, nil
}

// rawString and rawBool reject null and mismatched JSON types, which a plain
// Unmarshal into string or bool would silently accept as the zero value.
func rawString(raw json.RawMessage) (string, bool) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func rawBool(raw json.RawMessage) (bool, bool) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
