package respond

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// BindJSON decodes the request body into dst and validates its `validate`
// tags. On failure it writes a 400 and returns false.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]FieldError, 0, len(verrs))
			names := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				name := fe.Field()
				fields = append(fields, FieldError{Field: name, Rule: fe.Tag()})
				names = append(names, name)
			}
			Error(c, http.StatusBadRequest, "validation_error", "invalid fields: "+strings.Join(names, ", "), fields)
			return false
		}
		Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return false
	}
	return true
}
