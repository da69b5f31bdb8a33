package validation

import (
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"kisan-be/internal/apperror"
)

// BindAndValidate binds the JSON body into out and runs v on it. Both a
// malformed body and a failed rule come back as validation errors.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return apperror.Validation("invalid request body", map[string]string{"body": err.Error()})
	}
	return Struct(v, out)
}
