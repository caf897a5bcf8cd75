package middleware

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/schooldesk/internal/pkg/validation"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the custom binding tags (aadhaar, contact) to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin binding engine is not a validator.Validate")
			return
		}
		registerErr = validation.RegisterRules(v)
	})
	return registerErr
}

// BindJSON binds the request body into obj. On failure the 400 response is written and false returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleBindError(c, err)
		return false
	}
	return true
}
