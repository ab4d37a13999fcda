package handler

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	profileIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	sourcePattern    = regexp.MustCompile(`^[A-Za-z0-9_.-]{0,64}$`)

	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

type cardURI struct {
	ProfileID string `uri:"profileID" binding:"required,profileid"`
}

type cardQuery struct {
	Format string `form:"format" binding:"omitempty,oneof=html json vcard"`
	Source string `form:"source" binding:"omitempty,cardsource"`
}

// bindCardQuery binds the card query parameters. A field that fails
// validation falls back to its default; the other fields keep their values.
func bindCardQuery(c *gin.Context) cardQuery {
	var query cardQuery
	err := c.ShouldBindQuery(&query)
	if err == nil {
		return query
	}
	c.Error(fmt.Errorf("ignored card query: %w", err))

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return cardQuery{}
	}
	for _, fe := range fieldErrs {
		switch fe.StructField() {
		case "Format":
			query.Format = ""
		case "Source":
			query.Source = ""
		}
	}
	return query
}

func validateProfileID(fl validator.FieldLevel) bool {
	return profileIDPattern.MatchString(fl.Field().String())
}

func validateSource(fl validator.FieldLevel) bool {
	return sourcePattern.MatchString(fl.Field().String())
}

// RegisterCustomValidators adds the card binding tags to gin's validator.
func RegisterCustomValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		validations := map[string]validator.Func{
			"profileid":  validateProfileID,
			"cardsource": validateSource,
		}
		for tag, fn := range validations {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerValidatorsErr = fmt.Errorf("register validator %q: %w", tag, err)
				return
			}
		}
	})
	return registerValidatorsErr
}
