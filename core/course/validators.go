package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/educonnect/educonnect/core"
)

var (
	contentTypeTag  = "contenttype"
	contentTypeText = "content type must be one of video, document or quiz"

	requiredText   = "this field is required"
	gradeRangeText = "grade must be between 0 and %d"
	gradeMinText   = "grade cannot be negative"
)

func init() {
	_ = core.Validate.RegisterValidation(contentTypeTag, contentTypeValidation)
	core.RegisterCustomTranslation(contentTypeTag, contentTypeText)
}

// contentTypeValidation checks that a content item type is one of ContentTypes
func contentTypeValidation(fl validator.FieldLevel) bool {
	typ := fl.Field().String()
	for _, ct := range ContentTypes {
		if typ == ct {
			return true
		}
	}
	return false
}
