package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all handlers; validator.Validate is safe for
// concurrent use and caches struct metadata across calls.
var validate = validator.New()

// selfValidator is implemented by request types whose rules go beyond
// struct tags.
type selfValidator interface {
	Validate() error
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest runs tag-based validation on v, unless v implements
// selfValidator, in which case its own method decides.
func ValidateRequest(v interface{}) error {
	if sv, ok := v.(selfValidator); ok {
		return sv.Validate()
	}
	return validate.Struct(v)
}
