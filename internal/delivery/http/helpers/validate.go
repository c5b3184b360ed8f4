package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Validator is implemented by request bodies that carry their own validation.
type Validator interface {
	// Validate returns a list of human-readable problems, empty when valid.
	Validate() []string
}

// DecodeAndValidate decodes the JSON request body into dest and, when dest
// implements Validator, runs its validation. On any failure it writes a
// bad_request response and returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
