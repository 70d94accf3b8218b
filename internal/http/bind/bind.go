package bind

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"usermgmt/internal/http/responses"
)

var validate = validator.New()

func init() {
	// report json field names instead of Go ones
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// JSON reads JSON body into dst and runs validation with tags `validate:"..."`.
func JSON[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		responses.WriteBadRequest(w, "Invalid JSON payload.")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			responses.WriteBadRequest(w, "Invalid fields: "+strings.Join(fields, ", "))
			return false
		}
		responses.WriteBadRequest(w, "Invalid JSON payload.")
		return false
	}

	return true
}
