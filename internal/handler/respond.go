package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tresmastres/or-hayeladim/internal/domain"
)

// maxBodyBytes bounds request bodies. Admin payloads are small.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Decode reads a JSON request body into v and validates it.
func Decode(r *http.Request, v any) error {
	const op = "request.decode"

	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid(op, "request body is required")
		}
		return domain.Invalid(op, "malformed JSON body")
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return domain.Invalid(op, "invalid field: "+field)
		}
		return domain.Invalid(op, "invalid request body")
	}

	return nil
}

// PathID parses the {id} path segment as a UUID.
func PathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Invalid("request.path", "malformed id: "+raw)
	}
	return id, nil
}
