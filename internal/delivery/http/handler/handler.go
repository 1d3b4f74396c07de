package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mediquick-api/internal/delivery/http/middleware"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/pkg/response"
	"mediquick-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// decodeAndValidate reads a JSON body into req and runs its tag rules. It
// writes the error response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads page and limit, falling back to page 1 and 10 per page.
func pagination(r *http.Request) (int, int) {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// queryLimit reads an optional limit; 0 lets the usecase pick its default.
func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// includeInactive honours include_inactive for admins only.
func includeInactive(r *http.Request) bool {
	role, _ := middleware.GetRoleFromContext(r.Context())
	if role != entity.RoleAdmin {
		return false
	}
	v, _ := strconv.ParseBool(r.URL.Query().Get("include_inactive"))
	return v
}
