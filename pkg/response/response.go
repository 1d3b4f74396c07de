package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"mediquick-api/pkg/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// Page is the paginated container the frontend consumes.
type Page struct {
	Docs        interface{} `json:"docs"`
	TotalDocs   int64       `json:"totalDocs"`
	Limit       int         `json:"limit"`
	Page        int         `json:"page"`
	TotalPages  int         `json:"totalPages"`
	HasNextPage bool        `json:"hasNextPage"`
	HasPrevPage bool        `json:"hasPrevPage"`
	NextPage    *int        `json:"nextPage"`
	PrevPage    *int        `json:"prevPage"`
}

func NewPage(docs interface{}, totalDocs int64, page, limit int) *Page {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}

	totalPages := int(totalDocs) / limit
	if int(totalDocs)%limit > 0 {
		totalPages++
	}

	p := &Page{
		Docs:        docs,
		TotalDocs:   totalDocs,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   err,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	JSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Error:   errors,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message, nil)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Rate limit exceeded", nil)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation, apperror.KindBadRequest:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the envelope for a classified error. Unclassified errors are
// reported with fallback as the message and never leak their cause.
func FromError(w http.ResponseWriter, err error, fallback string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		InternalServerError(w, fallback)
		return
	}

	switch appErr.Kind {
	case apperror.KindValidation:
		ValidationError(w, appErr.Fields)
	case apperror.KindInternal:
		InternalServerError(w, fallback)
	case apperror.KindUnavailable:
		Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable", nil)
	default:
		Error(w, StatusFor(appErr.Kind), appErr.Message, nil)
	}
}
