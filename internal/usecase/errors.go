package usecase

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"mediquick-api/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

var (
	ErrDoctorNotFound       = apperror.NotFound("doctor not found")
	ErrDoctorEmailExists    = apperror.Conflict("email already registered")
	ErrDoctorInactive       = apperror.NotFound("doctor is not accepting consultations")
	ErrLabTestNotFound      = apperror.NotFound("lab test not found")
	ErrLabTestCodeExists    = apperror.Conflict("lab test code already exists")
	ErrMedicineNotFound     = apperror.NotFound("medicine not found")
	ErrConsultationNotFound = apperror.NotFound("consultation not found")
	ErrAuditLogNotFound     = apperror.NotFound("audit log not found")

	ErrInvalidTransition    = apperror.Conflict("status transition not allowed")
	ErrConcurrentTransition = apperror.Conflict("consultation was modified concurrently")
	ErrInvalidPayment       = apperror.Conflict("payment status transition not allowed")
	ErrRatingNotAllowed     = apperror.Conflict("consultation is not completed or already rated")
	ErrPrescriptionNotOpen  = apperror.Conflict("prescription can only be written for an in-progress or completed consultation")

	ErrUnauthenticated = apperror.Unauthorized("authentication required")
	ErrNotParticipant  = apperror.Forbidden("you are not a participant of this consultation")
	ErrPatientOnly     = apperror.Forbidden("only patients can book consultations")
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isUnavailable reports failures to reach the database or cache.
func isUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, redis.ErrClosed),
		errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return false
}

// classifyError leaves classified errors alone and sorts the rest into
// conflict, unavailable or internal.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &apperror.Error{Kind: apperror.KindConflict, Message: "duplicate value violates " + pgErr.ConstraintName, Err: err}
	}

	if isUnavailable(err) {
		return apperror.Unavailable(err)
	}

	return apperror.Internal(err)
}
