package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// "Key (email)=(a@b.c) already exists."
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// "... is still referenced from table "adoption_requests"."
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// "... is not present in table "adoption_posts"."
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// tableNames maps tables to the nouns shown to users.
var tableNames = map[string]string{
	"users":             "account",
	"treated_animals":   "treated animal",
	"ads":               "ad",
	"adoption_posts":    "adoption post",
	"adoption_requests": "adoption request",
	"stray_reports":     "stray report",
}

// uniqueMessages overrides the generic conflict message for known constraints.
var uniqueMessages = map[string]string{
	"users_email_key":                    "An account with this email already exists.",
	"adoption_requests_post_id_user_key": "You have already requested to adopt this animal.",
}

// MapDBError maps database errors to AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - unique violations → Conflict
//   - foreign key violations → ForeignKey
//   - check and NOT NULL violations → Validation
//   - context deadline/cancel → Timeout/Canceled
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: err}
	case errors.Is(err, context.Canceled):
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	case errors.Is(err, pgx.ErrNoRows):
		return &AppError{Code: ErrCodeNotFound, Message: "Resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}
	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.ForeignKeyViolation:
		return mapForeignKeyViolation(pgErr)
	case pgerrcode.CheckViolation:
		return &AppError{Code: ErrCodeValidation, Message: "This field has an invalid value.", Field: pgErr.ColumnName, Cause: pgErr}
	case pgerrcode.NotNullViolation:
		return &AppError{Code: ErrCodeValidation, Message: "This field is required.", Field: pgErr.ColumnName, Cause: pgErr}
	default:
		return &AppError{Code: ErrCodeInternal, Message: "A database error occurred. Please try again.", Cause: pgErr}
	}
}

func mapUniqueViolation(pgErr *pgconn.PgError) error {
	field := pgErr.ColumnName
	if field == "" && pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = m[1]
		}
	}
	if field == "" {
		field = inferFieldFromConstraint(pgErr.ConstraintName)
	}

	message, ok := uniqueMessages[pgErr.ConstraintName]
	if !ok {
		message = "This value already exists. Please choose a different one."
	}
	return &AppError{Code: ErrCodeConflict, Message: message, Field: field, Cause: pgErr}
}

func mapForeignKeyViolation(pgErr *pgconn.PgError) error {
	var message string
	if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		message = "Cannot delete because this item is in use by a " + tableNoun(m[1]) + "."
	} else if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		message = "The referenced " + tableNoun(m[1]) + " does not exist."
	} else if pgErr.TableName != "" {
		message = "Cannot complete operation because this item is in use by a " + tableNoun(pgErr.TableName) + "."
	} else {
		message = "Cannot complete operation because this item is in use."
	}
	return &AppError{Code: ErrCodeForeignKey, Message: message, Cause: pgErr}
}

// inferFieldFromConstraint pulls the column out of "table_column_key" style names.
// Multi-column and expression constraints are ambiguous and yield "".
func inferFieldFromConstraint(constraintName string) string {
	if constraintName == "" {
		return ""
	}
	for table := range tableNames {
		rest, ok := strings.CutPrefix(constraintName, table+"_")
		if !ok {
			continue
		}
		for _, suffix := range []string{"_key", "_unique", "_idx"} {
			if col, ok := strings.CutSuffix(rest, suffix); ok && col != "" && !strings.Contains(col, "_") && !isFunctionName(col) {
				return col
			}
		}
	}
	return ""
}

func tableNoun(tableName string) string {
	tableName = strings.ToLower(strings.TrimSpace(tableName))
	if noun, ok := tableNames[tableName]; ok {
		return noun
	}
	return strings.ReplaceAll(tableName, "_", " ")
}

func isFunctionName(s string) bool {
	switch strings.ToLower(s) {
	case "lower", "upper", "trim", "md5", "encode":
		return true
	}
	return false
}
