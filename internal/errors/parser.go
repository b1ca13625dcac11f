package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ErrorInfo is a client-facing code and message pair
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps storage errors to a code and a message that is safe to show to clients.
// resource names the entity involved ("product", "collection", ...) and is used in messages.
func ParseError(err error, resource string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An unexpected error occurred"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(resource)}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A record with the same key already exists"}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return parseForeignKeyError(err.Error(), resource)
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Input violates a data constraint"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrorInfo{Code: ResourceAlreadyExists, Message: "A record with the same key already exists"}
		case pgForeignKeyViolation:
			return parseForeignKeyError(pgErr.Message+" "+pgErr.Detail, resource)
		case pgNotNullViolation:
			return ErrorInfo{Code: ValidationRequired, Message: "Field " + pgErr.ColumnName + " is required"}
		case pgCheckViolation:
			return ErrorInfo{Code: ValidationInvalidInput, Message: "Input violates constraint " + pgErr.ConstraintName}
		}
		return ErrorInfo{Code: InternalDatabaseError, Message: defaultMessage(resource)}
	}

	// SQLite (tests, local runs) only reports constraint failures as text.
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "unique constraint"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "A record with the same key already exists"}
	case strings.Contains(lower, "foreign key constraint"):
		return parseForeignKeyError(lower, resource)
	case strings.Contains(lower, "check constraint"):
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Input violates a data constraint"}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(resource)}
}

func parseForeignKeyError(detail string, resource string) ErrorInfo {
	lower := strings.ToLower(detail)

	// Delete or update blocked by dependent rows
	if strings.Contains(lower, "still referenced") || (strings.Contains(lower, "violates foreign key") && strings.Contains(lower, "delete")) {
		return ErrorInfo{Code: ResourceConflict, Message: conflictMessage(resource)}
	}

	switch {
	case strings.Contains(lower, "collection"):
		return ErrorInfo{Code: CollectionNotFound, Message: "Referenced collection does not exist"}
	case strings.Contains(lower, "product"):
		return ErrorInfo{Code: ProductNotFound, Message: "Referenced product does not exist"}
	case strings.Contains(lower, "cart"):
		return ErrorInfo{Code: CartNotFound, Message: "Referenced cart does not exist"}
	}
	return ErrorInfo{Code: ResourceConflict, Message: conflictMessage(resource)}
}

func notFoundMessage(resource string) string {
	switch strings.ToLower(resource) {
	case "collection":
		return "Collection not found"
	case "product":
		return "Product not found"
	case "review":
		return "Review not found"
	case "cart":
		return "Cart not found"
	case "cart item", "cart_item":
		return "Cart item not found"
	case "order":
		return "Order not found"
	}
	return "Not found"
}

func conflictMessage(resource string) string {
	switch strings.ToLower(resource) {
	case "collection":
		return "Collection cannot be deleted because it includes one or more products."
	case "product":
		return "Product cannot be deleted because it is associated with an order item."
	}
	return "The record is still referenced by other data"
}

func defaultMessage(resource string) string {
	if resource == "" {
		return "An unexpected error occurred"
	}
	return "Failed to process " + strings.ToLower(resource)
}
