package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WheelShare-Rentals/service-rental/pkg/apperrors"
)

// PaginatedResult wraps a page of items with its paging metadata.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPaginatedResult builds a PaginatedResult.
func NewPaginatedResult[T any](items []T, total int64, page, limit int) PaginatedResult[T] {
	return PaginatedResult[T]{Items: items, Total: total, Page: page, Limit: limit}
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// BadRequest writes a 400 response with a message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{"code": apperrors.CodeValidation, "message": message},
	})
}

// Paginated writes a 200 response with items and paging metadata.
func Paginated(c *gin.Context, items any, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// Error maps an error to its HTTP representation. Domain errors carry
// their own status and code; anything else is an opaque 500.
func Error(c *gin.Context, err error) {
	if de := apperrors.AsDomainError(err); de != nil {
		c.JSON(de.StatusCode(), gin.H{
			"error": gin.H{
				"code":    de.Code,
				"message": de.Message,
				"details": de.Details,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": apperrors.CodeInternal, "message": "internal server error"},
	})
}
