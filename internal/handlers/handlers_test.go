package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", models.ErrNotFound, http.StatusNotFound},
		{"forbidden", models.ErrForbidden, http.StatusForbidden},
		{"invalid quantity", models.ErrInvalidQuantity, http.StatusBadRequest},
		{"invalid rating", models.ErrInvalidRating, http.StatusBadRequest},
		{"empty cart", models.ErrEmptyCart, http.StatusBadRequest},
		{"duplicate", models.ErrDuplicate, http.StatusBadRequest},
		{"storage failure", &models.StorageError{Op: "SELECT", Table: "orders", Err: errors.New("timeout")}, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondError(c, tc.err)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRespondErrorHidesStorageDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondError(c, &models.StorageError{Op: "INSERT", Table: "orders", Err: errors.New("duplicate entry 'ref-1'")})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ref-1")
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestRespondErrorUnwrapsStorageWrappedSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	// WrapStorage passes sentinels through, but a sentinel wrapped by some
	// other layer must still map by errors.Is.
	respondError(c, &models.StorageError{Op: "SELECT", Table: "carts", Err: models.ErrNotFound})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
