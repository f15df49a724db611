package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusForError(domain.ErrCategoryNotFound))
	assert.Equal(t, http.StatusNotFound, statusForError(domain.ErrProductNotFound))
	assert.Equal(t, http.StatusNotFound, statusForError(domain.ErrMovementNotFound))

	assert.Equal(t, http.StatusBadRequest, statusForError(domain.ErrInsufficientStock))
	assert.Equal(t, http.StatusBadRequest, statusForError(domain.ErrInvalidQuantity))
	assert.Equal(t, http.StatusBadRequest, statusForError(domain.ErrInvalidMovementType))
	assert.Equal(t, http.StatusBadRequest, statusForError(domain.ErrInvalidPrice))
	assert.Equal(t, http.StatusBadRequest, statusForError(domain.ErrCategoryNameTaken))
	assert.Equal(t, http.StatusBadRequest, statusForError(domain.ErrInvalidInput))

	// Wrapped domain errors keep their mapping.
	wrapped := fmt.Errorf("product name is required: %w", domain.ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, statusForError(wrapped))

	// Anything outside the taxonomy is an infrastructure failure.
	assert.Equal(t, http.StatusInternalServerError, statusForError(errors.New("connection reset")))
}

func TestRespondDomainErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondDomainError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Internal server error", resp.Error)
}

func TestRespondDomainErrorKeepsDomainDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondDomainError(rec, domain.ErrInsufficientStock)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.ErrInsufficientStock.Error(), resp.Error)
}
