package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondError(c, err)
	return w
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ValidationError{Reason: "bad date"}, http.StatusBadRequest},
		{"not found", NotFoundError{Resource: "doctor"}, http.StatusNotFound},
		{"conflict", ConflictError{Reason: "slot taken"}, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped validation", fmt.Errorf("outer: %w", ValidationError{Reason: "bad"}), http.StatusBadRequest},
		{"wrapped conflict", fmt.Errorf("outer: %w", ConflictError{Reason: "taken"}), http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := respond(t, tc.err)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	if got := (NotFoundError{Resource: "slot"}).Error(); got != "slot not found" {
		t.Errorf("NotFoundError message = %q", got)
	}
	if got := (ValidationError{Reason: "invalid date"}).Error(); got != "invalid date" {
		t.Errorf("ValidationError message = %q", got)
	}
	if got := (ConflictError{Reason: "slot taken"}).Error(); got != "slot taken" {
		t.Errorf("ConflictError message = %q", got)
	}
}
