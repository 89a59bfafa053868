package handlers

import (
	"errors"
	"net/http"
	"testing"

	"khidma/services/scheduling"
)

func TestSchedulingErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{scheduling.ErrInvalidDateFormat, http.StatusBadRequest},
		{scheduling.ErrInvalidCalendarDate, http.StatusBadRequest},
		{scheduling.ErrDateInPast, http.StatusBadRequest},
		{scheduling.ErrDateTooFarInFuture, http.StatusBadRequest},
		{scheduling.ErrUnsupportedCity, http.StatusBadRequest},
		{scheduling.ErrServiceNotFound, http.StatusNotFound},
		{scheduling.ErrProviderNotFound, http.StatusNotFound},
		{scheduling.ErrCustomerNotFound, http.StatusNotFound},
		{scheduling.ErrRequestNotFound, http.StatusNotFound},
		{scheduling.ErrLocationNotServed, http.StatusConflict},
		{scheduling.ErrServiceClosedForDate, http.StatusConflict},
		{scheduling.ErrInsufficientWorkers, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := schedulingErrorStatus(tt.err); got != tt.want {
			t.Errorf("schedulingErrorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
