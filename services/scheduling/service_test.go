package scheduling

import (
	"context"
	"errors"
	"testing"
)

func TestSetProviderDayClosed(t *testing.T) {
	f := newFixture()

	pd, err := f.svc.SetProviderDayClosed(context.Background(), "prov-1", "25/05/2026", true)
	if err != nil {
		t.Fatalf("SetProviderDayClosed: %v", err)
	}
	if !pd.IsClosed {
		t.Error("returned day not closed")
	}
	if !pd.Date.Equal(f.day(t, "25/05/2026")) {
		t.Errorf("day date = %v, want %v", pd.Date, f.day(t, "25/05/2026"))
	}

	pd, err = f.svc.SetProviderDayClosed(context.Background(), "prov-1", "25/05/2026", false)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	if pd.IsClosed {
		t.Error("returned day still closed after reopening")
	}
}

func TestSetProviderDayClosedErrors(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.SetProviderDayClosed(context.Background(), "prov-ghost", "25/05/2026", true); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("unknown provider error = %v, want %v", err, ErrProviderNotFound)
	}
	if _, err := f.svc.SetProviderDayClosed(context.Background(), "prov-1", "25-05-2026", true); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("bad date error = %v, want %v", err, ErrInvalidDateFormat)
	}
	if _, err := f.svc.SetProviderDayClosed(context.Background(), "prov-1", "01/01/2020", true); !errors.Is(err, ErrDateInPast) {
		t.Errorf("past date error = %v, want %v", err, ErrDateInPast)
	}
}

func TestGetRequestByID(t *testing.T) {
	f := newFixture()
	created := mustAllocate(t, f, "svc-solo", "22/05/2026")

	got, err := f.svc.GetRequestByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetRequestByID: %v", err)
	}
	if got.ID != created.ID || got.Status != created.Status {
		t.Errorf("got %+v, want %+v", got, created)
	}

	if _, err := f.svc.GetRequestByID(context.Background(), "req-ghost"); !errors.Is(err, ErrRequestNotFound) {
		t.Errorf("unknown request error = %v, want %v", err, ErrRequestNotFound)
	}
}
