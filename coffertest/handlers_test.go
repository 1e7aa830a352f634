package coffertest

import (
	"testing"

	"github.com/boardvault/coffer/errors"
)

func TestHandlerWithError(t *testing.T) {
	h := Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrNotFound,
	}

	if _, err := h.Check(nil, nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Errorf("want unauthorized, got %q", err)
	}
	if _, err := h.Deliver(nil, nil, nil); !errors.ErrNotFound.Is(err) {
		t.Errorf("want not found, got %q", err)
	}
}

func TestHandlerCallCount(t *testing.T) {
	h := Handler{DeliverResult: DeliverResultWithData("x")}

	assertCounts(t, &h, 0, 0)

	_, _ = h.Check(nil, nil, nil)
	assertCounts(t, &h, 1, 0)

	res, _ := h.Deliver(nil, nil, nil)
	assertCounts(t, &h, 1, 1)
	if string(res.Data) != "x" {
		t.Fatalf("unexpected result data: %q", res.Data)
	}

	// Failing calls are counted as well.
	h.CheckErr = errors.ErrNotFound
	h.DeliverErr = errors.ErrNotFound
	_, _ = h.Check(nil, nil, nil)
	_, _ = h.Deliver(nil, nil, nil)
	assertCounts(t, &h, 2, 2)
}

type counter interface {
	CheckCallCount() int
	DeliverCallCount() int
	CallCount() int
}

func assertCounts(t *testing.T, c counter, wantCheck, wantDeliver int) {
	t.Helper()
	if got := c.CheckCallCount(); got != wantCheck {
		t.Errorf("want %d checks, got %d", wantCheck, got)
	}
	if got := c.DeliverCallCount(); got != wantDeliver {
		t.Errorf("want %d delivers, got %d", wantDeliver, got)
	}
	if got := c.CallCount(); got != wantCheck+wantDeliver {
		t.Errorf("want %d total, got %d", wantCheck+wantDeliver, got)
	}
}
