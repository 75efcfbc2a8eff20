package domain

import "testing"

func TestStatusMonotonic(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusPaid, true},
		{StatusPending, StatusCompleted, true},
		{StatusPaid, StatusShipped, true},
		{StatusShipped, StatusCompleted, true},
		{StatusPaid, StatusPending, false},
		{StatusCompleted, StatusShipped, false},
		{StatusPaid, StatusPaid, false},
		{Status("bogus"), StatusPaid, false},
	}
	for _, c := range cases {
		if got := c.from.CanBecome(c.to); got != c.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", c.from, c.to, c.ok, got)
		}
	}
}

func TestPayableOnlyPending(t *testing.T) {
	if !StatusPending.Payable() {
		t.Fatal("pending must be payable")
	}
	for _, s := range []Status{StatusPaid, StatusShipped, StatusCompleted} {
		if s.Payable() {
			t.Fatalf("%s must not be payable", s)
		}
	}
}

func TestPickDefault(t *testing.T) {
	book := DefaultAddresses()
	addr, ok := PickDefault(book)
	if !ok || !addr.IsDefault {
		t.Fatalf("expected the default entry, got %+v", addr)
	}

	t.Run("falls back to first when none flagged", func(t *testing.T) {
		book := []Address{{ID: "a"}, {ID: "b"}}
		addr, ok := PickDefault(book)
		if !ok || addr.ID != "a" {
			t.Fatalf("expected first entry, got %+v", addr)
		}
	})

	t.Run("empty book", func(t *testing.T) {
		if _, ok := PickDefault(nil); ok {
			t.Fatal("empty book must report no address")
		}
	})
}
