package swarm

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapStore(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantNil bool
		wantIs  error
		same    bool
	}{
		{"nil error returns nil", nil, true, nil, false},
		{"opaque error wraps with ErrStore", errors.New("db down"), false, ErrStore, false},
		{"not found passes through", fmt.Errorf("peer: %w", ErrNotFound), false, ErrNotFound, true},
		{"already exists passes through", ErrAlreadyExists, false, ErrAlreadyExists, true},
		{"store error is not wrapped twice", fmt.Errorf("%w: x", ErrStore), false, ErrStore, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapStore(tt.err)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.wantIs) {
				t.Fatalf("expected errors.Is(%v, %v) to be true", got, tt.wantIs)
			}
			if tt.same && got != tt.err {
				t.Fatalf("expected error to pass through unchanged, got %v", got)
			}
		})
	}
}

func TestErrorSentinelsDistinct(t *testing.T) {
	sentinels := []error{ErrInvalidArgument, ErrNotFound, ErrAlreadyExists, ErrStore, ErrConflict}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v and %v should be distinct", a, b)
			}
		}
	}
}
