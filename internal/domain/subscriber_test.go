package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mobivas/vas-platform/internal/domain"
)

func TestNormalizeMSISDN(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain digits", "27821234567", "27821234567"},
		{"plus prefix", "+27821234567", "27821234567"},
		{"interior spaces", "27 82 123 4567", "27821234567"},
		{"surrounding whitespace", "  27821234567 ", "27821234567"},
		{"short local number", "1234567", "1234567"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.NormalizeMSISDN(tc.raw)
			if err != nil {
				t.Fatalf("NormalizeMSISDN(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeMSISDN(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalizeMSISDNRejections(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "+", "27-82-1234567", "abc", "123456", "1234567890123456"} {
		if _, err := domain.NormalizeMSISDN(raw); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("NormalizeMSISDN(%q): expected ErrInvalidInput, got %v", raw, err)
		}
	}
}

func TestOneTimeCodeExpiry(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	code := domain.OneTimeCode{
		MSISDN:    "27821234567",
		Code:      "123456",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(5 * time.Minute),
	}

	if code.Expired(issued.Add(4 * time.Minute)) {
		t.Fatal("code expired inside its window")
	}
	if !code.Expired(issued.Add(5 * time.Minute)) {
		t.Fatal("code still valid at the boundary")
	}
}

func TestCatalogLookups(t *testing.T) {
	t.Parallel()

	catalog := domain.NewCatalog(domain.DefaultServices())

	svc, ok := catalog.ServiceByID("1")
	if !ok || svc.Name != "Music Streaming" {
		t.Fatalf("ServiceByID(1) = %+v, %v", svc, ok)
	}
	if _, ok := catalog.ServiceByID("99"); ok {
		t.Fatal("unknown id must not resolve")
	}

	if got := catalog.ServiceName("2"); got != "Video Streaming" {
		t.Fatalf("ServiceName(2) = %q", got)
	}
	// Unknown ids fall back to the id itself so history stays renderable.
	if got := catalog.ServiceName("99"); got != "99" {
		t.Fatalf("ServiceName(99) = %q", got)
	}

	if len(catalog.Services()) != 3 {
		t.Fatalf("expected three default services, got %d", len(catalog.Services()))
	}
}
