package utils

import (
	"net/http/httptest"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"my photo (1).png", "my_photo__1_.png"},
		{"한글사진.jpg", "____.jpg"},
	}
	for _, c := range cases {
		if got := SanitizeFilename(c.in); got != c.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	if !ContainsIgnoreCase("Cafe Onion Seongsu", "cafe onion") {
		t.Error("expected case-insensitive match")
	}
	if ContainsIgnoreCase("Cafe Onion", "냉면") {
		t.Error("unexpected match")
	}
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query     string
		wantSkip  int64
		wantLimit int64
	}{
		{"", 0, 10},
		{"page=3&limit=5", 10, 5},
		{"page=-1&limit=0", 0, 10},
		{"limit=500", 0, 50},
		{"page=abc&limit=abc", 0, 10},
	}
	for _, c := range cases {
		r := httptest.NewRequest("GET", "/?"+c.query, nil)
		skip, limit := ParsePagination(r, 10, 50)
		if skip != c.wantSkip || limit != c.wantLimit {
			t.Errorf("ParsePagination(%q) = (%d, %d), want (%d, %d)", c.query, skip, limit, c.wantSkip, c.wantLimit)
		}
	}
}

func TestGenerateRandomStringLength(t *testing.T) {
	if got := GenerateRandomString(13); len(got) != 13 {
		t.Fatalf("expected 13 characters, got %d", len(got))
	}
}
