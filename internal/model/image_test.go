package model_test

import (
	"testing"

	"github.com/nightbite/restaurant-booking/internal/model"
)

func TestPublicImageURL(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"http://cdn.example.com/a.jpg", "http://cdn.example.com/a.jpg"},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"/static/a.jpg", "/static/a.jpg"},
		{"static/a.jpg", "/static/a.jpg"},
		{"/uploads/a.jpg", "/static/uploads/a.jpg"},
		{"uploads/a.jpg", "/static/uploads/a.jpg"},
		{"uploads\\a.jpg", "/static/uploads/a.jpg"},
		{"a.jpg", "/static/a.jpg"},
		{"/a.jpg", "/static/a.jpg"},
	}
	for _, tc := range cases {
		if got := model.PublicImageURL(tc.in); got != tc.want {
			t.Errorf("PublicImageURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClampRating(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {2.5, 2.5}, {5, 5}, {7.9, 5},
	}
	for _, tc := range cases {
		if got := model.ClampRating(tc.in); got != tc.want {
			t.Errorf("ClampRating(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidPriceRange(t *testing.T) {
	for v, want := range map[int]bool{0: false, 1: true, 4: true, 5: false, -1: false} {
		if got := model.ValidPriceRange(v); got != want {
			t.Errorf("ValidPriceRange(%d) = %v, want %v", v, got, want)
		}
	}
}
