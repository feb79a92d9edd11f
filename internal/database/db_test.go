package database

import (
	"testing"

	"github.com/nightbite/restaurant-booking/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "nb",
		DBPass: "secret",
		DBHost: "db.internal",
		DBPort: "3306",
		DBName: "nightbite",
	}
	want := "nb:secret@tcp(db.internal:3306)/nightbite?charset=utf8mb4&parseTime=true&loc=UTC"
	if got := dsn(cfg); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}

func TestDSNEmptyPasswordOmitsColon(t *testing.T) {
	cfg := config.Config{
		DBUser: "nb",
		DBHost: "localhost",
		DBPort: "3306",
		DBName: "nightbite",
	}
	want := "nb@tcp(localhost:3306)/nightbite?charset=utf8mb4&parseTime=true&loc=UTC"
	if got := dsn(cfg); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
