package middleware

import (
	"net/http"
	"testing"
)

func TestCacheableHeaderDropsSetCookie(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Add("Set-Cookie", "nb_session=4d7093aa; Path=/; HttpOnly")
	h.Set("X-Cache", "MISS")

	got := cacheableHeader(h)
	if _, ok := got["Set-Cookie"]; ok {
		t.Fatal("Set-Cookie must never enter the cache payload")
	}
	if _, ok := got["X-Cache"]; ok {
		t.Fatal("X-Cache is per-request, not cacheable")
	}
	if got.Get("Content-Type") != "application/json" {
		t.Fatalf("shareable headers should be kept: %v", got)
	}

	// The copy must not alias the live response header.
	got.Set("Content-Type", "text/plain")
	if h.Get("Content-Type") != "application/json" {
		t.Fatal("cacheableHeader must copy, not alias")
	}
}

func TestCachedPayloadCarriesNoSessionCookie(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Add("Set-Cookie", "nb_session=4d7093aa; Path=/; HttpOnly")

	payload, err := encodePayload(http.StatusOK, cacheableHeader(h), []byte(`{"restaurants":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	status, hdr, body, ok := decodePayload(payload)
	if !ok || status != http.StatusOK {
		t.Fatalf("decode failed: ok=%v status=%d", ok, status)
	}
	if len(hdr["Set-Cookie"]) != 0 {
		t.Fatalf("a later visitor would receive the first visitor's cookie: %v", hdr)
	}
	if hdr.Get("Content-Type") != "application/json" {
		t.Fatalf("header lost in roundtrip: %v", hdr)
	}
	if string(body) != `{"restaurants":[]}` {
		t.Fatalf("body lost in roundtrip: %q", body)
	}
}

func TestRestoredHeadersSkipPerUserEntries(t *testing.T) {
	// Entries written before the sanitizer existed may still hold Set-Cookie;
	// the restore path must refuse to replay it.
	if !perUserHeader("Set-Cookie") || !perUserHeader("set-cookie") {
		t.Fatal("Set-Cookie must be treated as per-user in any casing")
	}
	if !perUserHeader("X-Cache") {
		t.Fatal("X-Cache must be treated as per-user")
	}
	if perUserHeader("Content-Type") {
		t.Fatal("Content-Type is shareable")
	}
}
