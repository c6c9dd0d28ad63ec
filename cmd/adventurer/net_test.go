package main

import (
	"net"
	"path/filepath"
	"testing"
)

func TestGuessIpAddress24(t *testing.T) {
	addr := net.IP{192, 168, 0, 1}
	actual, err := guessIpAddress(addr, "42")
	if err != nil {
		t.Fatal(err)
	}
	expected := net.IP{192, 168, 0, 42}
	if !actual.Equal(expected) {
		t.Fatalf("expected %v, actual %v", expected, actual)
	}
}

func TestGuessIpAddress16(t *testing.T) {
	addr := net.IP{192, 168, 0, 1}
	actual, err := guessIpAddress(addr, "15.42")
	if err != nil {
		t.Fatal(err)
	}
	expected := net.IP{192, 168, 15, 42}
	if !actual.Equal(expected) {
		t.Fatalf("expected %v, actual %v", expected, actual)
	}
}

func TestGuessIpAddress0(t *testing.T) {
	addr := net.IP{192, 168, 0, 1}
	actual, err := guessIpAddress(addr, "10.100.15.42")
	if err != nil {
		t.Fatal(err)
	}
	expected := net.IP{10, 100, 15, 42}
	if !actual.Equal(expected) {
		t.Fatalf("expected %v, actual %v", expected, actual)
	}
}

func TestGuessIpAddressTooLong(t *testing.T) {
	addr := net.IP{192, 168, 0, 1}
	if _, err := guessIpAddress(addr, "1.2.3.4.5"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestNodeURL(t *testing.T) {
	cases := map[string]string{
		"http://127.0.0.1:9005": "http://127.0.0.1:9005",
		"localhost":             "http://localhost:9000",
		"localhost:9003":        "http://localhost:9003",
		"10.0.0.7":              "http://10.0.0.7:9000",
		"10.0.0.7:1234":         "http://10.0.0.7:1234",
	}
	for node, expected := range cases {
		actual, err := nodeURL(node, 9000)
		if err != nil {
			t.Fatalf("%s: %v", node, err)
		}
		if actual != expected {
			t.Fatalf("%s: expected %s, actual %s", node, expected, actual)
		}
	}
}

func TestSplitHostPort(t *testing.T) {
	host, port, err := splitHostPort("example.org", 9000)
	if err != nil {
		t.Fatal(err)
	}
	if host != "example.org" || port != "9000" {
		t.Fatalf("expected example.org 9000, actual %s %s", host, port)
	}
}

func TestHTTPClientRejectsMissingCA(t *testing.T) {
	if _, err := httpClient(filepath.Join(t.TempDir(), "missing.pem")); err == nil {
		t.Fatal("expected an error for a missing CA file")
	}
	h, err := httpClient("")
	if err != nil {
		t.Fatal(err)
	}
	if h.Transport != nil {
		t.Fatal("expected the default transport")
	}
}
