package upstream

import "testing"

func TestBuildURL(t *testing.T) {
	got := BuildURL("api.example.com", 2025, "export", map[string]string{
		"TYPE": "players",
		"JSON": "1",
	})
	want := "https://api.example.com/2025/export?JSON=1&TYPE=players"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildURLNoArgs(t *testing.T) {
	got := BuildURL("api.example.com", 2025, "login", nil)
	want := "https://api.example.com/2025/login"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildURLNormalizesHost(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"https://www03.example.com/", "https://www03.example.com/2025/export"},
		{"http://www03.example.com", "https://www03.example.com/2025/export"},
		{"www03.example.com", "https://www03.example.com/2025/export"},
	}
	for _, tc := range cases {
		if got := BuildURL(tc.host, 2025, "export", nil); got != tc.want {
			t.Fatalf("host %q: expected %q, got %q", tc.host, tc.want, got)
		}
	}
}

func TestBuildURLEncodesArgs(t *testing.T) {
	got := BuildURL("api.example.com", 2025, "export", map[string]string{
		"SEARCH": "smith, john",
	})
	want := "https://api.example.com/2025/export?SEARCH=smith%2C+john"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
