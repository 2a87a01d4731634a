package matcher

import (
	"bytes"
	"testing"

	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/blacklist"
)

func TestCheck(t *testing.T) {
	bl := blacklist.New("evil.example", "phish.test")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "matching url",
			input: "click http://evil.example/login now",
			want:  `{"phishing":true,"domain":"http://evil.example/login"}`,
		},
		{
			name:  "safe url",
			input: "see https://safe.example/ok",
			want:  `{"phishing":false,"domain":null}`,
		},
		{
			name:  "domain outside any url",
			input: "evil.example is bad, see https://safe.example",
			want:  `{"phishing":false,"domain":null}`,
		},
		{
			name:  "first match wins",
			input: "https://safe.example http://a.phish.test/x https://evil.example/y",
			want:  `{"phishing":true,"domain":"http://a.phish.test/x"}`,
		},
		{
			name:  "substring anywhere in url",
			input: "https://safe.example/redirect?to=evil.example",
			want:  `{"phishing":true,"domain":"https://safe.example/redirect?to=evil.example"}`,
		},
		{
			name:  "case sensitive",
			input: "http://EVIL.EXAMPLE/",
			want:  `{"phishing":false,"domain":null}`,
		},
		{
			name:  "no urls",
			input: "",
			want:  `{"phishing":false,"domain":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(bl, tt.input).Marshal()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCheck_NoBlacklist(t *testing.T) {
	v := Check(nil, "click http://evil.example/login now")
	if v.Phishing || v.Domain != nil {
		t.Errorf("verdict = %+v, want unmatched", v)
	}
}

func TestCheck_NoURLNeverMatches(t *testing.T) {
	// A blacklist entry that is a substring of everything still needs a URL.
	bl := blacklist.New("e", "", "http")
	for _, text := range []string{"", "plain words", "evil.example", "http:/ nope"} {
		if v := Check(bl, text); v.Phishing {
			t.Errorf("Check(%q) = %+v, want unmatched", text, v)
		}
	}
}

func TestCheck_Idempotent(t *testing.T) {
	bl := blacklist.New("evil.example")
	text := "a https://evil.example/1 b https://evil.example/2"

	first := Check(bl, text).Payload()
	second := Check(bl, text).Payload()
	if !bytes.Equal(first, second) {
		t.Errorf("first %s != second %s", first, second)
	}
}

func TestVerdict_MarshalStable(t *testing.T) {
	v := Matched("http://evil.example/path")

	first, err := v.Marshal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := v.Marshal()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("marshal %d = %s, want %s", i, again, first)
		}
	}
	if want := `{"phishing":true,"domain":"http://evil.example/path"}`; string(first) != want {
		t.Errorf("got %s, want %s", first, want)
	}
}

func TestVerdict_MarshalNoHTMLEscape(t *testing.T) {
	got := Matched("http://evil.example/?a=1&b=<2>").Payload()
	want := `{"phishing":true,"domain":"http://evil.example/?a=1&b=<2>"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestVerdict_UnmatchedPayload(t *testing.T) {
	if got := Unmatched().Payload(); !bytes.Equal(got, unmatchedPayload) {
		t.Errorf("got %s, want %s", got, unmatchedPayload)
	}
}

func BenchmarkCheck_Hit(b *testing.B) {
	bl := blacklist.New("evil.example", "phish.test", "bad.example")
	text := "hello https://safe.example/ then http://evil.example/login"
	for i := 0; i < b.N; i++ {
		if !Check(bl, text).Phishing {
			b.Fatal("expected phishing")
		}
	}
}

func BenchmarkCheck_Miss(b *testing.B) {
	bl := blacklist.New("evil.example", "phish.test", "bad.example")
	text := "hello https://safe.example/ then http://other.example/login"
	for i := 0; i < b.N; i++ {
		if Check(bl, text).Phishing {
			b.Fatal("expected no match")
		}
	}
}
