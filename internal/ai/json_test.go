package ai

import "testing"

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"inline backticks", "`{\"a\": 1}`", `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFences(tc.in); got != tc.want {
				t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"direct", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounded by prose", `Here is the result: {"a": 1} hope it helps`, `{"a": 1}`},
		{"nested object", `prefix {"a": {"b": 2}}`, `{"a": {"b": 2}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSONObject(tc.in); got != tc.want {
				t.Errorf("ExtractJSONObject(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractJSONObjectNoObject(t *testing.T) {
	// Without an object the cleaned input passes through for the caller's
	// json.Unmarshal to reject.
	if got := ExtractJSONObject("no json here"); got != "no json here" {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	arr, ok := ExtractJSONArray("Sure! Here you go:\n```json\n[\"a\", \"b\"]\n```")
	if !ok {
		t.Fatal("expected an array to be found")
	}
	if arr != `["a", "b"]` {
		t.Errorf("got %q", arr)
	}

	if _, ok := ExtractJSONArray("no array in sight"); ok {
		t.Error("expected no array")
	}
}
