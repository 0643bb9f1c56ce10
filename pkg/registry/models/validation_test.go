package models

import "testing"

func TestValidModelName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain", input: "churn-model", want: true},
		{name: "underscores and spaces", input: "Fraud Detector_v2", want: true},
		{name: "surrounding spaces", input: "  padded  ", want: true},
		{name: "unicode letters", input: "modèle", want: true},
		{name: "dot", input: "model.v1", want: false},
		{name: "slash", input: "a/b", want: false},
		{name: "only separators", input: "- _", want: false},
		{name: "empty", input: "", want: false},
	}

	for _, tc := range tests {
		current := tc
		t.Run(current.name, func(t *testing.T) {
			if got := ValidModelName(current.input); got != current.want {
				t.Fatalf("ValidModelName(%q) = %v, want %v", current.input, got, current.want)
			}
		})
	}
}

func TestNormalizeModelName(t *testing.T) {
	if got := NormalizeModelName("  churn model \t"); got != "churn model" {
		t.Fatalf("unexpected normalized name %q", got)
	}
}

func TestValidVersion(t *testing.T) {
	for _, v := range []string{"1.0.0", "10.20.30", "0.0.1"} {
		if !ValidVersion(v) {
			t.Fatalf("expected %q to be valid", v)
		}
	}
	for _, v := range []string{"1.0", "v1.0.0", "1.0.0-rc1", "1.a.0", ""} {
		if ValidVersion(v) {
			t.Fatalf("expected %q to be invalid", v)
		}
	}
}
