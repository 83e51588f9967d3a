package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v0.4.0"

	got := String()
	for _, want := range []string{"version: v0.4.0", "commit: ", "built: "} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
	if ua := UserAgent(); ua != "hellion-blueprint/v0.4.0" {
		t.Errorf("UserAgent() = %q", ua)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
}
