package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "viewport" {
		t.Errorf("CLIName() = %q, want %q", got, "viewport")
	}
	if got := RCFile(); got != ".viewportrc" {
		t.Errorf("RCFile() = %q, want %q", got, ".viewportrc")
	}
	if got := HomeDir(); got != ".viewport" {
		t.Errorf("HomeDir() = %q, want %q", got, ".viewport")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("rc_file"); got != "VIEWPORT_RC_FILE" {
		t.Errorf("EnvVar(rc_file) = %q, want %q", got, "VIEWPORT_RC_FILE")
	}
}
