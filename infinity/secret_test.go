package infinity

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecretRedaction(t *testing.T) {
	secret := NewSecret("ia_super_secret")

	if got := secret.String(); got != "[REDACTED]" {
		t.Errorf("String() = %q, want [REDACTED]", got)
	}
	if got := fmt.Sprintf("%v", secret); strings.Contains(got, "ia_super_secret") {
		t.Errorf("%%v leaked the secret: %q", got)
	}
	if got := fmt.Sprintf("%#v", secret); strings.Contains(got, "ia_super_secret") {
		t.Errorf("%%#v leaked the secret: %q", got)
	}
}

func TestSecretJSONMarshaling(t *testing.T) {
	secret := NewSecret("ia_super_secret")

	data, err := json.Marshal(secret)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"[REDACTED]"` {
		t.Errorf("Marshal() = %s, want \"[REDACTED]\"", data)
	}

	wrapped, err := json.Marshal(struct {
		Key Secret `json:"key"`
	}{Key: secret})
	if err != nil {
		t.Fatalf("Marshal(struct) error = %v", err)
	}
	if strings.Contains(string(wrapped), "ia_super_secret") {
		t.Errorf("struct marshaling leaked the secret: %s", wrapped)
	}
}

func TestSecretExpose(t *testing.T) {
	if got := NewSecret("ia_abc").Expose(); got != "ia_abc" {
		t.Errorf("Expose() = %q, want %q", got, "ia_abc")
	}
}

func TestSecretEqual(t *testing.T) {
	a := NewSecret("ia_abc")
	if !a.Equal(NewSecret("ia_abc")) {
		t.Error("Equal() = false for identical values")
	}
	if a.Equal(NewSecret("ia_xyz")) {
		t.Error("Equal() = true for different values")
	}
	if a.Equal(NewSecret("ia_ab")) {
		t.Error("Equal() = true for a prefix of the value")
	}
	if !NewSecret("").Equal(NewSecret("")) {
		t.Error("Equal() = false for two empty secrets")
	}
}

func TestSecretIsEmpty(t *testing.T) {
	if !NewSecret("").IsEmpty() {
		t.Error("IsEmpty() = false for empty secret")
	}
	if NewSecret("x").IsEmpty() {
		t.Error("IsEmpty() = true for non-empty secret")
	}
}
