package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type samplePayload struct {
	TotalCalls int      `json:"total_calls"`
	Rules      []string `json:"rules"`
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := New(FormatJSON, WithOutput(&buf))

	err := w.Write(samplePayload{TotalCalls: 3, Rules: []string{"Bash(ls *)"}})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	var parsed samplePayload
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed.TotalCalls != 3 || len(parsed.Rules) != 1 {
		t.Errorf("round trip = %+v", parsed)
	}
}

func TestWrite_TextFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := New(FormatText, WithOutput(&buf))

	if err := w.Write(samplePayload{TotalCalls: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("text-mode structured output should be JSON, got %q", buf.String())
	}
}

func TestWrite_YAMLUsesJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	w := New(FormatYAML, WithOutput(&buf))

	if err := w.Write(samplePayload{TotalCalls: 7}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "total_calls: 7") {
		t.Errorf("YAML should carry snake_case keys, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("YAML output should end with a newline")
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	w := New(Format("toml"), WithOutput(&bytes.Buffer{}))
	if err := w.Write(map[string]any{}); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestSuccessAndError_TextGoesToErrOut(t *testing.T) {
	var out, errOut bytes.Buffer
	w := New(FormatText, WithOutput(&out), WithErrorOutput(&errOut))

	w.Success("applied")
	if out.Len() != 0 {
		t.Errorf("text success should not write to stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "applied") {
		t.Errorf("success message missing: %q", errOut.String())
	}
}

func TestSuccessAndError_Structured(t *testing.T) {
	var buf bytes.Buffer
	w := New(FormatJSON, WithOutput(&buf))

	w.Success("applied")

	var parsed map[string]string
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("structured success is not JSON: %v", err)
	}
	if parsed["status"] != "success" || parsed["message"] != "applied" {
		t.Errorf("payload = %v", parsed)
	}
}
