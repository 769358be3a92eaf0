// Package testsupport loads Markdown fixtures and compares converter output
// with golden ADF payloads.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"testing"
)

// LoadFixture returns the fixture at path as a string.
func LoadFixture(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadGolden decodes the JSON golden file at path into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode golden %s: %w", path, err)
	}
	return nil
}

// AssertJSONGolden fails t unless got encodes to the same JSON value as the
// golden file at path. Key order and whitespace are ignored.
func AssertJSONGolden(t testing.TB, path string, got any) {
	t.Helper()

	var want any
	if err := LoadGolden(path, &want); err != nil {
		t.Fatalf("load golden: %v", err)
	}

	encoded, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal output: %v", err)
	}
	var actual any
	if err := json.Unmarshal(encoded, &actual); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if !reflect.DeepEqual(want, actual) {
		pretty, _ := json.MarshalIndent(actual, "", "  ")
		t.Fatalf("output does not match %s\n%s", path, pretty)
	}
}
