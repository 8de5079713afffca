package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/opflow/internal/ir"
)

// marshalFindings converts findings to canonical JSON TEXT. A nil slice is
// stored as an empty array.
func marshalFindings(findings []string) (string, error) {
	arr := make(ir.Array, len(findings))
	for i, f := range findings {
		arr[i] = ir.String(f)
	}
	data, err := ir.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal findings: %w", err)
	}
	return string(data), nil
}

func unmarshalFindings(data string) ([]string, error) {
	findings := []string{}
	if data == "" || data == "[]" {
		return findings, nil
	}
	if err := json.Unmarshal([]byte(data), &findings); err != nil {
		return nil, fmt.Errorf("unmarshal findings: %w", err)
	}
	return findings, nil
}
