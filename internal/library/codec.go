package library

import (
	"encoding/json"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// Encode serializes the collection as one JSON array, the persisted form.
// An empty collection encodes as [] rather than null.
func Encode(scripts []types.Script) ([]byte, error) {
	if scripts == nil {
		scripts = []types.Script{}
	}
	return json.Marshal(scripts)
}

// Decode parses a persisted collection. Legacy records without isGroup or
// parentId decode as top-level scripts. Any parse failure is returned so the
// caller can treat the blob as absent.
func Decode(data []byte) ([]types.Script, error) {
	var scripts []types.Script
	if err := json.Unmarshal(data, &scripts); err != nil {
		return nil, err
	}
	if scripts == nil {
		scripts = []types.Script{}
	}
	return scripts, nil
}
