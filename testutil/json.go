package testutil

import (
	"io"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

// MarshalJSON marshals the provided value to JSON fatally terminating the current test in the event of a failure.
func MarshalJSON(t *testing.T, data any) []byte {
	dJSON, err := jsoniter.Marshal(data)
	require.NoError(t, err)

	return dJSON
}

// UnmarshalJSON unmarshals the provided JSON data into the given value fatally terminating the current test in the
// event of a failure.
func UnmarshalJSON(t *testing.T, dJSON []byte, data any) {
	require.NoError(t, jsoniter.Unmarshal(dJSON, data))
}

// DecodeJSON decodes data from the provided reader into the given value fatally terminating the current test in the
// event of a failure.
func DecodeJSON(t *testing.T, reader io.Reader, data any) {
	require.NoError(t, jsoniter.NewDecoder(reader).Decode(&data))
}
