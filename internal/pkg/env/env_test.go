package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvPrefersLoadedMap(t *testing.T) {
	t.Setenv("ABO_TEST_KEY", "from-os")
	Env = map[string]string{"ABO_TEST_KEY": "from-file"}
	t.Cleanup(func() { Env = nil })

	assert.Equal(t, "from-file", GetEnv("ABO_TEST_KEY", "def"))

	Env = nil
	assert.Equal(t, "from-os", GetEnv("ABO_TEST_KEY", "def"))
	assert.Equal(t, "def", GetEnv("ABO_TEST_MISSING", "def"))
}

func TestTypedGetters(t *testing.T) {
	Env = map[string]string{
		"WORKERS": "7",
		"BROKEN":  "seven",
		"ENABLED": "true",
		"TIMEOUT": "15s",
	}
	t.Cleanup(func() { Env = nil })

	assert.Equal(t, 7, GetEnvInt("WORKERS", 3))
	assert.Equal(t, 3, GetEnvInt("BROKEN", 3))
	assert.Equal(t, 3, GetEnvInt("UNSET_WORKERS", 3))

	assert.True(t, GetEnvBool("ENABLED", false))
	assert.False(t, GetEnvBool("BROKEN", false))

	assert.Equal(t, 15*time.Second, GetEnvDuration("TIMEOUT", time.Second))
	assert.Equal(t, time.Second, GetEnvDuration("BROKEN", time.Second))
}
