package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
	Version, Commit, Date = version, commit, date
}

func TestShort(t *testing.T) {
	stamp(t, "dev", "unknown", "unknown")
	assert.Equal(t, "dev", Short())

	stamp(t, "dev", "1a2b3c", "unknown")
	assert.Equal(t, "1a2b3c", Short())

	stamp(t, "v0.3.0", "1a2b3c", "2026-10-01")
	assert.Equal(t, "v0.3.0", Short())
	assert.Equal(t, "kestrel v0.3.0 (commit 1a2b3c, built 2026-10-01)", String())
}
