package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBanner(t *testing.T) {
	ov, od, oc := BuildVersion, BuildDate, BuildCommit
	t.Cleanup(func() { BuildVersion, BuildDate, BuildCommit = ov, od, oc })

	BuildVersion, BuildDate, BuildCommit = "", "", ""
	require.Contains(t, Banner(), "Build version: N/A")

	BuildVersion, BuildDate, BuildCommit = "v1", "2025-09-06", "deadbeef"
	b := Banner()
	require.Contains(t, b, "Build version: v1")
	require.Contains(t, b, "Build date: 2025-09-06")
	require.Contains(t, b, "Build commit: deadbeef")
}
