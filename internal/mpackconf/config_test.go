// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpackconf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsMatchSpecMandate(t *testing.T) {
	require.False(t, AcceptObsoleteRaw)
	require.Contains(t, []string{"none", "small", "all"}, TableKind)
}
