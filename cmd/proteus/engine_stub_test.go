//go:build !proteusds

package main

import (
	"testing"

	"github.com/iwtcode/proteusAdapter/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestNativeEngineRequiresBuildTag(t *testing.T) {
	eng, err := newNativeEngine()
	require.Nil(t, eng)
	require.ErrorIs(t, err, errors.ErrEngineUnavailable)

	_, err = execute(t, "version")
	require.ErrorIs(t, err, errors.ErrEngineUnavailable)
}
