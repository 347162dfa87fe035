//go:build !proteusds

package main

import (
	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/pkg/errors"
)

// newNativeEngine без тега proteusds: доступен только --dry-run.
func newNativeEngine() (engine.Engine, error) {
	return nil, errors.ErrEngineUnavailable
}
