//go:build proteusds

package main

import (
	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/engine/native"
)

func newNativeEngine() (engine.Engine, error) {
	nativeEngine, err := native.New()
	if err != nil {
		return nil, err
	}
	return nativeEngine, nil
}
