//go:build !js || !wasm
// +build !js !wasm

package debug

import "log"

func platformLog(args ...interface{}) {
	log.Println(args...)
}
