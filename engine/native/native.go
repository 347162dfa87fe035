//go:build proteusds

package native

/*
#cgo CFLAGS: -I${SRCDIR} -I${SRCDIR}/include
#cgo CXXFLAGS: -std=c++17 -I${SRCDIR} -I${SRCDIR}/include
#cgo LDFLAGS: -L${SRCDIR}/lib -lProteusDSAPI
#cgo linux LDFLAGS: -Wl,-rpath,${SRCDIR}/lib

#include <stdlib.h>
#include "c_helpers.h"
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/iwtcode/proteusAdapter/engine"
)

var (
	verifyOnce sync.Once
	verifyErr  error
)

// Engine - нативная реализация engine.Engine. Состояния не хранит:
// все состояние симуляции живет внутри движка и адресуется меткой.
type Engine struct{}

// Убедимся, что Engine удовлетворяет интерфейсу engine.Engine.
var _ engine.Engine = (*Engine)(nil)

// New возвращает нативный движок. При первом вызове таблица команд
// сверяется с заголовком, с которым собрана библиотека.
func New() (*Engine, error) {
	verifyOnce.Do(func() {
		verifyErr = VerifyCommands()
	})
	if verifyErr != nil {
		return nil, verifyErr
	}
	return &Engine{}, nil
}

// HeaderCommands возвращает пары (имя, значение) из заголовка движка.
func HeaderCommands() map[string]int32 {
	n := int(C.go_pds_command_count())
	table := unsafe.Slice(C.go_pds_command_table(), n)

	out := make(map[string]int32, n)
	for _, entry := range table {
		out[C.GoString(entry.name)] = int32(entry.value)
	}
	return out
}

// VerifyCommands сравнивает перечисление engine.Command с заголовком движка.
func VerifyCommands() error {
	return verify(HeaderCommands())
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// cStrings конвертирует строки в C и возвращает функцию освобождения.
func cStrings(values ...string) ([]*C.char, func()) {
	out := make([]*C.char, len(values))
	for i, v := range values {
		out[i] = C.CString(v)
	}
	return out, func() {
		for _, p := range out {
			C.free(unsafe.Pointer(p))
		}
	}
}

func (e *Engine) Initialize(label, args string, verbose, batch bool) bool {
	s, free := cStrings(label, args)
	defer free()
	return C.go_pds_initialize(s[0], s[1], cBool(verbose), cBool(batch)) != 0
}

func (e *Engine) AdvanceTime(label string, dt float64) {
	s, free := cStrings(label)
	defer free()
	C.go_pds_advance_time(s[0], C.double(dt))
}

func (e *Engine) Close(label string) {
	s, free := cStrings(label)
	defer free()
	C.go_pds_close(s[0])
}

func (e *Engine) GetDouble(label string, cmd engine.Command, object string, out *float64) {
	s, free := cStrings(label, object)
	defer free()

	value := C.double(*out)
	C.go_pds_get_double(s[0], C.int(cmd), s[1], &value)
	*out = float64(value)
}

func (e *Engine) GetInt(label string, cmd engine.Command, object string, out *int32) {
	s, free := cStrings(label, object)
	defer free()

	value := C.int(*out)
	C.go_pds_get_int(s[0], C.int(cmd), s[1], &value)
	*out = int32(value)
}

func (e *Engine) GetDoubleArray(label string, cmd engine.Command, object string, out []float64) {
	s, free := cStrings(label, object)
	defer free()

	var in *C.double
	if len(out) > 0 {
		in = (*C.double)(unsafe.Pointer(&out[0]))
	}
	var length C.size_t
	result := C.go_pds_get_double_array(s[0], C.int(cmd), s[1], in, C.size_t(len(out)), &length)
	if result == nil {
		return
	}
	defer C.free(unsafe.Pointer(result))
	copyDoubles(out, unsafe.Pointer(result), int(length))
}

func (e *Engine) GetIntArray(label string, cmd engine.Command, object string, out []int32) {
	s, free := cStrings(label, object)
	defer free()

	var in *C.int
	if len(out) > 0 {
		in = (*C.int)(unsafe.Pointer(&out[0]))
	}
	var length C.size_t
	result := C.go_pds_get_int_array(s[0], C.int(cmd), s[1], in, C.size_t(len(out)), &length)
	if result == nil {
		return
	}
	defer C.free(unsafe.Pointer(result))
	copyInt32s(out, unsafe.Pointer(result), int(length))
}

func (e *Engine) GetString(label string, cmd engine.Command, object string, out *string) {
	s, free := cStrings(label, object)
	defer free()

	var length C.size_t
	cstr := C.go_pds_get_string(s[0], C.int(cmd), s[1], &length)
	if cstr == nil {
		return
	}
	defer C.free(unsafe.Pointer(cstr))
	*out = bytesToString(unsafe.Pointer(cstr), int(length))
}

func (e *Engine) GetErrorMessage(label string, out *string) {
	s, free := cStrings(label)
	defer free()

	var length C.size_t
	cstr := C.go_pds_get_error_message(s[0], &length)
	if cstr == nil {
		return
	}
	defer C.free(unsafe.Pointer(cstr))
	*out = bytesToString(unsafe.Pointer(cstr), int(length))
}

func (e *Engine) SetDouble(label string, cmd engine.Command, object string, value float64) {
	s, free := cStrings(label, object)
	defer free()
	C.go_pds_set_double(s[0], C.int(cmd), s[1], C.double(value))
}

func (e *Engine) SetInt(label string, cmd engine.Command, object string, value int32) {
	s, free := cStrings(label, object)
	defer free()
	C.go_pds_set_int(s[0], C.int(cmd), s[1], C.int(value))
}

func (e *Engine) SetDoubleArray(label string, cmd engine.Command, object string, values []float64) {
	s, free := cStrings(label, object)
	defer free()

	var ptr *C.double
	if len(values) > 0 {
		ptr = (*C.double)(unsafe.Pointer(&values[0]))
	}
	C.go_pds_set_double_array(s[0], C.int(cmd), s[1], ptr, C.size_t(len(values)))
}

func (e *Engine) SetIntArray(label string, cmd engine.Command, object string, values []int32) {
	s, free := cStrings(label, object)
	defer free()

	var ptr *C.int
	if len(values) > 0 {
		ptr = (*C.int)(unsafe.Pointer(&values[0]))
	}
	C.go_pds_set_int_array(s[0], C.int(cmd), s[1], ptr, C.size_t(len(values)))
}

func (e *Engine) SetString(label string, cmd engine.Command, object string, value string) {
	s, free := cStrings(label, object, value)
	defer free()
	// Длина передается явно, чтобы строка дошла байт в байт, включая нулевые байты.
	C.go_pds_set_string(s[0], C.int(cmd), s[1], s[2], C.size_t(len(value)))
}

func (e *Engine) DisconnectCable(label, cable string, end engine.End) {
	s, free := cStrings(label, cable)
	defer free()
	C.go_pds_disconnect_cable(s[0], s[1], C.int(end))
}

func (e *Engine) MakeDCableDCablePointConnection(label, cable, target string, end engine.End) {
	s, free := cStrings(label, cable, target)
	defer free()
	C.go_pds_make_dcable_point_connection(s[0], s[1], s[2], C.int(end))
}

func (e *Engine) SetCableEndNodeKinematicMode(label, cable string, end engine.End, kinematic bool) {
	s, free := cStrings(label, cable)
	defer free()
	C.go_pds_set_cable_end_node_kinematic_mode(s[0], s[1], C.int(end), cBool(kinematic))
}
