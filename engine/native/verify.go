// Package native реализует engine.Engine поверх закрытой библиотеки ProteusDSAPI через cgo.
//
// Привязка собирается только с тегом proteusds: заголовки ProteusDSAPI.h и PDSAPI.h
// кладутся в include/, библиотека - в lib/. Без тега в пакете остаются только
// чистые функции сверки таблицы команд и копирования результатов.
package native

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/pkg/errors"
)

// verify сравнивает перечисление engine.Command с таблицей (имя, значение) из заголовка.
// Сообщает о каждом расхождении: нет в заголовке, другое значение, лишний член заголовка.
func verify(header map[string]int32) error {
	var mismatches []string

	known := make(map[string]bool, len(engine.Commands()))
	for _, cmd := range engine.Commands() {
		name := cmd.String()
		known[name] = true

		value, ok := header[name]
		switch {
		case !ok:
			mismatches = append(mismatches, fmt.Sprintf("%s: missing in header", name))
		case value != int32(cmd):
			mismatches = append(mismatches, fmt.Sprintf("%s: go=%d header=%d", name, int32(cmd), value))
		}
	}

	var extra []string
	for name := range header {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		mismatches = append(mismatches, fmt.Sprintf("%s: missing in go (header=%d)", name, header[name]))
	}

	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %s", errors.ErrCommandMismatch, strings.Join(mismatches, "; "))
	}
	return nil
}

// copyDoubles копирует результат движка в буфер вызывающего: не больше len(out)
// элементов, хвост out остается нулевым, если движок вернул меньше.
func copyDoubles(out []float64, p unsafe.Pointer, n int) int {
	if p == nil || n <= 0 {
		return 0
	}
	return copy(out, unsafe.Slice((*float64)(p), n))
}

// copyInt32s - то же для целых: C int движка имеет ширину int32.
func copyInt32s(out []int32, p unsafe.Pointer, n int) int {
	if p == nil || n <= 0 {
		return 0
	}
	return copy(out, unsafe.Slice((*int32)(p), n))
}

// bytesToString копирует n байт, включая нулевые, в строку Go.
func bytesToString(p unsafe.Pointer, n int) string {
	if p == nil || n <= 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(p), n))
}
