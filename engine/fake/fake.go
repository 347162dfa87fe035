// Package fake содержит движок в памяти, повторяющий поведение ProteusDSAPI
// на уровне контракта: значения хранятся по (метка, команда, объект),
// ошибки пишутся в канал последней ошибки и не меняют out-параметры.
package fake

import (
	"fmt"
	"sync"

	"github.com/iwtcode/proteusAdapter/engine"
)

// Version - строка версии, которую фейковый движок отдает по команде version.
const Version = "in-memory"

// Call - запись об одном вызове движка.
type Call struct {
	Method  string
	Label   string
	Command engine.Command
	Object  string
	Args    []any
}

type key struct {
	label  string
	cmd    engine.Command
	object string
}

type simulation struct {
	time    float64
	running bool
	lastErr string
}

// Engine - потокобезопасный фейковый движок.
type Engine struct {
	mu sync.Mutex

	doubles map[key][]float64
	ints    map[key][]int32
	strings map[key]string

	sims     map[string]*simulation
	failures map[key]string
	failNext string
	initOK   bool

	calls []Call
}

// Убедимся, что Engine удовлетворяет интерфейсу engine.Engine.
var _ engine.Engine = (*Engine)(nil)

// New создает пустой фейковый движок. Initialize по умолчанию завершается успешно.
func New() *Engine {
	return &Engine{
		doubles:  make(map[key][]float64),
		ints:     make(map[key][]int32),
		strings:  make(map[key]string),
		sims:     make(map[string]*simulation),
		failures: make(map[key]string),
		initOK:   true,
	}
}

// --- Настройка ---

// PutDoubles задает значения, которые вернут GetDouble/GetDoubleArray.
func (e *Engine) PutDoubles(label string, cmd engine.Command, object string, values ...float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doubles[key{label, cmd, object}] = append([]float64(nil), values...)
}

// PutInts задает значения, которые вернут GetInt/GetIntArray.
func (e *Engine) PutInts(label string, cmd engine.Command, object string, values ...int32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ints[key{label, cmd, object}] = append([]int32(nil), values...)
}

// PutString задает значение, которое вернет GetString.
func (e *Engine) PutString(label string, cmd engine.Command, object string, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.strings[key{label, cmd, object}] = value
}

// Fail заставляет каждый вызов с данной тройкой завершаться ошибкой msg.
func (e *Engine) Fail(label string, cmd engine.Command, object, msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[key{label, cmd, object}] = msg
}

// FailNext заставляет следующий Get/Set вызов завершиться ошибкой msg.
func (e *Engine) FailNext(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failNext = msg
}

// RecordError записывает ошибку в канал последней ошибки метки.
func (e *Engine) RecordError(label, msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sim(label).lastErr = msg
}

// SetInitializeResult задает результат Initialize.
func (e *Engine) SetInitializeResult(ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initOK = ok
}

// --- Наблюдение ---

// Calls возвращает копию журнала вызовов.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// CallsTo возвращает вызовы указанного метода.
func (e *Engine) CallsTo(method string) []Call {
	var out []Call
	for _, c := range e.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// SimTime возвращает модельное время метки.
func (e *Engine) SimTime(label string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sims[label]; ok {
		return s.time
	}
	return 0
}

// Running сообщает, запущена ли симуляция с данной меткой.
func (e *Engine) Running(label string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sims[label]
	return ok && s.running
}

// --- Внутреннее ---

func (e *Engine) sim(label string) *simulation {
	s, ok := e.sims[label]
	if !ok {
		s = &simulation{}
		e.sims[label] = s
	}
	return s
}

func (e *Engine) record(method, label string, cmd engine.Command, object string, args ...any) {
	e.calls = append(e.calls, Call{Method: method, Label: label, Command: cmd, Object: object, Args: args})
}

// failed проверяет инъекцию ошибок и записывает сообщение для метки.
func (e *Engine) failed(label string, cmd engine.Command, object string) bool {
	if e.failNext != "" {
		e.sim(label).lastErr = e.failNext
		e.failNext = ""
		return true
	}
	if msg, ok := e.failures[key{label, cmd, object}]; ok {
		e.sim(label).lastErr = msg
		return true
	}
	if !cmd.Valid() {
		e.sim(label).lastErr = fmt.Sprintf("unknown command %d", int32(cmd))
		return true
	}
	return false
}

// --- engine.Engine ---

func (e *Engine) Initialize(label, args string, verbose, batch bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Initialize", label, 0, "", args, verbose, batch)

	s := e.sim(label)
	if !e.initOK {
		s.lastErr = "failed to initialize simulation " + label
		return false
	}
	s.running = true
	s.time = 0
	return true
}

func (e *Engine) AdvanceTime(label string, dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("AdvanceTime", label, 0, "", dt)

	s := e.sim(label)
	if !s.running {
		s.lastErr = "simulation " + label + " is not running"
		return
	}
	s.time += dt
}

func (e *Engine) Close(label string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("Close", label, 0, "")
	e.sim(label).running = false
}

func (e *Engine) GetDouble(label string, cmd engine.Command, object string, out *float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetDouble", label, cmd, object)

	if e.failed(label, cmd, object) {
		return
	}
	if cmd == engine.Time {
		*out = e.sim(label).time
		return
	}
	if v, ok := e.doubles[key{label, cmd, object}]; ok && len(v) > 0 {
		*out = v[0]
	}
}

func (e *Engine) GetInt(label string, cmd engine.Command, object string, out *int32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetInt", label, cmd, object)

	if e.failed(label, cmd, object) {
		return
	}
	if cmd == engine.SimulationRunning {
		if e.sim(label).running {
			*out = 1
		} else {
			*out = 0
		}
		return
	}
	if v, ok := e.ints[key{label, cmd, object}]; ok && len(v) > 0 {
		*out = v[0]
	}
}

func (e *Engine) GetDoubleArray(label string, cmd engine.Command, object string, out []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetDoubleArray", label, cmd, object, len(out))

	if e.failed(label, cmd, object) {
		return
	}
	copy(out, e.doubles[key{label, cmd, object}])
}

func (e *Engine) GetIntArray(label string, cmd engine.Command, object string, out []int32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetIntArray", label, cmd, object, len(out))

	if e.failed(label, cmd, object) {
		return
	}
	copy(out, e.ints[key{label, cmd, object}])
}

func (e *Engine) GetString(label string, cmd engine.Command, object string, out *string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetString", label, cmd, object)

	if e.failed(label, cmd, object) {
		return
	}
	if v, ok := e.strings[key{label, cmd, object}]; ok {
		*out = v
		return
	}
	if cmd == engine.Version {
		*out = Version
	}
}

func (e *Engine) GetErrorMessage(label string, out *string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("GetErrorMessage", label, 0, "")

	if s, ok := e.sims[label]; ok {
		*out = s.lastErr
	}
}

func (e *Engine) SetDouble(label string, cmd engine.Command, object string, value float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetDouble", label, cmd, object, value)

	if e.failed(label, cmd, object) {
		return
	}
	e.doubles[key{label, cmd, object}] = []float64{value}
}

func (e *Engine) SetInt(label string, cmd engine.Command, object string, value int32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetInt", label, cmd, object, value)

	if e.failed(label, cmd, object) {
		return
	}
	e.ints[key{label, cmd, object}] = []int32{value}
}

func (e *Engine) SetDoubleArray(label string, cmd engine.Command, object string, values []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	stored := append([]float64(nil), values...)
	e.record("SetDoubleArray", label, cmd, object, stored)

	if e.failed(label, cmd, object) {
		return
	}
	e.doubles[key{label, cmd, object}] = stored
}

func (e *Engine) SetIntArray(label string, cmd engine.Command, object string, values []int32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	stored := append([]int32(nil), values...)
	e.record("SetIntArray", label, cmd, object, stored)

	if e.failed(label, cmd, object) {
		return
	}
	e.ints[key{label, cmd, object}] = stored
}

func (e *Engine) SetString(label string, cmd engine.Command, object string, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetString", label, cmd, object, value)

	if e.failed(label, cmd, object) {
		return
	}
	e.strings[key{label, cmd, object}] = value
}

func (e *Engine) DisconnectCable(label, cable string, end engine.End) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("DisconnectCable", label, 0, cable, end)
}

func (e *Engine) MakeDCableDCablePointConnection(label, cable, target string, end engine.End) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("MakeDCableDCablePointConnection", label, 0, cable, target, end)
}

func (e *Engine) SetCableEndNodeKinematicMode(label, cable string, end engine.End, kinematic bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.record("SetCableEndNodeKinematicMode", label, 0, cable, end, kinematic)
}
