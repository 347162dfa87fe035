package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrNonFiniteStep   = errors.New("time step must be finite")
	ErrInitialize      = errors.New("simulation initialization failed")
	ErrCommandMismatch = errors.New("command table does not match engine header")
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrEngineUnavailable возвращается, если бинарник собран без тега proteusds.
	ErrEngineUnavailable = errors.New("ProteusDS engine not compiled in (build with -tags proteusds)")
)

// EngineError - последнее сообщение об ошибке, записанное движком для метки симуляции.
// Адаптер не разбирает и не классифицирует текст, он передается как есть.
type EngineError struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (e *EngineError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("engine error for simulation %q: %s", e.Label, e.Message)
}

// NewEngineError создает EngineError или возвращает nil, если сообщение пустое.
func NewEngineError(label, message string) *EngineError {
	if message == "" {
		return nil
	}
	return &EngineError{Label: label, Message: message}
}

// AsEngineError извлекает EngineError из цепочки ошибок.
func AsEngineError(err error) (*EngineError, bool) {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr, true
	}
	return nil, false
}
