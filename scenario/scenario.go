// Package scenario загружает YAML-описание прогона: параметры запуска движка,
// шаг времени, список атрибутов для чтения и внешние модели демпфирования.
package scenario

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MaxSteps - наибольшее число шагов одного прогона.
const MaxSteps = math.MaxInt32

// Probe описывает атрибут, который читается на каждом шаге.
// Count = 0 означает скалярный GetDouble, иначе GetDoubleArray на Count элементов.
type Probe struct {
	Command string `yaml:"command"`
	Object  string `yaml:"object"`
	Count   int    `yaml:"count"`

	cmd engine.Command
}

// Cmd возвращает разобранный код команды. Действителен после Validate.
func (p Probe) Cmd() engine.Command {
	return p.cmd
}

// Damper - внешняя модель вязкого демпфирования для шарнира призматического тела.
// Сила F = -Coefficient * v, где v берется из state[0] объекта.
type Damper struct {
	Object      string  `yaml:"object"`
	Coefficient float64 `yaml:"coefficient"`
}

// Scenario - описание одного прогона.
type Scenario struct {
	Label    string   `yaml:"label"`
	Args     string   `yaml:"args"`
	Verbose  bool     `yaml:"verbose"`
	Batch    bool     `yaml:"batch"`
	Step     float64  `yaml:"step"`
	Duration float64  `yaml:"duration"`
	Probes   []Probe  `yaml:"probes"`
	Dampers  []Damper `yaml:"dampers"`
}

// Load читает и проверяет сценарий из файла.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает и проверяет сценарий. Пустая метка заменяется сгенерированной.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{Batch: true}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate проверяет поля сценария и разбирает имена команд.
func (s *Scenario) Validate() error {
	if strings.TrimSpace(s.Label) == "" {
		s.Label = NewLabel()
	}
	if math.IsNaN(s.Step) || math.IsInf(s.Step, 0) || s.Step <= 0 {
		return fmt.Errorf("%w: step must be finite and positive, got %v", errors.ErrInvalidScenario, s.Step)
	}
	if math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) || s.Duration < 0 {
		return fmt.Errorf("%w: duration must be finite and non-negative, got %v", errors.ErrInvalidScenario, s.Duration)
	}
	if steps := s.Duration/s.Step + 1e-9; steps > MaxSteps {
		return fmt.Errorf("%w: duration %v with step %v gives %.4g steps, limit is %d", errors.ErrInvalidScenario, s.Duration, s.Step, steps, MaxSteps)
	}

	for i := range s.Probes {
		p := &s.Probes[i]
		cmd, err := engine.ParseCommand(p.Command)
		if err != nil {
			return fmt.Errorf("%w: probe #%d: %w", errors.ErrInvalidScenario, i+1, err)
		}
		if p.Count < 0 {
			return fmt.Errorf("%w: probe #%d (%s): count must be non-negative", errors.ErrInvalidScenario, i+1, p.Command)
		}
		p.cmd = cmd
	}

	for i, d := range s.Dampers {
		if d.Object == "" {
			return fmt.Errorf("%w: damper #%d: object is required", errors.ErrInvalidScenario, i+1)
		}
		if math.IsNaN(d.Coefficient) || math.IsInf(d.Coefficient, 0) {
			return fmt.Errorf("%w: damper #%d (%s): coefficient must be finite", errors.ErrInvalidScenario, i+1, d.Object)
		}
	}
	return nil
}

// Steps возвращает количество шагов, укладывающихся в Duration, не больше MaxSteps.
func (s *Scenario) Steps() int {
	if !(s.Step > 0) || !(s.Duration > 0) {
		return 0
	}
	// Небольшой допуск, чтобы 20 / (1/60) давало 1200, а не 1199.
	steps := math.Floor(s.Duration/s.Step + 1e-9)
	if steps > MaxSteps {
		return MaxSteps
	}
	return int(steps)
}

// NewLabel генерирует уникальную метку симуляции.
func NewLabel() string {
	return "sim-" + uuid.NewString()
}
