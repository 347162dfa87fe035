// Package runner проводит симуляцию по сценарию: на каждом шаге читает атрибуты,
// применяет внешние модели демпфирования и продвигает время. Все вызовы движка
// выполняются последовательно из одной горутины.
package runner

import (
	"context"
	"fmt"
	"time"

	proteus "github.com/iwtcode/proteusAdapter"
	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/models"
	"github.com/iwtcode/proteusAdapter/pkg/errors"
	"github.com/iwtcode/proteusAdapter/scenario"
	"github.com/sirupsen/logrus"
)

// Sink принимает результаты шагов (например, recorder.Recorder).
type Sink interface {
	Write(result *models.StepResult) error
}

// SinkFunc позволяет использовать функцию как Sink.
type SinkFunc func(result *models.StepResult) error

func (f SinkFunc) Write(result *models.StepResult) error { return f(result) }

// Runner выполняет сценарий поверх клиента.
type Runner struct {
	client   *proteus.Client
	scenario *scenario.Scenario
	logger   *logrus.Logger

	lastErrMsg string
}

// New создает Runner. Сценарий должен быть проверен (scenario.Validate).
func New(client *proteus.Client, sc *scenario.Scenario) *Runner {
	return &Runner{
		client:   client,
		scenario: sc,
		logger:   client.GetLogger(),
	}
}

// Run инициализирует симуляцию, выполняет все шаги и закрывает ее.
// Прогон прекращается при отмене контекста; закрытие симуляции выполняется в любом случае.
func (r *Runner) Run(ctx context.Context, sink Sink) (*models.RunSummary, error) {
	sc := r.scenario
	label := sc.Label
	started := time.Now()

	if err := r.client.Initialize(label, sc.Args, proteus.InitOptions{Verbose: sc.Verbose, Batch: sc.Batch}); err != nil {
		return nil, err
	}
	defer r.client.Close(label)
	r.lastErrMsg = ""

	if err := r.client.AdvanceTime(label, 0); err != nil {
		return nil, err
	}

	summary := &models.RunSummary{Label: label}

	objects, err := r.client.DObjects(label)
	if err != nil {
		r.logger.Warnf("Не удалось получить список объектов: %v", err)
	}
	summary.DObjects = objects
	for _, o := range objects {
		r.logger.WithFields(logrus.Fields{"type": o.Type, "name": o.Name}).Info("DObject")
	}

	steps := sc.Steps()
	r.logger.WithFields(logrus.Fields{"label": label, "steps": steps, "dt": sc.Step}).Info("Запуск прогона")

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			r.logger.Info("Прогон остановлен из-за отмены контекста.")
			summary.WallTime = time.Since(started)
			return summary, ctx.Err()
		default:
		}

		result, err := r.Step(i)
		if err != nil {
			summary.WallTime = time.Since(started)
			return summary, fmt.Errorf("step %d: %w", i, err)
		}

		summary.Steps++
		summary.Samples += len(result.Samples)
		summary.FinalTime = result.Time
		if result.Err != nil {
			summary.Warnings++
		}

		if sink != nil {
			if err := sink.Write(result); err != nil {
				summary.WallTime = time.Since(started)
				return summary, fmt.Errorf("failed to write step %d: %w", i, err)
			}
		}
	}

	summary.FinalTime = r.client.GetDouble(label, engine.Time, "")
	summary.WallTime = time.Since(started)
	r.logger.WithFields(logrus.Fields{
		"label":      label,
		"steps":      summary.Steps,
		"final_time": summary.FinalTime,
		"warnings":   summary.Warnings,
	}).Info("Прогон завершен")

	return summary, nil
}

// Step выполняет один шаг: чтение атрибутов, демпферы, продвижение времени.
// Новая ошибка движка попадает в StepResult.Err и не прерывает прогон.
func (r *Runner) Step(i int) (*models.StepResult, error) {
	sc := r.scenario
	label := sc.Label

	simTime := r.client.GetDouble(label, engine.Time, "")
	result := &models.StepResult{
		Label:     label,
		Step:      i,
		Time:      simTime,
		Timestamp: time.Now().UTC(),
		Samples:   make([]models.Sample, 0, len(sc.Probes)),
	}

	for _, p := range sc.Probes {
		result.Samples = append(result.Samples, r.readProbe(label, simTime, p))
	}

	for _, d := range sc.Dampers {
		result.Dampers = append(result.Dampers, r.applyDamper(label, d))
	}

	if engineErr := r.newEngineError(label); engineErr != nil {
		r.logger.WithFields(logrus.Fields{"label": label, "step": i}).Warnf("Ошибка движка: %s", engineErr.Message)
		result.Err = engineErr
	}

	if err := r.client.AdvanceTime(label, sc.Step); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Runner) readProbe(label string, simTime float64, p scenario.Probe) models.Sample {
	var values []float64
	if p.Count == 0 {
		values = []float64{r.client.GetDouble(label, p.Cmd(), p.Object)}
	} else {
		values = r.client.GetDoubleArray(label, p.Cmd(), p.Object, p.Count)
	}
	return models.Sample{
		Label:   label,
		Time:    simTime,
		Command: p.Cmd().String(),
		Object:  p.Object,
		Values:  values,
	}
}

// applyDamper читает состояние шарнира (скорость в [0], положение в [1]),
// очищает накопитель сил и добавляет силу демпфирования.
func (r *Runner) applyDamper(label string, d scenario.Damper) models.DamperState {
	state := r.client.GetDoubleArray(label, engine.State, d.Object, 2)
	velocity, position := state[0], state[1]
	force := -d.Coefficient * velocity

	r.client.SetInt(label, engine.RigidBodyClearForcesMoments, d.Object, 1)
	r.client.SetDoubleArray(label, engine.RigidBodyJointForceAndDeriv, d.Object, []float64{force, 0})

	return models.DamperState{
		Object:   d.Object,
		Velocity: velocity,
		Position: position,
		Force:    force,
	}
}

// newEngineError возвращает ошибку движка, только если ее текст изменился с прошлого шага:
// движок хранит последнюю ошибку, а не очередь.
func (r *Runner) newEngineError(label string) *errors.EngineError {
	msg := r.client.GetErrorMessage(label)
	if msg == "" || msg == r.lastErrMsg {
		return nil
	}
	r.lastErrMsg = msg
	return errors.NewEngineError(label, msg)
}

// Start запускает прогон в фоне и возвращает канал результатов шагов.
// Канал закрывается по завершении прогона или при отмене контекста; фатальная
// ошибка прогона приходит последним элементом с заполненным Err.
func (r *Runner) Start(ctx context.Context) <-chan models.StepResult {
	resultsChan := make(chan models.StepResult)

	go func() {
		defer close(resultsChan)

		sink := SinkFunc(func(result *models.StepResult) error {
			select {
			case resultsChan <- *result:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})

		if _, err := r.Run(ctx, sink); err != nil && ctx.Err() == nil {
			select {
			case resultsChan <- models.StepResult{Label: r.scenario.Label, Err: err}:
			case <-ctx.Done():
			}
		}
	}()

	return resultsChan
}
