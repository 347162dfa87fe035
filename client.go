package proteus

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/models"
	"github.com/iwtcode/proteusAdapter/pkg/errors"
	"github.com/sirupsen/logrus"
)

// InitOptions - два флага InitializeProteusDS, передаются движку без изменений.
type InitOptions struct {
	Verbose bool
	Batch   bool
}

// Client является основной точкой входа для взаимодействия с движком.
// Get-методы выделяют хранилище, передают его движку и возвращают результат
// по значению. Клиент не хранит состояния симуляций и ничего не кэширует.
type Client struct {
	engine engine.Engine
	config *Config
	logger *logrus.Logger
}

// NewLogger создает логгер по строковому уровню.
// "off" и "none" отключают вывод полностью.
func NewLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()

	if logLevel == "off" || logLevel == "none" {
		logger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stdout)
	}

	// Настраиваем форматтер с понятным форматом времени
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}

// New создает и возвращает новый экземпляр клиента поверх переданного движка.
func New(cfg *Config, eng engine.Engine) (*Client, error) {
	if eng == nil {
		return nil, fmt.Errorf("engine must not be nil")
	}
	if cfg == nil {
		cfg = Load()
	}

	return &Client{
		engine: eng,
		config: cfg,
		logger: NewLogger(cfg.LogLevel),
	}, nil
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger
}

// GetConfig возвращает конфигурацию клиента.
func (c *Client) GetConfig() *Config {
	return c.config
}

func (c *Client) trace(op, label string, cmd engine.Command, object string) {
	c.logger.WithFields(logrus.Fields{
		"label":   label,
		"command": cmd.String(),
		"object":  object,
	}).Trace(op)
}

// --- Жизненный цикл ---

// Initialize запускает симуляцию с параметрами командной строки движка.
func (c *Client) Initialize(label, args string, opts InitOptions) error {
	c.logger.WithFields(logrus.Fields{"label": label, "args": args}).Debug("Initialize")

	if !c.engine.Initialize(label, args, opts.Verbose, opts.Batch) {
		msg := c.GetErrorMessage(label)
		c.logger.WithFields(logrus.Fields{"label": label, "error": msg}).Warn("Initialize failed")
		if msg != "" {
			return fmt.Errorf("%w: %w", errors.ErrInitialize, errors.NewEngineError(label, msg))
		}
		return fmt.Errorf("%w: simulation %q", errors.ErrInitialize, label)
	}
	return nil
}

// AdvanceTime продвигает модельное время на dt. Проверяется только конечность dt;
// ноль и отрицательные значения передаются движку как есть.
func (c *Client) AdvanceTime(label string, dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		c.logger.WithFields(logrus.Fields{"label": label, "dt": dt}).Warn("AdvanceTime rejected")
		return fmt.Errorf("%w: dt=%v", errors.ErrNonFiniteStep, dt)
	}
	c.logger.WithFields(logrus.Fields{"label": label, "dt": dt}).Trace("AdvanceTime")
	c.engine.AdvanceTime(label, dt)
	return nil
}

// Close завершает симуляцию.
func (c *Client) Close(label string) {
	c.logger.WithField("label", label).Debug("Close")
	c.engine.Close(label)
}

// --- Get ---

// GetDouble возвращает скалярный атрибут или 0, если движок ничего не записал.
func (c *Client) GetDouble(label string, cmd engine.Command, object string) float64 {
	c.trace("GetDouble", label, cmd, object)
	var value float64
	c.engine.GetDouble(label, cmd, object, &value)
	return value
}

// GetInt возвращает целочисленный атрибут (C int движка) или 0, если движок ничего не записал.
func (c *Client) GetInt(label string, cmd engine.Command, object string) int32 {
	c.trace("GetInt", label, cmd, object)
	var value int32
	c.engine.GetInt(label, cmd, object, &value)
	return value
}

// GetDoubleArray возвращает ровно n значений. Узнать настоящую размерность
// атрибута адаптер не может, поэтому n задает вызывающий.
func (c *Client) GetDoubleArray(label string, cmd engine.Command, object string, n int) []float64 {
	c.trace("GetDoubleArray", label, cmd, object)
	values := make([]float64, max(n, 0))
	c.engine.GetDoubleArray(label, cmd, object, values)
	return values
}

// GetIntArray возвращает ровно n целых значений.
func (c *Client) GetIntArray(label string, cmd engine.Command, object string, n int) []int32 {
	c.trace("GetIntArray", label, cmd, object)
	values := make([]int32, max(n, 0))
	c.engine.GetIntArray(label, cmd, object, values)
	return values
}

// GetString возвращает строковый атрибут или пустую строку.
func (c *Client) GetString(label string, cmd engine.Command, object string) string {
	c.trace("GetString", label, cmd, object)
	var value string
	c.engine.GetString(label, cmd, object, &value)
	return value
}

// GetErrorMessage возвращает последнюю ошибку, записанную движком для метки.
func (c *Client) GetErrorMessage(label string) string {
	var message string
	c.engine.GetErrorMessage(label, &message)
	return message
}

// --- Set ---

func (c *Client) SetDouble(label string, cmd engine.Command, object string, value float64) {
	c.trace("SetDouble", label, cmd, object)
	c.engine.SetDouble(label, cmd, object, value)
}

func (c *Client) SetInt(label string, cmd engine.Command, object string, value int32) {
	c.trace("SetInt", label, cmd, object)
	c.engine.SetInt(label, cmd, object, value)
}

func (c *Client) SetDoubleArray(label string, cmd engine.Command, object string, values []float64) {
	c.trace("SetDoubleArray", label, cmd, object)
	c.engine.SetDoubleArray(label, cmd, object, values)
}

func (c *Client) SetIntArray(label string, cmd engine.Command, object string, values []int32) {
	c.trace("SetIntArray", label, cmd, object)
	c.engine.SetIntArray(label, cmd, object, values)
}

func (c *Client) SetString(label string, cmd engine.Command, object string, value string) {
	c.trace("SetString", label, cmd, object)
	c.engine.SetString(label, cmd, object, value)
}

// --- Экспериментальные команды топологии кабелей ---

func (c *Client) DisconnectCable(label, cable string, end engine.End) {
	c.logger.WithFields(logrus.Fields{"label": label, "cable": cable, "end": end}).Debug("DisconnectCable")
	c.engine.DisconnectCable(label, cable, end)
}

func (c *Client) MakeDCableDCablePointConnection(label, cable, target string, end engine.End) {
	c.logger.WithFields(logrus.Fields{"label": label, "cable": cable, "target": target, "end": end}).Debug("MakeDCableDCablePointConnection")
	c.engine.MakeDCableDCablePointConnection(label, cable, target, end)
}

func (c *Client) SetCableEndNodeKinematicMode(label, cable string, end engine.End, kinematic bool) {
	c.logger.WithFields(logrus.Fields{"label": label, "cable": cable, "end": end, "kinematic": kinematic}).Debug("SetCableEndNodeKinematicMode")
	c.engine.SetCableEndNodeKinematicMode(label, cable, end, kinematic)
}

// --- Вспомогательные методы ---

// LastError возвращает *errors.EngineError, если у метки есть записанная ошибка, иначе nil.
// Get-методы по-прежнему возвращают 0 или пустую строку при сбое; LastError позволяет
// отличить сбой от настоящего нулевого значения.
func (c *Client) LastError(label string) error {
	if engineErr := errors.NewEngineError(label, c.GetErrorMessage(label)); engineErr != nil {
		return engineErr
	}
	return nil
}

// Running сообщает, считает ли движок симуляцию запущенной.
func (c *Client) Running(label string) bool {
	return c.GetInt(label, engine.SimulationRunning, "") != 0
}

// DObjects возвращает объекты симуляции. Движок отдает имена и типы
// строками через запятую, каждая запись завершается запятой.
func (c *Client) DObjects(label string) ([]models.DObject, error) {
	names := splitList(c.GetString(label, engine.DObjectNames, ""))
	types := splitList(c.GetString(label, engine.DObjectTypes, ""))

	if len(names) != len(types) {
		return nil, fmt.Errorf("dobject names and types differ in length: %d != %d", len(names), len(types))
	}

	objects := make([]models.DObject, 0, len(names))
	for i := range names {
		objects = append(objects, models.DObject{Name: names[i], Type: types[i]})
	}
	return objects, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	// Последний элемент после завершающей запятой пустой.
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
