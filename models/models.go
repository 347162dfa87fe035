package models

import "time"

// DObject содержит имя и тип объекта симуляции (кабель, твердое тело и т.д.)
type DObject struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Sample содержит одно чтение атрибута на заданном модельном времени
type Sample struct {
	Label   string    `json:"label"`
	Time    float64   `json:"time"`
	Command string    `json:"command"`
	Object  string    `json:"object"`
	Values  []float64 `json:"values"`
}

// DamperState содержит состояние внешней модели демпфирования на одном шаге
type DamperState struct {
	Object   string  `json:"object"`
	Velocity float64 `json:"velocity"`
	Position float64 `json:"position"`
	Force    float64 `json:"force"`
}

// StepResult содержит результат одного шага прогона
type StepResult struct {
	Label     string        `json:"label"`
	Step      int           `json:"step"`
	Time      float64       `json:"time"`
	Timestamp time.Time     `json:"timestamp"`
	Samples   []Sample      `json:"samples"`
	Dampers   []DamperState `json:"dampers"`
	Err       error         `json:"-"`
}

// RunSummary содержит сводку завершенного прогона
type RunSummary struct {
	Label      string        `json:"label"`
	Steps      int           `json:"steps"`
	FinalTime  float64       `json:"final_time"`
	Samples    int           `json:"samples"`
	Warnings   int           `json:"warnings"`
	WallTime   time.Duration `json:"wall_time"`
	DObjects   []DObject     `json:"dobjects"`
	RecordedTo string        `json:"recorded_to,omitempty"`
}
