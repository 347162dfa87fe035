package engine

// End выбирает конец кабеля для экспериментальных команд топологии.
type End int32

const (
	Node0 End = iota
	NodeN
)

func (e End) String() string {
	if e == NodeN {
		return "nodeN"
	}
	return "node0"
}

// Engine повторяет C++ интерфейс ProteusDSAPI один к одному.
// Get-методы следуют соглашению out-параметров: вызывающий передает
// заранее подготовленное хранилище, движок его заполняет. При ошибке
// движок может ничего не записать, а текст ошибки становится доступен
// через GetErrorMessage.
//
// Целые значения имеют ширину C int движка (int32), поэтому передаются без усечения.
//
// Реализации: native (cgo, libProteusDSAPI) и fake (в памяти, для тестов).
type Engine interface {
	Initialize(label, args string, verbose, batch bool) bool
	AdvanceTime(label string, dt float64)
	Close(label string)

	GetDouble(label string, cmd Command, object string, out *float64)
	GetInt(label string, cmd Command, object string, out *int32)
	GetDoubleArray(label string, cmd Command, object string, out []float64)
	GetIntArray(label string, cmd Command, object string, out []int32)
	GetString(label string, cmd Command, object string, out *string)
	GetErrorMessage(label string, out *string)

	SetDouble(label string, cmd Command, object string, value float64)
	SetInt(label string, cmd Command, object string, value int32)
	SetDoubleArray(label string, cmd Command, object string, values []float64)
	SetIntArray(label string, cmd Command, object string, values []int32)
	SetString(label string, cmd Command, object string, value string)

	DisconnectCable(label, cable string, end End)
	MakeDCableDCablePointConnection(label, cable, target string, end End)
	SetCableEndNodeKinematicMode(label, cable string, end End, kinematic bool)
}
