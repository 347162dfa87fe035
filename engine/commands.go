package engine

import (
	"fmt"
	"strings"

	"github.com/iwtcode/proteusAdapter/pkg/errors"
)

// Command - код атрибута симуляции, передаваемый в Get*/Set* вызовы движка.
// Значения повторяют порядок объявления PDSAPI::PDSAPI во внешнем заголовке
// и не должны перенумеровываться на стороне Go.
type Command int32

const (
	// Общие параметры
	State Command = iota
	StateSize
	Time
	SimulationRunning
	LicenseInfo
	FileOutputOn
	FileOutputOff

	// Параметры симуляции
	NumberOfDObjects
	DObjectNames
	DObjectTypes
	Version
	OutputRestartPath

	// Параметры окружения
	EnvironmentWaveReferenceHeight
	EnvironmentWaveReferencePeriod
	EnvironmentWaveReferenceHeading
	EnvironmentWaveType
	EnvironmentWaveSegments
	EnvironmentWaveSeed
	EnvironmentTransitionTime
	EnvironmentTransitionRampTime
	EnvironmentCurrentProfileDepth
	EnvironmentCurrentProfileSpeed
	EnvironmentCurrentProfileHeading
	EnvironmentSeaHeight

	// Параметры кабеля
	CableTensions
	CableTensionNumberOfSamplePoints
	CableNumberOfElements
	CableNumberOfNodes
	CableBendingRadiusNumberOfSamplePoints
	CableBendingRadius
	CablePayoutSpeedNodeN
	CablePayoutSpeedNode0
	CablePositionNodeN
	CablePositionNode0
	CableVelocityNodeN
	CableVelocityNode0
	CableNodeNClamped
	CableP1NodeN
	CableP2NodeN
	CableNode0Clamped
	CableP1Node0
	CableP2Node0
	CableTanNode0
	CableTanNodeN
	CableVonMisesNumberOfSamplePoints
	CableTemperaturesNumberOfSamplePoints
	CableVonMisesStress
	CableVonMisesRGB
	CableVonMisesRGBMinStress
	CableVonMisesRGBMaxStress
	CableVonMisesNumberOfRadialSamplePoints
	CableTemperatures
	CableTemperaturesRGB
	CableTemperaturesRGBMinTemp
	CableTemperaturesRGBMaxTemp
	CablePositionsNumberOfSamplePoints
	CablePositions
	CableNode0ReactionLoad
	CableNodeNReactionLoad
	CableNode0AverageReactionLoad
	CableNodeNAverageReactionLoad
	CableFlexuralStressNumberOfSamplePoints
	CableFlexuralStress
	CableLength

	// Параметры твердого тела
	RigidBodyPosition
	RigidBodyVelocityGlobal
	RigidBodyVelocityBody
	RigidBodyAccelerationGlobal
	RigidBodyAccelerationBody
	RigidBodyAngularAccelerationBody
	RigidBodyOrientation
	RigidBodyAngularVelocityBody
	RigidBodyMooringLoads
	RigidBodyForceKinControl
	RigidBodyState
	RigidBodyForceAndDerivGlobal
	RigidBodyForceAndDerivBody
	RigidBodyMomentAndDerivGlobal
	RigidBodyMomentAndDerivBody
	RigidBodyJointForceAndDeriv
	RigidBodyClearForcesMoments
	RigidBodyThrusterRPMSetpoint
	RigidBodyThrusterAzimuthSetpoint

	// Режим RAO
	RigidBodyRAOHeading
	RigidBodyRAOHeadingSpeedDegreesPerSecond
	RigidBodyRAOPositionNorth
	RigidBodyRAOPositionEast
	RigidBodyRAOSpeedNorth
	RigidBodyRAOSpeedEast
	RigidBodyRAOForwardSpeed
	RigidBodyRelativeFluidVelocityProbes
	RigidBodyAbsFluidVelocityProbes

	// Контроллер движения DCable (экспериментальный)
	DCableMovementControllerSetPoint
	DCableMovementControllerMaxControlForce
	DCableMovementControllerOn
	DCableMovementControllerArclength
	DCableMovementControllerTargetVelocity
	DCableMovementControllerSetPointRelative
	DCableMovementControllerDCablePosition
	DCableMovementControllerVelocityControlOn

	commandCount
)

// Группы атрибутов
const (
	GroupGeneral     = "general"
	GroupSimulation  = "simulation"
	GroupEnvironment = "environment"
	GroupCable       = "cable"
	GroupRigidBody   = "rigid_body"
	GroupRAO         = "rao"
	GroupDCable      = "dcable_controller"
)

// commandNames хранит написание членов так, как они объявлены в заголовке движка.
var commandNames = [commandCount]string{
	"state",
	"stateSize",
	"time",
	"simulationRunning",
	"licenseInfo",
	"fileOutputOn",
	"fileOutputOff",

	"numberOfDObjects",
	"dObjectNames",
	"dObjectTypes",
	"version",
	"outputRestartPath",

	"environmentWaveReferenceHeight",
	"environmentWaveReferencePeriod",
	"environmentWaveReferenceHeading",
	"environmentWaveType",
	"environmentWaveSegments",
	"environmentWaveSeed",
	"environmentTransitionTime",
	"environmentTransitionRampTime",
	"environmentCurrentProfileDepth",
	"environmentCurrentProfileSpeed",
	"environmentCurrentProfileHeading",
	"environmentSeaHeight",

	"cableTensions",
	"cableTensionNumberOfSamplePoints",
	"cableNumberOfElements",
	"cableNumberOfNodes",
	"cableBendingRadiusNumberOfSamplePoints",
	"cableBendingRadius",
	"cablePayoutSpeedNodeN",
	"cablePayoutSpeedNode0",
	"cablePositionNodeN",
	"cablePositionNode0",
	"cableVelocityNodeN",
	"cableVelocityNode0",
	"cableNodeNClamped",
	"cableP1NodeN",
	"cableP2NodeN",
	"cableNode0Clamped",
	"cableP1Node0",
	"cableP2Node0",
	"cableTanNode0",
	"cableTanNodeN",
	"cableVonMisesNumberOfSamplePoints",
	"cableTemperaturesNumberOfSamplePoints",
	"cableVonMisesStress",
	"cableVonMisesRGB",
	"cableVonMisesRGBMinStress",
	"cableVonMisesRGBMaxStress",
	"cableVonMisesNumberOfRadialSamplePoints",
	"cableTemperatures",
	"cableTemperaturesRGB",
	"cableTemperaturesRGBMinTemp",
	"cableTemperaturesRGBMaxTemp",
	"cablePositionsNumberOfSamplePoints",
	"cablePositions",
	"cableNode0ReactionLoad",
	"cableNodeNReactionLoad",
	"cableNode0AverageReactionLoad",
	"cableNodeNAverageReactionLoad",
	"cableFlexuralStressNumberOfSamplePoints",
	"cableFlexuralStress",
	"cableLength",

	"rigidBodyPosition",
	"rigidBodyVelocityGlobal",
	"rigidBodyVelocityBody",
	"rigidBodyAccelerationGlobal",
	"rigidBodyAccelerationBody",
	"rigidBodyAngularAccelerationBody",
	"rigidBodyOrientation",
	"rigidBodyAngularVelocityBody",
	"rigidBodyMooringLoads",
	"rigidBodyForceKinControl",
	"rigidBodyState",
	"rigidBodyForceAndDerivGlobal",
	"rigidBodyForceAndDerivBody",
	"rigidBodyMomentAndDerivGlobal",
	"rigidBodyMomentAndDerivBody",
	"rigidBodyJointForceAndDeriv",
	"rigidBodyClearForcesMoments",
	"rigidBodyThrusterRPMSetpoint",
	"rigidBodyThrusterAzimuthSetpoint",

	"rigidBodyRAOHeading",
	"rigidBodyRAOHeadingSpeedDegreesPerSecond",
	"rigidBodyRAOPositionNorth",
	"rigidBodyRAOPositionEast",
	"rigidBodyRAOSpeedNorth",
	"rigidBodyRAOSpeedEast",
	"rigidBodyRAOForwardSpeed",
	"rigidBodyRelativeFluidVelocityProbes",
	"rigidBodyAbsFluidVelocityProbes",

	"dCableMovementControllerSetPoint",
	"dCableMovementControllerMaxControlForce",
	"dCableMovementControllerOn",
	"dCableMovementControllerArclength",
	"dCableMovementControllerTargetVelocity",
	"dCableMovementControllerSetPointRelative",
	"dCableMovementControllerDCablePosition",
	"dCableMovementControllerVelocityControlOn",
}

var commandsByName = func() map[string]Command {
	m := make(map[string]Command, commandCount)
	for i, name := range commandNames {
		m[name] = Command(i)
	}
	return m
}()

// Valid сообщает, входит ли код в перечисление.
func (c Command) Valid() bool {
	return c >= 0 && c < commandCount
}

// String возвращает имя члена перечисления в написании заголовка.
func (c Command) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Command(%d)", int32(c))
	}
	return commandNames[c]
}

// Group возвращает подсистему, к которой относится атрибут.
func (c Command) Group() string {
	switch {
	case c < State || c >= commandCount:
		return ""
	case c <= FileOutputOff:
		return GroupGeneral
	case c <= OutputRestartPath:
		return GroupSimulation
	case c <= EnvironmentSeaHeight:
		return GroupEnvironment
	case c <= CableLength:
		return GroupCable
	case c <= RigidBodyThrusterAzimuthSetpoint:
		return GroupRigidBody
	case c <= RigidBodyAbsFluidVelocityProbes:
		return GroupRAO
	default:
		return GroupDCable
	}
}

// Commands возвращает все члены перечисления в порядке их значений.
func Commands() []Command {
	out := make([]Command, commandCount)
	for i := range out {
		out[i] = Command(i)
	}
	return out
}

// ParseCommand находит код по имени. Допускается имя как в заголовке
// ("rigidBodyState"), так и имя Go-константы ("RigidBodyState").
func ParseCommand(name string) (Command, error) {
	name = strings.TrimSpace(name)
	if c, ok := commandsByName[name]; ok {
		return c, nil
	}
	if name != "" {
		lowered := strings.ToLower(name[:1]) + name[1:]
		if c, ok := commandsByName[lowered]; ok {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errors.ErrUnknownCommand, name)
}
