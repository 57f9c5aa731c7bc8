package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Log      func(LogArgs) (Result, error)
	Temp     func(TempArgs) (Result, error)
	Check    func(CheckArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
	Cycle    func(CycleArgs) (Result, error)
	Incident func(IncidentArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeLog:
		if handlers.Log == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Log(*cmd.Log)
	case TypeTemp:
		if handlers.Temp == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Temp(*cmd.Temp)
	case TypeCheck:
		if handlers.Check == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Check(*cmd.Check)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Show(*cmd.Show)
	case TypeCycle:
		if handlers.Cycle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Cycle(*cmd.Cycle)
	case TypeIncident:
		if handlers.Incident == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Incident(*cmd.Incident)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
