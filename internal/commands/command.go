package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sandeepkv93/rxtrack/internal/model"
)

type Type string

const (
	TypeLog      Type = "log"
	TypeTemp     Type = "temp"
	TypeCheck    Type = "check"
	TypeShow     Type = "show"
	TypeCycle    Type = "cycle"
	TypeIncident Type = "incident"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Views are the screens show can switch to.
var Views = []string{"dashboard", "cleaning", "documents", "training", "safeguarding", "temperature", "rp"}

type LogArgs struct {
	Task  string
	Staff string
}

type TempArgs struct {
	Celsius float64
	Note    string
}

type CheckArgs struct {
	Item string
}

type ShowArgs struct {
	View string
}

type CycleArgs struct {
	Target string
}

// IncidentArgs leaves Type and Severity empty when not given so the
// recorder applies its defaults.
type IncidentArgs struct {
	Type        string
	Severity    string
	Description string
}

type Command struct {
	Type     Type
	Raw      string
	Log      *LogArgs
	Temp     *TempArgs
	Check    *CheckArgs
	Show     *ShowArgs
	Cycle    *CycleArgs
	Incident *IncidentArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeLog:
		return parseLog(input, args)
	case TypeTemp:
		return parseTemp(input, args)
	case TypeCheck:
		return parseCheck(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeCycle:
		return parseCycle(input, args)
	case TypeIncident:
		return parseIncident(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseLog reads "log <task name> [@staff]".
func parseLog(raw string, args []string) (Command, error) {
	name := make([]string, 0, len(args))
	staff := ""
	for _, arg := range args {
		if strings.HasPrefix(arg, "@") && len(arg) > 1 {
			staff = strings.TrimPrefix(arg, "@")
			continue
		}
		name = append(name, arg)
	}
	task := strings.TrimSpace(strings.Join(name, " "))
	if task == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "log requires a task name"}
	}
	return Command{Type: TypeLog, Raw: raw, Log: &LogArgs{Task: task, Staff: staff}}, nil
}

func parseTemp(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "temp requires a reading in °C"}
	}
	value := strings.TrimSuffix(strings.TrimSuffix(args[0], "C"), "°")
	c, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid temperature: %s", args[0])}
	}
	return Command{Type: TypeTemp, Raw: raw, Temp: &TempArgs{Celsius: c, Note: strings.Join(args[1:], " ")}}, nil
}

func parseCheck(raw string, args []string) (Command, error) {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "check requires a checklist item"}
	}
	item, ok := model.MatchRPItem(query)
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("no single checklist item matches %q", query)}
	}
	return Command{Type: TypeCheck, Raw: raw, Check: &CheckArgs{Item: item}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a view"}
	}
	view := strings.ToLower(args[0])
	for _, v := range Views {
		if v == view {
			return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{View: view}}, nil
		}
	}
	return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown view: %s", view)}
}

func parseCycle(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "cycle requires a training id"}
	}
	return Command{Type: TypeCycle, Raw: raw, Cycle: &CycleArgs{Target: args[0]}}, nil
}

// parseIncident reads "incident <description> [#type] [!severity]", for
// example "incident wrong strength picked #near-miss !high".
func parseIncident(raw string, args []string) (Command, error) {
	out := IncidentArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "#") && len(arg) > 1:
			t, err := model.ParseIncidentType(arg[1:])
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown incident type: %s", arg[1:])}
			}
			out.Type = string(t)
		case strings.HasPrefix(arg, "!") && len(arg) > 1:
			sev, err := model.ParseSeverity(arg[1:])
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown severity: %s", arg[1:])}
			}
			out.Severity = string(sev)
		default:
			words = append(words, arg)
		}
	}
	out.Description = strings.TrimSpace(strings.Join(words, " "))
	if out.Description == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "incident requires a description"}
	}
	return Command{Type: TypeIncident, Raw: raw, Incident: &out}, nil
}
