package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Start   func(IndexArgs) (Result, error)
	Toggle  func(IndexArgs) (Result, error)
	Delete  func(IndexArgs) (Result, error)
	Promote func(PromoteArgs) (Result, error)
	Pause   func() (Result, error)
	Reset   func() (Result, error)
	Clear   func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeStart:
		return runIndexed(cmd, handlers.Start)
	case TypeToggle:
		return runIndexed(cmd, handlers.Toggle)
	case TypeDelete:
		return runIndexed(cmd, handlers.Delete)
	case TypePromote:
		if handlers.Promote == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Promote(*cmd.Promote)
	case TypePause:
		return runBare(cmd, handlers.Pause)
	case TypeReset:
		return runBare(cmd, handlers.Reset)
	case TypeClear:
		return runBare(cmd, handlers.Clear)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func runIndexed(cmd Command, fn func(IndexArgs) (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(cmd.Type)
	}
	return fn(*cmd.Index)
}

func runBare(cmd Command, fn func() (Result, error)) (Result, error) {
	if fn == nil {
		return Result{}, missing(cmd.Type)
	}
	return fn()
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
