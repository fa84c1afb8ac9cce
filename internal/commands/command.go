package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeStart   Type = "start"
	TypeToggle  Type = "toggle"
	TypeDelete  Type = "delete"
	TypePromote Type = "promote"
	TypePause   Type = "pause"
	TypeReset   Type = "reset"
	TypeClear   Type = "clear"
)

// Types lists every command in palette order.
var Types = []Type{TypeAdd, TypeStart, TypeToggle, TypeDelete, TypePromote, TypePause, TypeReset, TypeClear}

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

type AddArgs struct {
	Text string
}

// IndexArgs holds a zero-based task index parsed from the one-based
// position shown in the task list.
type IndexArgs struct {
	Index int
}

// PromoteArgs selects a transcript message; Latest means the newest
// promotable bot reply.
type PromoteArgs struct {
	Index  int
	Latest bool
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Index   *IndexArgs
	Promote *PromoteArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeStart, TypeToggle, TypeDelete:
		return parseIndexed(input, Type(head), args)
	case TypePromote:
		return parsePromote(input, args)
	case TypePause, TypeReset, TypeClear:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

func parseIndexed(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task number", typ)}
	}
	idx, err := parsePosition(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Index: &IndexArgs{Index: idx}}, nil
}

func parsePromote(raw string, args []string) (Command, error) {
	switch len(args) {
	case 0:
		return Command{Type: TypePromote, Raw: raw, Promote: &PromoteArgs{Latest: true}}, nil
	case 1:
		idx, err := parsePosition(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypePromote, Raw: raw, Promote: &PromoteArgs{Index: idx}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "promote takes at most one message number"}
	}
}

func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("not a position: %q", arg)}
	}
	return n - 1, nil
}
