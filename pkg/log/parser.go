// Package log parses the program log lines returned by transaction
// simulation, so a failed swap can be reported by program and error code.
//
//	if failure, ok := log.FindFailure(result.Logs); ok {
//	    fmt.Println(failure.ProgramID, failure.Reason)
//	}
package log

import (
	"encoding/base64"
	"regexp"
	"strconv"
)

// Kind classifies one log line.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvoke
	KindSuccess
	KindFailed
	KindLog
	KindData
	KindConsumed
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindInvoke:
		return "invoke"
	case KindSuccess:
		return "success"
	case KindFailed:
		return "failed"
	case KindLog:
		return "log"
	case KindData:
		return "data"
	case KindConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Entry is one parsed log line.
type Entry struct {
	Kind Kind

	// ProgramID is set for invoke, success, failed and consumed lines.
	ProgramID string

	// Depth is the invoke stack height, 1 for top-level instructions.
	Depth int

	// Message holds the text of "Program log:" lines and the reason of failed lines.
	Message string

	// Data is the decoded payload of "Program data:" lines.
	Data []byte

	// Consumed and Limit are set for compute unit lines.
	Consumed uint64
	Limit    uint64

	Raw string
}

var (
	invokeRe   = regexp.MustCompile(`^Program (\S+) invoke \[(\d+)\]$`)
	successRe  = regexp.MustCompile(`^Program (\S+) success$`)
	failedRe   = regexp.MustCompile(`^Program (\S+) failed: (.+)$`)
	logRe      = regexp.MustCompile(`^Program log: (.*)$`)
	dataRe     = regexp.MustCompile(`^Program data: (.+)$`)
	consumedRe = regexp.MustCompile(`^Program (\S+) consumed (\d+) of (\d+) compute units$`)
	customRe   = regexp.MustCompile(`custom program error: (0x[0-9a-fA-F]+|\d+)`)
)

// Parse classifies a single log line.
func Parse(line string) Entry {
	e := Entry{Raw: line}

	if m := invokeRe.FindStringSubmatch(line); m != nil {
		e.Kind = KindInvoke
		e.ProgramID = m[1]
		e.Depth, _ = strconv.Atoi(m[2])
		return e
	}
	if m := successRe.FindStringSubmatch(line); m != nil {
		e.Kind = KindSuccess
		e.ProgramID = m[1]
		return e
	}
	if m := failedRe.FindStringSubmatch(line); m != nil {
		e.Kind = KindFailed
		e.ProgramID = m[1]
		e.Message = m[2]
		return e
	}
	if m := consumedRe.FindStringSubmatch(line); m != nil {
		e.Kind = KindConsumed
		e.ProgramID = m[1]
		e.Consumed, _ = strconv.ParseUint(m[2], 10, 64)
		e.Limit, _ = strconv.ParseUint(m[3], 10, 64)
		return e
	}
	if m := logRe.FindStringSubmatch(line); m != nil {
		e.Kind = KindLog
		e.Message = m[1]
		return e
	}
	if m := dataRe.FindStringSubmatch(line); m != nil {
		e.Kind = KindData
		e.Data, _ = base64.StdEncoding.DecodeString(m[1])
		return e
	}
	return e
}

// ParseAll parses every line.
func ParseAll(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, Parse(line))
	}
	return entries
}

// Failure is the innermost program failure found in a log.
type Failure struct {
	ProgramID string
	Reason    string

	// CustomCode is set when Reason is an Anchor or program custom error.
	CustomCode *uint32

	// Logs are the "Program log:" messages the failing program emitted.
	Logs []string
}

// FindFailure returns the first failed line, which is the innermost
// failing program, together with the messages it logged.
func FindFailure(lines []string) (Failure, bool) {
	var stack []string
	messages := make(map[string][]string)

	for _, e := range ParseAll(lines) {
		switch e.Kind {
		case KindInvoke:
			stack = append(stack, e.ProgramID)
		case KindSuccess:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case KindLog:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				messages[top] = append(messages[top], e.Message)
			}
		case KindFailed:
			f := Failure{ProgramID: e.ProgramID, Reason: e.Message, Logs: messages[e.ProgramID]}
			if m := customRe.FindStringSubmatch(e.Message); m != nil {
				if code, err := strconv.ParseUint(m[1], 0, 32); err == nil {
					c := uint32(code)
					f.CustomCode = &c
				}
			}
			return f, true
		}
	}
	return Failure{}, false
}

// ComputeUnits sums the compute units each program reported consuming.
func ComputeUnits(lines []string) map[string]uint64 {
	units := make(map[string]uint64)
	for _, line := range lines {
		if e := Parse(line); e.Kind == KindConsumed {
			units[e.ProgramID] += e.Consumed
		}
	}
	return units
}
