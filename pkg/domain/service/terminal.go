package service

import "strings"

type Event interface{ Type() string }
type EventDispatcher interface{ Dispatch(event Event) error }

type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

// Terminal is the presentation boundary. Services hand it structured data only.
type Terminal interface {
	PromptLine(label string) (string, error)
	RenderTable(title string, columns []string, rows [][]string)
	RenderMessage(severity Severity, text string)
	RenderBanner(text string)
}

func prompt(terminal Terminal, label string) (string, error) {
	line, err := terminal.PromptLine(label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func confirmed(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
