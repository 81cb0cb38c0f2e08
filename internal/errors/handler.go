package errors

import (
	"errors"
	"io"

	"github.com/fatih/color"
)

// Handler renders terminating errors for humans and picks the exit code.
type Handler struct {
	out io.Writer
}

// NewHandler creates a handler writing to out (normally stderr).
func NewHandler(out io.Writer) *Handler {
	return &Handler{out: out}
}

// Handle prints err with an optional suggestion and returns the exit code
// the process should terminate with.
func (h *Handler) Handle(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	errTitle := color.New(color.FgRed, color.Bold)
	hint := color.New(color.FgYellow)

	var ie *InstallError
	if errors.As(err, &ie) {
		_, _ = errTitle.Fprintf(h.out, "tfget: %s\n", ie.Error())
		suggestion := ie.Suggestion
		if suggestion == "" {
			suggestion = defaultSuggestion(ie.Type)
		}
		if suggestion != "" {
			_, _ = hint.Fprintf(h.out, "  %s\n", suggestion)
		}
		return ExitCodeFor(ie.Type)
	}

	_, _ = errTitle.Fprintf(h.out, "tfget: %v\n", err)
	return ExitCodeGenericError
}

func defaultSuggestion(errType ErrorType) string {
	switch errType {
	case ErrTypePrecondition:
		return "ensure HOME is set or terraform is reachable via PATH"
	case ErrTypeNetwork:
		return "check connectivity to releases.hashicorp.com and retry"
	case ErrTypeInteractive:
		return "run in an interactive terminal, or pass --install <version>"
	case ErrTypeFilesystem:
		return "check write permissions on the install directory"
	default:
		return ""
	}
}
