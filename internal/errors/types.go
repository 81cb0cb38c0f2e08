package errors

// Exit codes for the terminating error classes.
const (
	ExitCodeSuccess      = 0
	ExitCodeGenericError = 1
	ExitCodePrecondition = 2
	ExitCodeNetworkError = 3
	ExitCodeParseError   = 4
	ExitCodeInteractive  = 5
	ExitCodeFilesystem   = 6
)

// ExitCodeFor maps an error type to the process exit code.
func ExitCodeFor(errType ErrorType) int {
	switch errType {
	case ErrTypePrecondition:
		return ExitCodePrecondition
	case ErrTypeNetwork:
		return ExitCodeNetworkError
	case ErrTypeParse:
		return ExitCodeParseError
	case ErrTypeInteractive:
		return ExitCodeInteractive
	case ErrTypeFilesystem:
		return ExitCodeFilesystem
	default:
		return ExitCodeGenericError
	}
}
