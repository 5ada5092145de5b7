package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	feedpkg "github.com/odysseus0/rssfeed/internal/fetch"
	"github.com/odysseus0/rssfeed/internal/model"
	"github.com/odysseus0/rssfeed/internal/store"
)

const (
	exitInternal     = 1
	exitInvalidInput = 2
	exitDuplicate    = 3
	exitFetch        = 4
)

func isFetchError(err error) bool {
	var statusErr *feedpkg.StatusError
	var connErr *feedpkg.ConnError
	return errors.As(err, &statusErr) || errors.As(err, &connErr) || errors.Is(err, feedpkg.ErrInvalidFeed)
}

func isInvalidInput(err error) bool {
	if errors.Is(err, store.ErrInvalidInput) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid output format") || strings.Contains(msg, "invalid url")
}

func ErrorExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case isInvalidInput(err):
		return exitInvalidInput
	case errors.Is(err, store.ErrDuplicate):
		return exitDuplicate
	case isFetchError(err):
		return exitFetch
	default:
		return exitInternal
	}
}

func FormatError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case isInvalidInput(err):
		return fmt.Sprintf("Error [invalid-input]: %v", err)
	case errors.Is(err, store.ErrDuplicate):
		return fmt.Sprintf("Error [duplicate]: %v", err)
	case isFetchError(err):
		return fmt.Sprintf("Error [fetch]: %v", err)
	default:
		return fmt.Sprintf("Error [internal]: %v", err)
	}
}

func PrintError(err error) {
	fprintError(os.Stderr, err)
}

func fprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatError(err))
}

// describeFailure renders a failed result the way the console reports it.
func describeFailure(r Result) string {
	switch r.Outcome {
	case model.OutcomeHTTPError:
		return fmt.Sprintf("HTTP Error: %d", r.StatusCode)
	case model.OutcomeConnectionError:
		return "Connection Lost: " + r.Reason
	case model.OutcomeParseError:
		return "Invalid XML/Feed"
	default:
		return ""
	}
}
