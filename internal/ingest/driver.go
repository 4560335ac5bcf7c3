package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cinelist/internal/logging"
)

// markers parameterizes the state machine for one list file format.
type markers struct {
	// header is the exact line that ends the preamble.
	header string
	// skipAfterHeader is the number of lines to discard after the header.
	skipAfterHeader int
	// terminator is the exact line that ends the data section. Everything
	// after it is junk. Empty means the section runs to end of input.
	terminator string
	// separator is the exact group-separator line, for files that delimit
	// groups with a dashed line instead of ending on one.
	separator string
	// blankStartsGroup makes a blank line transition back to New-Group.
	// When false, blank lines are skipped.
	blankStartsGroup bool
	// singleRecord marks files where every data line is a complete group.
	singleRecord bool
}

// source binds one list file's grammar to the driver. beginGroup consumes
// the first line of a group (resolving or creating the owning entity);
// continueGroup consumes attribute lines for the current owner. Errors are
// classified with the sentinel markers in errors.go.
type source interface {
	name() string
	markers() markers
	beginGroup(ctx context.Context, line string, lineNo int) error
	continueGroup(ctx context.Context, line string, lineNo int) error
}

type driverState int

const (
	stateSeeking driverState = iota
	stateNewGroup
	stateContinuation
)

// maxLineBytes bounds a single list line. The dumps occasionally carry very
// long lines; 1 MiB is far beyond any legitimate record.
const maxLineBytes = 1 << 20

// runFile drives the Seeking-Header / In-Record / Done machine over one
// file. It returns the per-file summary; the error is non-nil only for
// fatal conditions (unparsable required field, read failure, cancellation).
func runFile(ctx context.Context, src source, input io.Reader, rep *reporter, progressEvery int) (Summary, error) {
	start := time.Now()
	m := src.markers()

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	state := stateSeeking
	valid := false
	skipAfter := 0
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return rep.finish(start, lineNo), err
		}
		line := scanner.Text()
		lineNo++

		if progressEvery > 0 && lineNo%progressEvery == 0 {
			rep.logger.Info("progress",
				logging.String(logging.FieldSource, src.name()),
				logging.Int(logging.FieldLine, lineNo))
		}

		if state == stateSeeking {
			if line == m.header {
				state = stateNewGroup
				skipAfter = m.skipAfterHeader
			}
			continue
		}
		if skipAfter > 0 {
			skipAfter--
			continue
		}

		if m.terminator != "" && line == m.terminator {
			break
		}
		if m.separator != "" && line == m.separator {
			state = stateNewGroup
			continue
		}
		if isBlank(line) {
			if m.blankStartsGroup {
				state = stateNewGroup
			}
			continue
		}

		var err error
		switch state {
		case stateNewGroup:
			err = src.beginGroup(ctx, line, lineNo)
			if err == nil {
				valid = true
			} else {
				valid = false
			}
			if !m.singleRecord {
				state = stateContinuation
			}
		case stateContinuation:
			if !valid {
				rep.skipInvalid()
				continue
			}
			err = src.continueGroup(ctx, line, lineNo)
		}

		if err != nil {
			if !errors.Is(err, ErrGrammar) && !errors.Is(err, ErrOwnerMissing) {
				// Fatal fields, store failures and the like end the file.
				return rep.finish(start, lineNo), err
			}
			rep.diagnostic(lineNo, line, err.Error())
		}
	}

	if err := scanner.Err(); err != nil {
		return rep.finish(start, lineNo), fmt.Errorf("read %s: %w", src.name(), err)
	}
	return rep.finish(start, lineNo), nil
}

func isBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' && line[i] != '\r' {
			return false
		}
	}
	return true
}
