package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Apply duplicate-emission lockout, format the output line,
 *		print to stdout, and prepend it to the on-disk log.
 *
 * Description:	Emission: given a valid code and the current time, emit iff
 *		code != last_code OR (now - last_emit_time) >= lockout. The
 *		log file is opened, written, and closed per emission -
 *		read-all-then-rewrite so the newest line lands at the head
 *		of the file - with no persistent handle kept between
 *		emissions.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"
)

// EmitterConfig holds the tunable duplicate-emission lockout duration.
type EmitterConfig struct {
	FullCodeLockout time.Duration // default 4.0s
	LogPath         string
}

// DefaultEmitterConfig returns the recommended lockout duration.
func DefaultEmitterConfig(logPath string) EmitterConfig {
	return EmitterConfig{
		FullCodeLockout: 4 * time.Second,
		LogPath:         logPath,
	}
}

// Emitter owns the (last_code, last_emit_time) pair from its
// EmitterState and performs the validate-format-print-log sequence. Not
// safe for concurrent use; the scheduler drives it from a single
// goroutine.
type Emitter struct {
	config     EmitterConfig
	dictionary *Dictionary
	logger     Logger

	lastCode     string
	hasLastCode  bool
	lastEmitTime time.Time
}

// NewEmitter builds an Emitter with no prior emission recorded.
func NewEmitter(config EmitterConfig, dictionary *Dictionary, logger Logger) *Emitter {
	return &Emitter{config: config, dictionary: dictionary, logger: logger}
}

// Emit validates code and, if it passes validation and the lockout
// permits it, formats and emits the line. It returns whether an emission
// actually occurred.
func (e *Emitter) Emit(code string, now time.Time) bool {
	if !IsValidSELCAL(code) {
		return false
	}

	if e.hasLastCode && code == e.lastCode && now.Sub(e.lastEmitTime) < e.config.FullCodeLockout {
		return false
	}

	line := e.format(code, now)

	fmt.Println(line)

	if err := e.prependToLog(line); err != nil && e.logger != nil {
		e.logger.Warn("failed to write SELCAL log", "error", err, "path", e.config.LogPath)
	}

	e.lastCode = code
	e.hasLastCode = true
	e.lastEmitTime = now

	return true
}

// format renders "DD/MM/YY HH:MM:SS CODE (registration aircraft operator)",
// using local wall-clock time and an empty parenthetical when the code is
// not in the dictionary.
func (e *Emitter) format(code string, now time.Time) string {
	timestamp := now.Format("02/01/06 15:04:05")

	paren := " ()"
	if e.dictionary != nil {
		if entry, ok := e.dictionary.Lookup(code); ok {
			paren = fmt.Sprintf(" (%s)", entry)
		}
	}

	return fmt.Sprintf("%s %s%s", timestamp, code, paren)
}

// prependToLog inserts line at the head of the log file, creating the
// file if it doesn't exist. Read-all-then-rewrite is acceptable at SELCAL
// emission rates: the file is opened, read, rewritten, and closed, with no
// handle held between emissions.
func (e *Emitter) prependToLog(line string) error {
	existing, err := os.ReadFile(e.config.LogPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	content := line + "\n" + string(existing)

	if err := os.WriteFile(e.config.LogPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}

	return nil
}
