// Package aceserr defines the typed error kinds shared by the aces
// packages, following the error-reporting contract: construction-time
// failures are returned, programmer mistakes panic, and over-level
// decryption is reported as a warning carried alongside a value rather
// than as a refusal.
package aceserr

import "fmt"

// ParameterError reports that the scalar parameters passed to
// channel.New do not satisfy the invariants required to build an
// arithmetic channel.
type ParameterError struct {
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("aces: invalid parameters: %s", e.Reason)
}

// NewParameterError builds a ParameterError from a formatted reason.
func NewParameterError(format string, args ...any) error {
	return &ParameterError{Reason: fmt.Sprintf(format, args...)}
}

// GenerationError reports that key generation could not complete, most
// commonly because the tensor linear system built from the sampled
// secret key was singular. Callers recover by drawing a fresh secret
// key and retrying.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("aces: key generation failed: %s", e.Reason)
}

// NewGenerationError builds a GenerationError from a formatted reason.
func NewGenerationError(format string, args ...any) error {
	return &GenerationError{Reason: fmt.Sprintf(format, args...)}
}

// RefreshError reports that algebra.Refresh could not find an affine
// decomposition for the ciphertext it was given. It is recoverable: the
// caller may keep using the un-refreshed ciphertext or restructure the
// circuit to refresh earlier.
type RefreshError struct {
	Reason string
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("aces: refresh failed: %s", e.Reason)
}

// NewRefreshError builds a RefreshError from a formatted reason.
func NewRefreshError(format string, args ...any) error {
	return &RefreshError{Reason: fmt.Sprintf(format, args...)}
}

// DecryptWarning reports that a ciphertext was decrypted past its
// documented noise budget (uplvl >= q/p). The decrypted value is still
// returned to the caller; this only flags that it is not guaranteed to
// be correct.
type DecryptWarning struct {
	UpLvl   uint64
	Bound   float64
}

func (e *DecryptWarning) Error() string {
	return fmt.Sprintf("aces: decryption past noise budget: uplvl=%d bound=q/p=%.3f", e.UpLvl, e.Bound)
}

// NewDecryptWarning builds a DecryptWarning.
func NewDecryptWarning(uplvl uint64, bound float64) error {
	return &DecryptWarning{UpLvl: uplvl, Bound: bound}
}

// ArithmeticError reports a programmer error: operands drawn from
// mismatched rings or of mismatched dimensions. It is fatal and is
// always raised via panic, never returned, matching the "programmer
// error; fatal" propagation policy.
type ArithmeticError struct {
	Reason string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("aces: arithmetic error: %s", e.Reason)
}

// Panicf panics with an ArithmeticError built from the formatted reason.
// Every PolyRing/Algebra entry point that detects mismatched moduli or
// dimensions calls this instead of returning an error.
func Panicf(format string, args ...any) {
	panic(&ArithmeticError{Reason: fmt.Sprintf(format, args...)})
}
