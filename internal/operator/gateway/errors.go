package gateway

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindTransient covers network failures, timeouts and server errors.
	KindTransient Kind = iota
	// KindNotFound means the object no longer exists.
	KindNotFound
	// KindBudgetExceeded means an eviction was refused by a disruption budget.
	KindBudgetExceeded
	// KindConflict means the write raced with another writer.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindBudgetExceeded:
		return "BudgetExceeded"
	case KindConflict:
		return "Conflict"
	default:
		return "Transient"
	}
}

// Error is returned by every Gateway method.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a gateway error. Errors that did not come from
// the gateway are treated as transient.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return KindTransient
}

// IsNotFound reports whether err is a gateway NotFound error.
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsBudgetExceeded reports whether err is a disruption-budget rejection.
func IsBudgetExceeded(err error) bool {
	return err != nil && KindOf(err) == KindBudgetExceeded
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: classify(err), Err: err}
}

func classify(err error) Kind {
	switch {
	case apierrors.IsNotFound(err):
		return KindNotFound
	case apierrors.IsTooManyRequests(err):
		return KindBudgetExceeded
	case apierrors.IsConflict(err):
		return KindConflict
	default:
		return KindTransient
	}
}
