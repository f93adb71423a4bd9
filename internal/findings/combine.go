package findings

import (
	"github.com/hashicorp/go-multierror"
)

// Combine folds findings into a single error, or nil when there are none.
// Used by strict mode to turn a summary into a failing exit.
func Combine(items []*Finding) error {
	var result *multierror.Error
	for _, f := range items {
		result = multierror.Append(result, f)
	}
	return result.ErrorOrNil()
}

// CombineErrors folds non-nil errors into a single error, or nil.
func CombineErrors(errs ...error) error {
	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
