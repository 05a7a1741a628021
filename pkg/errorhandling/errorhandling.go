package errorhandling

import (
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// JoinErrors converts the error slice into a single human-readable error.
func JoinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	// `multierror` appends new lines which we need to remove to prevent
	// blank lines when printing the error.
	var multiE *multierror.Error
	multiE = multierror.Append(multiE, errs...)
	if len(multiE.Errors) == 1 {
		return multiE.Errors[0]
	}
	return errors.New(strings.TrimSpace(multiE.ErrorOrNil().Error()))
}

// CloseQuiet closes c and logs any error. Should only be used within a
// defer.
func CloseQuiet(c io.Closer, name string) {
	if err := c.Close(); err != nil {
		logrus.Errorf("Unable to close %s: %q", name, err)
	}
}
