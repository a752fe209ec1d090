package args

import "github.com/qosasa/qosasa/pkg"

// Parse errors. Every error returned by this package matches one of these
// under errors.Is.
var (
	ErrUnknownFlag           = pkg.NewError("unknown flag")
	ErrNotNumeric            = pkg.NewError("not numeric")
	ErrMissingRequiredFields = pkg.NewError("required field missing")
	ErrUnknownFormatType     = pkg.NewError("unknown format type")
)
