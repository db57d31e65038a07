package toyhtml

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dpotapov/toyhtml/markup"
)

// errorContextLines is the number of source lines shown before and after an error.
const errorContextLines = 3

// ErrorReport describes why a document was rejected.
type ErrorReport struct {
	Errors []ErrorEntry `json:"errors"`
}

// ErrorEntry is one error of an ErrorReport.
type ErrorEntry struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Offset  int    `json:"offset"`

	// Source holds the lines around the error. It is nil for errors that did not come
	// from the parser.
	Source *markup.SourceContext `json:"source,omitempty"`
}

// NewErrorReport flattens err, which is usually ParseResult.Err, into a report. Every
// *markup.ParseError found gets contextLines lines of source around it.
func NewErrorReport(err error, contextLines int) *ErrorReport {
	errs := []error{err}
	if multierr, ok := err.(interface{ Unwrap() []error }); ok {
		errs = multierr.Unwrap()
	}

	report := &ErrorReport{Errors: []ErrorEntry{}}
	for _, err := range errs {
		var pe *markup.ParseError
		if !errors.As(err, &pe) {
			report.Errors = append(report.Errors, ErrorEntry{Message: err.Error()})
			continue
		}
		sp := pe.Diagnostic.Span
		report.Errors = append(report.Errors, ErrorEntry{
			Message: pe.Diagnostic.Message,
			Line:    sp.Line,
			Column:  sp.Column,
			Offset:  sp.Offset,
			Source:  pe.SourceContext(contextLines),
		})
	}
	return report
}

func encodeErrorReport(w io.Writer, report *ErrorReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeErrorReport(w http.ResponseWriter, report *ErrorReport) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	return encodeErrorReport(w, report)
}
