// internal/record/structural.go
//
// Structural pass over a ValidationRequest.
//
// Context
// -------
// Before any entry is compared with the requirements catalog, the request
// must be well-formed: required fields present, metadata within bounds,
// and batch rules satisfied.  These checks are tag-driven through
// go-playground/validator, plus one struct-level rule registered below.
//
// Workflow
// --------
//   - Check runs validator.Struct over the whole request, diving into every
//     section slice.
//   - Each failure becomes a FieldError keyed by its JSON path, so callers
//     can point at the exact item without knowing Go field names.
//   - A non-empty result means the content pass must not run.
//
// Notes
// -----
//   - The validator instance is a package-level singleton; it caches struct
//     metadata and is safe for concurrent use.
package record

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NightlyBatch is the batch name that requires a portfolio name.
const NightlyBatch = "Nightly"

// FieldError describes a single structural failure.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	val.RegisterStructValidation(portfolioRule, ValidationRequest{})
	return val
}

// portfolioRule enforces that nightly batches name their portfolio.
func portfolioRule(sl validator.StructLevel) {
	req := sl.Current().Interface().(ValidationRequest)
	if req.MetadataBatchName == NightlyBatch && req.MetadataPortfolioName == "" {
		sl.ReportError(req.MetadataPortfolioName,
			"metadata_portfolio_name", "MetadataPortfolioName", "required_for_nightly", "")
	}
}

//
// public API
//

// Check returns every structural failure in req, or nil when it is clean.
func Check(req *ValidationRequest) []FieldError {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Rule: "invalid", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// fieldPath drops the root type and embedded struct names from a
// validator namespace: "ValidationRequest.json_file.Lab[0].BaseRecord.Tab"
// becomes "json_file.Lab[0].Tab".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	kept := parts[:0]
	for _, p := range parts {
		if p == "BaseRecord" || p == "ExtendedRecord" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "required_for_nightly":
		return fmt.Sprintf("is required when batch name is %q", NightlyBatch)
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
