package matching

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCandidate = errors.New("invalid candidate profile")
	ErrInvalidJob       = errors.New("invalid job requirement")
	ErrInvalidParams    = errors.New("invalid matching parameters")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidationError identifies the record and the field that failed validation.
type ValidationError struct {
	Kind   string
	Index  int
	ID     string
	Field  string
	Reason string

	err error
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s at index %d: %s %s", e.Kind, e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q at index %d: %s %s", e.Kind, e.ID, e.Index, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func validateCandidates(candidates []CandidateProfile) error {
	seen := make(map[string]int, len(candidates))
	for idx, candidate := range candidates {
		if err := checkStruct("candidate", idx, candidate.ID, candidate, ErrInvalidCandidate); err != nil {
			return err
		}
		if first, ok := seen[candidate.ID]; ok {
			return &ValidationError{
				Kind:   "candidate",
				Index:  idx,
				ID:     candidate.ID,
				Field:  "id",
				Reason: fmt.Sprintf("duplicates candidate at index %d", first),
				err:    ErrInvalidCandidate,
			}
		}
		seen[candidate.ID] = idx
	}
	return nil
}

func validateJobs(jobs []JobRequirement, requireID bool) error {
	seen := make(map[string]int, len(jobs))
	for idx, job := range jobs {
		if err := checkStruct("job", idx, job.ID, job, ErrInvalidJob); err != nil {
			return err
		}
		if !requireID {
			continue
		}
		if job.ID == "" {
			return &ValidationError{Kind: "job", Index: idx, Field: "id", Reason: "is required", err: ErrInvalidJob}
		}
		if first, ok := seen[job.ID]; ok {
			return &ValidationError{
				Kind:   "job",
				Index:  idx,
				ID:     job.ID,
				Field:  "id",
				Reason: fmt.Sprintf("duplicates job at index %d", first),
				err:    ErrInvalidJob,
			}
		}
		seen[job.ID] = idx
	}
	return nil
}

func validateParams(params Params) error {
	return checkStruct("params", 0, "", params, ErrInvalidParams)
}

func checkStruct(kind string, idx int, id string, value any, sentinel error) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", sentinel, err)
	}

	fe := fieldErrs[0]
	return &ValidationError{
		Kind:   kind,
		Index:  idx,
		ID:     id,
		Field:  fe.Field(),
		Reason: describe(fe),
		err:    sentinel,
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s, got %v", fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s, got %v", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
