package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/indaco/wfroots/internal/core"
	"github.com/indaco/wfroots/internal/discovery"
	"github.com/indaco/wfroots/internal/openfiles"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Max Depth", "Scan Roots").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates a resolved configuration.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(fs core.FileSystem, cfg *Config) *Validator {
	return &Validator{
		fs:          fs,
		cfg:         cfg,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) []ValidationResult {
	v.validations = make([]ValidationResult, 0)

	v.validateMaxDepth()
	v.validateChoice("Format", v.cfg.Format, Formats())
	v.validateChoice("Enumerator", v.cfg.Enumerator, openfiles.Backends())
	v.validateSignature()
	v.validateScanRoots(ctx)

	return v.validations
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

func (v *Validator) validateMaxDepth() {
	if d := v.cfg.Depth(); d < 0 {
		v.addValidation("Max Depth", false, fmt.Sprintf("max depth must not be negative, got %d", d), false)
		return
	}
	v.addValidation("Max Depth", true, fmt.Sprintf("scanning %d levels deep", v.cfg.Depth()), false)
}

func (v *Validator) validateChoice(category, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		v.addValidation(category, false, fmt.Sprintf("unknown value %q (want one of %v)", value, allowed), false)
		return
	}
	v.addValidation(category, true, value, false)
}

func (v *Validator) validateSignature() {
	if _, err := discovery.ParseSignature(v.cfg.Signature); err != nil {
		v.addValidation("Signature", false, err.Error(), false)
		return
	}
	v.addValidation("Signature", true, v.cfg.Signature, false)
}

// validateScanRoots rejects relative roots. Missing roots are only a warning:
// the scan skips them.
func (v *Validator) validateScanRoots(ctx context.Context) {
	for _, root := range v.cfg.ScanRoots {
		if !filepath.IsAbs(root) {
			v.addValidation("Scan Roots", false, fmt.Sprintf("scan root %q must be an absolute path", root), false)
			continue
		}
		info, err := v.fs.Stat(ctx, root)
		if err != nil || !info.IsDir() {
			v.addValidation("Scan Roots", false, fmt.Sprintf("scan root %q is not a readable directory", root), true)
			continue
		}
		v.addValidation("Scan Roots", true, root, false)
	}
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return true
		}
	}
	return false
}

// Errors joins the failed, non-warning results into a single error.
func Errors(results []ValidationResult) error {
	var errs []error
	for _, r := range results {
		if !r.Passed && !r.Warning {
			errs = append(errs, fmt.Errorf("%s: %s", r.Category, r.Message))
		}
	}
	return errors.Join(errs...)
}

// Warnings returns the results flagged as warnings.
func Warnings(results []ValidationResult) []ValidationResult {
	var out []ValidationResult
	for _, r := range results {
		if !r.Passed && r.Warning {
			out = append(out, r)
		}
	}
	return out
}
