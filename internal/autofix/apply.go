package autofix

import (
	"fmt"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// Apply mutates the builder in place according to a fix. Only fixes marked
// auto-applicable are supported; everything else needs a human edit.
func Apply(builder *types.ResumeBuilder, fix types.AutoFix) (string, error) {
	if !fix.AutoApplicable {
		return "", errors.NewValidationError("INVALID_REQUEST", "this fix requires manual intervention", nil)
	}

	if fix.Type == types.FixTypeSummary && fix.Action == types.FixActionAdd {
		if builder.Summary != nil && builder.Summary.Text != "" {
			return "", errors.NewValidationError("INVALID_REQUEST", "resume already has a professional summary", nil)
		}
		text, ok := fix.SuggestedValue.(string)
		if !ok || text == "" {
			return "", errors.NewValidationError("INVALID_REQUEST", "summary fix carries no suggested text", nil)
		}
		builder.Summary = &types.ProfessionalSummary{Text: text}
		return "Professional summary added successfully", nil
	}

	return "", errors.NewValidationError("INVALID_REQUEST",
		fmt.Sprintf("auto-fix for %s not yet implemented", fix.Type), nil)
}
