package shared

import "library-backend/internal/shared/apperror"

// ValidatePageWindow enforces the contract both domains share: limit in
// [1,100], offset non-negative. Defaults are the transport layer's job;
// out-of-range values here are caller errors, not something to clamp.
func ValidatePageWindow(limit, offset int) error {
	if limit < 1 || limit > MaxLimit {
		return apperror.ValidationField("limit", "limit must be between 1 and 100")
	}
	if offset < 0 {
		return apperror.ValidationField("offset", "offset must be non-negative")
	}
	return nil
}
