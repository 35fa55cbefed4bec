// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTimeout,
//	    "failed to capture journal excerpt",
//	    ctx.Err(),
//	    map[string]interface{}{
//	        "command": "journalctl",
//	        "section": sectionTitle,
//	    },
//	)
package errors
