// Package convert turns CSV cell text into typed Go values.
//
// Empty text is never parsed: it becomes the zero value for plain targets,
// None for optional.Value targets and nil for pointer targets. Any other text,
// including text made only of spaces, goes through the parser for the target
// kind, and failures are reported as *Error values matching ErrConversion.
//
// Which textual forms are accepted for a kind is controlled by
// primitive.CategoryEnum flags in Options.
package convert
