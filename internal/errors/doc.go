// Package errors provides coded, formatted errors for the reconciler CLI.
//
// Each code maps to a registered template with a short message, a
// detailed explanation and an optional hint:
//   - R1xx: configuration
//   - R2xx: runtime (hook order, panics, render budget)
//   - R3xx: render targets
//   - R4xx: command line
//
// # Usage
//
//	err := errors.New("R102").
//	    WithDetail("unknown target kind \"ftp\"").
//	    WithSuggestion("Use one of: memory, sqlite, s3, stream")
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// Output:
//	// ERROR R102: Invalid target configuration
//	//
//	//   unknown target kind "ftp"
//	//
//	//   Hint: Use one of: memory, sqlite, s3, stream
//
// Runtime errors from package fiber are mapped to codes with FromRuntime.
package errors
