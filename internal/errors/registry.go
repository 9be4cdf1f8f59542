package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration (R100-R199)
	"R100": {
		Category: CategoryConfig,
		Message:  "Configuration file not readable",
		Detail:   "The configuration file exists but could not be read or parsed.",
	},
	"R101": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration value",
		Suggestion: "Check the value against the documented range.",
	},
	"R102": {
		Category:   CategoryConfig,
		Message:    "Invalid target configuration",
		Suggestion: "Use one of: memory, sqlite, s3, stream",
	},
	"R103": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must be JSON (.json) or YAML (.yaml, .yml).",
	},

	// Runtime (R200-R299)
	"R200": {
		Category: CategoryRuntime,
		Message:  "Render failed",
	},
	"R201": {
		Category:   CategoryRuntime,
		Message:    "Hook created after mount",
		Detail:     "A component called more hooks than it did on its first render. Hooks are bound by call order and must be called unconditionally.",
		Suggestion: "Move the hook call above any early return or condition.",
	},
	"R202": {
		Category:   CategoryRuntime,
		Message:    "Hook order changed",
		Detail:     "A hook of a different kind or type was called at a position, or fewer hooks were called than on the first render.",
		Suggestion: "Call the same hooks in the same order on every render.",
	},
	"R203": {
		Category: CategoryRuntime,
		Message:  "State used after unmount",
		Detail:   "A state handle was written after its component was destroyed.",
	},
	"R204": {
		Category: CategoryRuntime,
		Message:  "Component panicked",
		Detail:   "The panic was recovered. The component keeps its last committed output.",
	},
	"R205": {
		Category:   CategoryRuntime,
		Message:    "Render budget exceeded",
		Detail:     "A render pass hit its render limit. Remaining work stays queued.",
		Suggestion: "Check for components that schedule themselves on every render.",
	},
	"R206": {
		Category: CategoryRuntime,
		Message:  "Invalid props",
		Detail:   "A component received props of the wrong type.",
	},
	"R207": {
		Category: CategoryRuntime,
		Message:  "Hook called outside render",
		Detail:   "Hooks may only be called while their component renders.",
	},
	"R208": {
		Category: CategoryRuntime,
		Message:  "Root closed",
	},
	"R209": {
		Category:   CategoryRuntime,
		Message:    "Dispatch queue full",
		Suggestion: "Raise the dispatch buffer or make sure the root's Run loop is running.",
	},

	// Targets (R300-R399)
	"R300": {
		Category: CategoryTarget,
		Message:  "Target failed to open",
	},
	"R301": {
		Category: CategoryTarget,
		Message:  "Commit failed",
		Detail:   "The render target rejected a commit. The fiber's state is kept.",
	},

	// Command line (R400-R499)
	"R400": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
	"R401": {
		Category: CategoryCLI,
		Message:  "Server error",
	},
	"R402": {
		Category: CategoryCLI,
		Message:  "Terminal UI error",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
