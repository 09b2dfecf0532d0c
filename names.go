package agentwire

import "strings"

// Tool names travel in two textual forms: a hyphen-separated display form
// ("web-search") and an underscore-separated identifier form ("web_search").
// The two are pure separator substitutions of each other, so converting a
// name to either form is idempotent and round-trips exactly.

// DisplayName returns the hyphen-separated display form of a tool name.
func DisplayName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// FunctionName returns the underscore-separated identifier form of a tool
// name.
func FunctionName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
