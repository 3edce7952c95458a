package errors

import "fmt"

// MissingProjectRoot reports an unusable scan root. This is the one condition
// that aborts a scan outright.
func MissingProjectRoot(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("project root %s does not exist or is not a directory", path),
		"check the path for typos",
		"pass an absolute path to an existing project directory",
	)
}

// ConfigLoadFailed reports an unreadable or invalid config file.
func ConfigLoadFailed(err error) *CLIError {
	return NewConfigurationError(
		fmt.Sprintf("could not load project configuration: %v", err),
		"check the .schemascan.yaml syntax",
		"remove the config file to fall back to built-in defaults",
	)
}

// InvalidSchemaIdentifier reports a malformed schema id given on the command
// line.
func InvalidSchemaIdentifier(id string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("schema identifier %q does not match namespace/name[@major.minor]", id),
		"schemascan schemas [--scope feature|project]",
		"use lowercase namespace and name, e.g. ai-coding/progress-log@1.0",
	)
}

// ScanFailed reports a scan that could not complete.
func ScanFailed(err error) *CLIError {
	return NewRuntimeError(
		fmt.Sprintf("scan failed: %v", err),
		"verify the project root is readable",
	)
}
