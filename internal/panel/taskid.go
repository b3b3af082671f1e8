package panel

import "regexp"

var taskIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidTaskID reports whether id has the 36-character GUID shape.
func ValidTaskID(id string) bool {
	return taskIDPattern.MatchString(id)
}
