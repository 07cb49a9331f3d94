package models

// Patch operations understood by the update mutations.
const (
	OpReplace = "replace"
	OpRemove  = "remove"
)

// Patch is one sparse update instruction. Value is omitted for remove.
type Patch struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Replace sets the field at path to value.
func Replace(path string, value any) Patch {
	return Patch{Op: OpReplace, Path: path, Value: value}
}

// Remove clears the field at path.
func Remove(path string) Patch {
	return Patch{Op: OpRemove, Path: path}
}

// ReplaceOrRemove replaces the field when value is present and removes it otherwise.
func ReplaceOrRemove(path string, value *string) Patch {
	if v := Present(value); v != nil {
		return Replace(path, *v)
	}
	return Remove(path)
}
