// Package types holds helpers for the optional string fields of the vendor records
package types

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// StringNilOrEmpty reports whether an optional field is unset or blank
func StringNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

// SafeString returns the value of an optional field, empty when unset
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
