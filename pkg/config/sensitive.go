package config

import "encoding/json"

const redacted = "[REDACTED]"

// SensitiveString hides its value from logs, fmt verbs and JSON output.
type SensitiveString string

func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return redacted
}

func (s SensitiveString) GoString() string {
	return s.String()
}

// Value returns the underlying secret.
func (s SensitiveString) Value() string {
	return string(s)
}

func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SensitiveString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SensitiveString(v)
	return nil
}
