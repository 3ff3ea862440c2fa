package sqlite

import "encoding/json"

// Sign lists are stored as JSON text columns, mirroring the array fields
// of the progress documents this schema replaced.

func marshalSigns(signs []string) string {
	if len(signs) == 0 {
		return "[]"
	}
	b, err := json.Marshal(signs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalSigns(raw string) []string {
	if raw == "" {
		return nil
	}
	var signs []string
	if err := json.Unmarshal([]byte(raw), &signs); err != nil {
		return nil
	}
	return signs
}
