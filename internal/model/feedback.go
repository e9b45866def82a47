package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Feedback is the structured result of scoring one answer. It is stored as a
// JSON column and validated on write, so readers never reparse free text.
type Feedback struct {
	Overall      string   `json:"overall"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

func (f Feedback) Value() (driver.Value, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *Feedback) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported feedback column type %T", value)
	}
	return json.Unmarshal(data, f)
}
