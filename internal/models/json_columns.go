package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList stores a []string as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	raw, err := scanRaw("StringList", value)
	if err != nil {
		return err
	}
	if raw == "" {
		*l = []string{}
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return fmt.Errorf("models.StringList: %w", err)
	}
	*l = arr
	return nil
}

// SourceList stores a []Source as a JSON text column.
type SourceList []Source

func (l SourceList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Source(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *SourceList) Scan(value interface{}) error {
	raw, err := scanRaw("SourceList", value)
	if err != nil {
		return err
	}
	if raw == "" {
		*l = []Source{}
		return nil
	}
	var arr []Source
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return fmt.Errorf("models.SourceList: %w", err)
	}
	*l = arr
	return nil
}

// MessageList stores a []Message as a JSON text column.
type MessageList []Message

func (l MessageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]Message(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *MessageList) Scan(value interface{}) error {
	raw, err := scanRaw("MessageList", value)
	if err != nil {
		return err
	}
	if raw == "" {
		*l = []Message{}
		return nil
	}
	var arr []Message
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return fmt.Errorf("models.MessageList: %w", err)
	}
	*l = arr
	return nil
}

func scanRaw(typ string, value interface{}) (string, error) {
	if value == nil {
		return "", nil
	}
	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return "", fmt.Errorf("models.%s: unsupported Scan type %T", typ, value)
	}
	raw = strings.TrimSpace(raw)
	if raw == "null" {
		raw = ""
	}
	return raw, nil
}
