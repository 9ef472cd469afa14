package state

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OptionMap is a string-to-string mapping that keeps insertion order.
// The winner tie-break and the on-wire JSON both depend on key order,
// so a plain map cannot be used here.
type OptionMap struct {
	keys   []string
	labels map[string]string
}

func NewOptionMap() *OptionMap {
	return &OptionMap{labels: make(map[string]string)}
}

func (m *OptionMap) Set(key, label string) {
	if m.labels == nil {
		m.labels = make(map[string]string)
	}
	if _, exists := m.labels[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.labels[key] = label
}

func (m *OptionMap) Get(key string) (string, bool) {
	label, exists := m.labels[key]
	return label, exists
}

func (m *OptionMap) Has(key string) bool {
	_, exists := m.labels[key]
	return exists
}

// Keys returns option keys in insertion order. The returned slice is shared,
// callers must not mutate it.
func (m *OptionMap) Keys() []string {
	return m.keys
}

func (m *OptionMap) Len() int {
	return len(m.keys)
}

func (m *OptionMap) Clone() OptionMap {
	clone := NewOptionMap()
	for _, key := range m.keys {
		clone.Set(key, m.labels[key])
	}
	return *clone
}

func (m OptionMap) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedLabel, err := json.Marshal(m.labels[key])
		if err != nil {
			return nil, err
		}
		buf.Write(encodedLabel)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *OptionMap) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected a JSON object, got %v", token)
	}
	m.keys = nil
	m.labels = make(map[string]string)
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		key, ok := keyToken.(string)
		if !ok {
			return fmt.Errorf("expected a string key, got %v", keyToken)
		}
		var label string
		if err := decoder.Decode(&label); err != nil {
			return err
		}
		m.Set(key, label)
	}
	_, err = decoder.Token()
	return err
}
