package operation

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire form of a submission: a type tag plus the raw
// parameter payload decoded according to that tag.
type Envelope struct {
	Type   Type            `json:"type"`
	Params json.RawMessage `json:"params"`
}

// DecodeParams parses a raw payload into the parameter struct for t.
func DecodeParams(t Type, data []byte) (Params, error) {
	decode := func(v Params) (Params, error) {
		if err := json.Unmarshal(data, v); err != nil {
			return nil, fmt.Errorf("decode %s params: %w", t, err)
		}
		return v, nil
	}
	switch t {
	case TypeFile:
		p, err := decode(&FileParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*FileParams), nil
	case TypeWeb:
		p, err := decode(&WebParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*WebParams), nil
	case TypeApp:
		p, err := decode(&AppParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*AppParams), nil
	case TypeSettings:
		p, err := decode(&SettingsParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*SettingsParams), nil
	case TypeCommand:
		p, err := decode(&CommandParams{})
		if err != nil {
			return nil, err
		}
		return *p.(*CommandParams), nil
	default:
		return nil, fmt.Errorf("unknown operation type %q", t)
	}
}

// DecodeEnvelope parses a full submission envelope.
func DecodeEnvelope(data []byte) (Params, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode operation envelope: %w", err)
	}
	if len(env.Params) == 0 {
		return nil, fmt.Errorf("operation envelope has no params")
	}
	return DecodeParams(env.Type, env.Params)
}
