package gateway

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wrapper the Vesta API puts around every JSON response.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func decodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", err)
	}
	return &env, nil
}

func isNullData(data json.RawMessage) bool {
	return len(data) == 0 || string(data) == "null"
}

// unwrap decodes an enveloped 2xx body into the expected payload shape.
// A body that does not decode, a success envelope without data, or a payload
// that does not match T all classify as Malformed; a failure envelope carries
// the server message back as ClientRejected.
func unwrap[T any](method, url string, body []byte) (T, *Error) {
	var zero T

	env, err := decodeEnvelope(body)
	if err != nil {
		return zero, malformed(method, url, body, err)
	}

	if !env.Success {
		if env.Message != "" {
			return zero, &Error{Kind: KindClientRejected, Message: env.Message}
		}
		return zero, malformed(method, url, body, nil)
	}

	if isNullData(env.Data) {
		return zero, malformed(method, url, body, nil)
	}

	var payload T
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return zero, malformed(method, url, body, err)
	}
	return payload, nil
}

// unwrapMessage is unwrap for endpoints whose meaningful payload is the
// envelope message itself (password recovery, confirmation resend).
func unwrapMessage(method, url string, body []byte) (string, *Error) {
	env, err := decodeEnvelope(body)
	if err != nil {
		return "", malformed(method, url, body, err)
	}

	if !env.Success {
		if env.Message != "" {
			return "", &Error{Kind: KindClientRejected, Message: env.Message}
		}
		return "", malformed(method, url, body, nil)
	}

	return env.Message, nil
}
