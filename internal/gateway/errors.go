package gateway

import (
	"vesta-storefront/pkg/logger"
)

// Kind is the closed set of failure categories surfaced to callers of the
// gateway and checkout layers.
type Kind string

const (
	KindValidationFailed Kind = "validation_failed"
	KindClientRejected   Kind = "client_rejected"
	KindServerFailed     Kind = "server_failed"
	KindUnreachable      Kind = "unreachable"
	KindMalformed        Kind = "malformed"
)

// User-safe messages. Anything the remote server put in a 5xx body or an
// undecodable response never reaches the caller.
const (
	msgRejected    = "La solicitud fue rechazada. Revise los datos introducidos."
	msgServer      = "Error del servidor. Por favor, intente más tarde."
	msgUnreachable = "No se pudo conectar con el servidor. Verifique su conexión."
	msgMalformed   = "Respuesta de la API vacía o inválida."
)

// Error carries a classification kind and a message safe to show verbatim to
// the end user.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// classify maps a received HTTP response to an Error. Transport failures
// (no response at all) go through classifyTransport instead.
func classify(method, url string, status int, body []byte) *Error {
	logger.Debug("Classifying gateway failure", map[string]interface{}{
		"method": method,
		"url":    url,
		"status": status,
		"body":   string(body),
	})

	switch {
	case status >= 400 && status < 500:
		if env, err := decodeEnvelope(body); err == nil && env.Message != "" {
			return &Error{Kind: KindClientRejected, Message: env.Message}
		}
		return &Error{Kind: KindClientRejected, Message: msgRejected}
	case status >= 500:
		return &Error{Kind: KindServerFailed, Message: msgServer}
	default:
		return &Error{Kind: KindMalformed, Message: msgMalformed}
	}
}

func classifyTransport(method, url string, err error) *Error {
	logger.Debug("Classifying gateway transport failure", map[string]interface{}{
		"method": method,
		"url":    url,
		"error":  err.Error(),
	})

	return &Error{Kind: KindUnreachable, Message: msgUnreachable}
}

func malformed(method, url string, body []byte, err error) *Error {
	fields := map[string]interface{}{
		"method": method,
		"url":    url,
		"body":   string(body),
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	logger.Debug("Gateway response did not match expected shape", fields)

	return &Error{Kind: KindMalformed, Message: msgMalformed}
}
