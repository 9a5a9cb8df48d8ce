package mpesa

import (
	"encoding/json"
	"fmt"
	"io"
)

// StatusSuccess is the responseStatus value the provider uses for a
// completed top-up.
const StatusSuccess = "200"

// Payload is the provider response body as received.
type Payload map[string]any

// decodePayload keeps numbers as json.Number so large ids survive the echo
// back to the client and the audit log unchanged.
func decodePayload(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body Payload
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

func (p Payload) String() string {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(p))
	}
	return string(b)
}

// ResponseStatus returns the responseStatus field rendered as a string and
// whether the field was present.
func (p Payload) ResponseStatus() (string, bool) {
	v, ok := p["responseStatus"]
	if !ok || v == nil {
		return "", false
	}

	if s, ok := v.(string); ok {
		return s, true
	}

	return fmt.Sprint(v), true
}

// TopUpResult is either Success or Failure.
type TopUpResult interface {
	Body() Payload
	isTopUpResult()
}

type Success struct {
	Payload Payload
}

func (s Success) Body() Payload { return s.Payload }
func (Success) isTopUpResult()  {}

type Failure struct {
	Code    string
	Payload Payload
}

func (f Failure) Body() Payload { return f.Payload }
func (Failure) isTopUpResult()  {}

func newTopUpResult(body Payload) TopUpResult {
	// Only the string "200" counts; a numeric 200 is a failure.
	if raw, ok := body["responseStatus"].(string); ok && raw == StatusSuccess {
		return Success{Payload: body}
	}

	status, _ := body.ResponseStatus()
	return Failure{Code: status, Payload: body}
}
