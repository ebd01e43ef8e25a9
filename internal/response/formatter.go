package response

import "net/http"

// Formatter builds envelopes for one resource. Successful payloads are
// placed under the resource's data key ("sabores", "user", ...).
type Formatter struct {
	dataKey string
}

func NewFormatter(dataKey string) Formatter {
	return Formatter{dataKey: dataKey}
}

// Success returns a 200 envelope. A nil data omits the data key.
func (f Formatter) Success(message string, data any) Envelope {
	return Envelope{
		Status:  http.StatusOK,
		Message: message,
		DataKey: f.dataKey,
		Data:    data,
	}
}

// Error returns an envelope with the given status. errs is included only when non-nil.
func (f Formatter) Error(message string, errs []string, status int) Envelope {
	return Envelope{
		Status:  status,
		Message: message,
		Errors:  errs,
	}
}
