package response

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Envelope is the body shape shared by every endpoint:
// {status, message, <data key>?, errors?}.
type Envelope struct {
	Status  int
	Message string
	DataKey string
	Data    any
	Errors  []string
}

func (e Envelope) HasData() bool {
	return e.Data != nil && e.DataKey != ""
}

// MarshalJSON keeps the keys in envelope order instead of the alphabetical
// order a map would give.
func (e Envelope) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"status":`)
	if err := writeValue(&buf, e.Status); err != nil {
		return nil, err
	}
	buf.WriteString(`,"message":`)
	if err := writeValue(&buf, e.Message); err != nil {
		return nil, err
	}
	if e.HasData() {
		buf.WriteByte(',')
		if err := writeValue(&buf, e.DataKey); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeValue(&buf, e.Data); err != nil {
			return nil, err
		}
	}
	if e.Errors != nil {
		buf.WriteString(`,"errors":`)
		if err := writeValue(&buf, e.Errors); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// Write sends the envelope with the HTTP status equal to its status field.
func Write(w http.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(env.Status)
	json.NewEncoder(w).Encode(env)
}
