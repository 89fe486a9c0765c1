package quickcreate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FlexString decodes from either a JSON string or a JSON number. Creation
// endpoints are not consistent about how they send ids and prices.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("quickcreate: expected string or number, got %s", b)
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string { return string(s) }

// Response is the JSON acknowledgement of a background create.
type Response struct {
	Success             bool            `json:"success"`
	ID                  FlexString      `json:"id,omitempty"`
	Nombre              string          `json:"nombre,omitempty"`
	PrecioCostoUnitario FlexString      `json:"precio_costo_unitario,omitempty"`
	Errors              json.RawMessage `json:"errors,omitempty"`
	Message             string          `json:"message,omitempty"`
}

// Succeeded builds a success acknowledgement.
func Succeeded(id, nombre string) Response {
	return Response{Success: true, ID: FlexString(id), Nombre: nombre}
}

// Failed builds a failure acknowledgement carrying per-field messages.
func Failed(errs map[string][]string, message string) Response {
	resp := Response{Success: false, Message: message}
	if len(errs) > 0 {
		if raw, err := json.Marshal(errs); err == nil {
			resp.Errors = raw
		}
	}
	return resp
}

// ErrorText renders the failure detail for the user. Field errors are listed
// as "campo: mensaje" sorted by field; anything else is shown verbatim.
func (r *Response) ErrorText() string {
	if len(r.Errors) > 0 && string(r.Errors) != "null" {
		var fields map[string][]string
		if err := json.Unmarshal(r.Errors, &fields); err == nil && len(fields) > 0 {
			keys := make([]string, 0, len(fields))
			for k := range fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts := make([]string, 0, len(keys))
			for _, k := range keys {
				parts = append(parts, k+": "+strings.Join(fields[k], ", "))
			}
			return strings.Join(parts, "; ")
		}
		return string(r.Errors)
	}
	if r.Message != "" {
		return r.Message
	}
	return "la solicitud fue rechazada"
}
