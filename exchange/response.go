package exchange

import (
	"encoding/json"
	"fmt"
)

// Response is the tagged status returned by the /exchange endpoint. The
// "ok" payload shape is dictated by the server and kept opaque beyond the
// success/failure discrimination.
type Response struct {
	Status       string
	Data         json.RawMessage // present when Status == "ok"
	ErrorMessage string          // present when Status == "err"
}

// wire-level shape:
//
//	{
//	  "status": "ok" | "err",
//	  "response": <object or string>
//	}
type rawResponse struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// UnmarshalJSON handles both the "ok" (object) and "err" (string) variants.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal raw response: %w", err)
	}

	r.Status = raw.Status
	r.Data = nil
	r.ErrorMessage = ""

	switch raw.Status {
	case "ok":
		r.Data = raw.Response

	case "err":
		var msg string
		if err := json.Unmarshal(raw.Response, &msg); err != nil {
			return fmt.Errorf("unmarshal error response body: %w", err)
		}
		r.ErrorMessage = msg

	default:
		// Unknown status: stash the raw body as the message
		var msg string
		if err := json.Unmarshal(raw.Response, &msg); err != nil {
			msg = string(raw.Response)
		}
		r.ErrorMessage = msg
	}

	return nil
}

func (r Response) IsOK() bool {
	return r.Status == "ok"
}

func (r Response) IsErr() bool {
	return r.Status == "err"
}
