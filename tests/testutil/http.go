package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/decora/storefront/internal/application/storefront"
	"github.com/decora/storefront/internal/interfaces/http/dto"
)

// Envelope mirrors dto.Response with the payload left undecoded
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// Response is a recorded API reply
type Response struct {
	Code     int
	Header   http.Header
	Body     []byte
	Envelope Envelope
}

// ErrorCode returns the envelope's error code, or "" on success
func (r *Response) ErrorCode() string {
	if r.Envelope.Error == nil {
		return ""
	}
	return r.Envelope.Error.Code
}

// Decode unmarshals the envelope's data into v
func (r *Response) Decode(v any) error {
	if len(r.Envelope.Data) == 0 {
		return fmt.Errorf("response %d carries no data: %s", r.Code, r.Body)
	}
	return json.Unmarshal(r.Envelope.Data, v)
}

// DecodeData unmarshals the envelope's data as T
func DecodeData[T any](r *Response) (T, error) {
	var v T
	err := r.Decode(&v)
	return v, err
}

// Do sends a JSON request through the engine. A non-empty token is sent
// as a bearer credential.
func (s *Storefront) Do(method, path, token string, body any) (*Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)

	resp := &Response{Code: w.Code, Header: w.Header(), Body: w.Body.Bytes()}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(resp.Body, &resp.Envelope); err != nil {
			return nil, fmt.Errorf("decode %s %s response %q: %w", method, path, resp.Body, err)
		}
	}
	return resp, nil
}

// StartSession opens a session and returns its bearer token
func (s *Storefront) StartSession() (string, error) {
	resp, err := s.Do(http.MethodPost, "/api/v1/sessions", "", nil)
	if err != nil {
		return "", err
	}
	if resp.Code != http.StatusCreated {
		return "", fmt.Errorf("start session: status %d: %s", resp.Code, resp.Body)
	}
	sess, err := DecodeData[storefront.SessionResponse](resp)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}
