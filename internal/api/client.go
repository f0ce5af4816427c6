package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
)

// Doer is the transport; *network.Client satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
	URL(path string, query url.Values) string
}

// Client wraps the SuitLink REST API. Each resource lives in its own file.
type Client struct {
	doer   Doer
	logger zerolog.Logger
}

func New(doer Doer, logger zerolog.Logger) *Client {
	return &Client{doer: doer, logger: logger}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Errors  json.RawMessage `json:"errors"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, fhttp.MethodGet, path, query, nil, "", out)
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, nil, payload, "application/json", out)
}

// upload sends one file as a multipart form under field.
func (c *Client) upload(ctx context.Context, method, path, field, filePath string, out any) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filepath.Base(filePath))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return c.do(ctx, method, path, nil, &buf, writer.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	req, err := fhttp.NewRequestWithContext(ctx, method, c.doer.URL(path, query), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &Error{Kind: KindTransient, Message: "Network error. Check your connection and try again.", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Kind: KindTransient, Message: "Failed to read response", Err: err}
	}

	var env envelope
	empty := len(bytes.TrimSpace(raw)) == 0
	if !empty {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 400 {
				return newError(resp.StatusCode, envelope{Message: fhttp.StatusText(resp.StatusCode)})
			}
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	if resp.StatusCode >= 400 || (!empty && !env.Success) {
		return newError(resp.StatusCode, env)
	}

	if out == nil || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func newError(status int, env envelope) *Error {
	fields := parseFieldErrors(env.Errors)
	message := env.Message
	if message == "" {
		message = "An error occurred"
	}
	kind, reason := Classify(status, env.Code, message, len(fields) > 0)
	return &Error{
		Status:           status,
		Message:          message,
		Code:             env.Code,
		ValidationErrors: fields,
		Kind:             kind,
		Reason:           reason,
	}
}

// parseFieldErrors accepts {"field": "msg"}, {"field": ["msg"]} and
// [{"field"|"path": ..., "message"|"msg": ...}].
func parseFieldErrors(raw json.RawMessage) map[string]string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	out := map[string]string{}
	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(raw, &asMap); err == nil {
		for field, value := range asMap {
			var text string
			if json.Unmarshal(value, &text) == nil {
				out[field] = text
				continue
			}
			var list []string
			if json.Unmarshal(value, &list) == nil && len(list) > 0 {
				out[field] = list[0]
			}
		}
		return nonEmpty(out)
	}

	var asList []struct {
		Field   string `json:"field"`
		Path    string `json:"path"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &asList); err == nil {
		for _, item := range asList {
			field := item.Field
			if field == "" {
				field = item.Path
			}
			msg := item.Message
			if msg == "" {
				msg = item.Msg
			}
			if field == "" {
				field = "_"
			}
			out[field] = msg
		}
	}
	return nonEmpty(out)
}

func nonEmpty(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}

func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
}

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s id is required", kind)
	}
	return nil
}

var errEmptyPatch = errors.New("nothing to update")
