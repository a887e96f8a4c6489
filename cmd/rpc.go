package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fgrehm/surf/internal/flow"
)

// ErrInvalidRequest is returned when the launcher argument cannot be decoded
// or carries parameters of the wrong shape.
var ErrInvalidRequest = errors.New("invalid request")

// parseRequest decodes the JSON argument passed by the launcher. Anything
// but a JSON object is rejected, including "null".
func parseRequest(raw string) (*flow.Request, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidRequest)
	}
	var req flow.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return &req, nil
}

// dispatch runs req. Queries write a flow.Response to out; launches write
// nothing. Unknown methods are ignored.
func (a *app) dispatch(ctx context.Context, out io.Writer, req *flow.Request) error {
	switch req.Method {
	case flow.MethodQuery:
		q, err := stringParam(req.Parameters, 0, false)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(flow.Response{Result: a.handler.Query(ctx, q)}); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}

	case flow.MethodOpenWorkspace:
		exe, target, err := launchParams(req.Parameters)
		if err != nil {
			return err
		}
		a.launcher.OpenWorkspace(exe, target)

	case flow.MethodOpenRemote:
		exe, host, err := launchParams(req.Parameters)
		if err != nil {
			return err
		}
		a.launcher.OpenRemote(exe, host)

	default:
		logger.Debug("ignoring unsupported method", "method", req.Method)
	}
	return nil
}

// launchParams returns the executable and target of an open_* request.
func launchParams(params []json.RawMessage) (string, string, error) {
	exe, err := stringParam(params, 0, true)
	if err != nil {
		return "", "", err
	}
	target, err := stringParam(params, 1, true)
	if err != nil {
		return "", "", err
	}
	return exe, target, nil
}

// stringParam decodes params[i] as a string. A missing or null optional
// parameter yields "".
func stringParam(params []json.RawMessage, i int, required bool) (string, error) {
	if i >= len(params) || string(params[i]) == "null" {
		if required {
			return "", fmt.Errorf("%w: missing parameter %d", ErrInvalidRequest, i)
		}
		return "", nil
	}
	var s string
	if err := json.Unmarshal(params[i], &s); err != nil {
		return "", fmt.Errorf("%w: parameter %d is not a string", ErrInvalidRequest, i)
	}
	if required && s == "" {
		return "", fmt.Errorf("%w: parameter %d is empty", ErrInvalidRequest, i)
	}
	return s, nil
}
