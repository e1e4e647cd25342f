// Command keyboard is a plugin that sends keystrokes and virtual key codes on
// macOS through AppleScript.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

type request struct {
	Action  string          `json:"action"`
	Command string          `json:"command"`
	Params  json.RawMessage `json:"params"`
}

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// keystrokeParams is used by the keystroke action.
type keystrokeParams struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"`
}

// keyCodeParams is used by the key-code action. Codes are macOS virtual key
// codes, e.g. 49 space, 123 left arrow, 124 right arrow.
type keyCodeParams struct {
	Code      *int     `json:"code"`
	Modifiers []string `json:"modifiers"`
}

var modifierMap = map[string]string{
	"command": "command down",
	"cmd":     "command down",
	"option":  "option down",
	"alt":     "option down",
	"control": "control down",
	"ctrl":    "control down",
	"shift":   "shift down",
}

func main() {
	os.Exit(run(os.Stdin, os.Stdout, runAppleScript))
}

func run(in io.Reader, out io.Writer, runScript func(string) error) int {
	var req request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return reply(out, fmt.Errorf("decode request: %w", err))
	}

	script, err := buildScript(req)
	if err != nil {
		return reply(out, err)
	}
	return reply(out, runScript(script))
}

func buildScript(req request) (string, error) {
	switch req.Action {
	case "keystroke", "shortcut":
		var p keystrokeParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return "", fmt.Errorf("params: %w", err)
		}
		if p.Key == "" {
			return "", errors.New("key is required")
		}
		return systemEvents(fmt.Sprintf("keystroke %q", p.Key), p.Modifiers), nil
	case "key-code":
		var p keyCodeParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return "", fmt.Errorf("params: %w", err)
		}
		if p.Code == nil || *p.Code < 0 {
			return "", errors.New("code is required")
		}
		return systemEvents(fmt.Sprintf("key code %d", *p.Code), p.Modifiers), nil
	default:
		return "", fmt.Errorf("unknown action: %s", req.Action)
	}
}

func systemEvents(stroke string, modifiers []string) string {
	var using []string
	for _, mod := range modifiers {
		if m, ok := modifierMap[strings.ToLower(mod)]; ok {
			using = append(using, m)
		}
	}
	script := `tell application "System Events" to ` + stroke
	if len(using) > 0 {
		script += " using {" + strings.Join(using, ", ") + "}"
	}
	return script
}

func reply(out io.Writer, err error) int {
	resp := response{Success: err == nil}
	if err != nil {
		resp.Error = err.Error()
	}
	json.NewEncoder(out).Encode(resp)
	return 0
}

func runAppleScript(script string) error {
	output, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
