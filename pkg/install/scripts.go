package install

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/arthur-debert/macgen/pkg/errors"
	jsonpatch "github.com/evanphx/json-patch/v5"
)

const indent = "  "

type operation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

// PatchScripts sets scripts[key] = command in a package.json document.
// Other scripts and top-level keys are kept in their original order. A
// missing or null scripts object is created.
func PatchScripts(doc []byte, key, command string) ([]byte, error) {
	if key == "" {
		return nil, errors.MissingArgument("scriptKey")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidArgument, "package manifest is not a JSON object").
			WithDetail(errors.DetailArgument, "manifest")
	}

	op := operation{Op: "add", Path: "/scripts/" + escapePointer(key), Value: command}
	switch scripts := bytes.TrimSpace(top["scripts"]); {
	case len(scripts) == 0, bytes.Equal(scripts, []byte("null")):
		op = operation{Op: "add", Path: "/scripts", Value: map[string]string{key: command}}
	case scripts[0] != '{':
		return nil, errors.InvalidArgument("scripts", string(scripts))
	}

	// json-patch copies the encoded value into the document verbatim
	var raw bytes.Buffer
	enc := json.NewEncoder(&raw)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]operation{op}); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest patch")
	}
	patch, err := jsonpatch.DecodePatch(raw.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to decode manifest patch")
	}

	opts := jsonpatch.NewApplyOptions()
	opts.EscapeHTML = false
	out, err := patch.ApplyIndentWithOptions(doc, indent, opts)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidArgument, "failed to set script %s", key)
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out, nil
}

// escapePointer escapes a JSON pointer reference token (RFC 6901)
func escapePointer(token string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(token)
}
