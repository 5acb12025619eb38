package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

// placeholderPattern matches a non-nested {{field}} marker.
var placeholderPattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// Render substitutes every {{field}} placeholder in the template's subject
// and bodies with the matching record field value.
//
// The triple is serialized to a single JSON document so one scan covers all
// three parts, then deserialized back after substitution. Substituted values
// have literal newlines converted to <br /> and are then escaped for
// re-embedding in a JSON string; the template's own literal text is escaped
// exactly once, by the serializer, so it is never double-escaped.
// Placeholders naming absent fields render as "", and no {{...}} token
// survives the scan.
func Render(tpl models.Template, rec models.Record) (models.RenderedMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tpl); err != nil {
		return models.RenderedMessage{}, fmt.Errorf("serializing template: %w", err)
	}

	substituted := placeholderPattern.ReplaceAllStringFunc(buf.String(), func(m string) string {
		name := strings.TrimSpace(m[2 : len(m)-2])
		value := strings.ReplaceAll(rec.Get(name), "\n", "<br />")
		return escapeForJSON(value)
	})

	var msg models.RenderedMessage
	if err := json.Unmarshal([]byte(substituted), &msg); err != nil {
		return models.RenderedMessage{}, fmt.Errorf("deserializing rendered message: %w", err)
	}
	return msg, nil
}

// escapeForJSON escapes a substituted value for embedding inside an
// already-serialized JSON string. Backslash must be first so later escapes
// are not themselves re-escaped; the rest follow in a fixed order.
func escapeForJSON(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `/`, `\/`)
	s = strings.ReplaceAll(s, "\b", `\b`)
	s = strings.ReplaceAll(s, "\f", `\f`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
