package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/engine"
	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

func TestRenderRoundTrip(t *testing.T) {
	tpl := models.Template{
		Subject: "Invoice for {{Name}}",
		Text:    "Dear {{Name}}, your total is {{Total}}.",
		HTML:    "<p>Dear <b>{{Name}}</b>, your total is {{Total}}.</p>",
	}
	rec := models.Record{Row: 2, Fields: map[string]string{
		"Name":  "Alice",
		"Total": "42.50",
	}}

	msg, err := engine.Render(tpl, rec)
	require.NoError(t, err)
	require.Equal(t, "Invoice for Alice", msg.Subject)
	require.Equal(t, "Dear Alice, your total is 42.50.", msg.Text)
	require.Equal(t, "<p>Dear <b>Alice</b>, your total is 42.50.</p>", msg.HTML)

	require.NotContains(t, msg.Subject, "{{")
	require.NotContains(t, msg.Text, "{{")
	require.NotContains(t, msg.HTML, "{{")
}

func TestRenderMissingFieldIsEmpty(t *testing.T) {
	tpl := models.Template{Subject: "Hi {{Nobody}}", Text: "x{{Nobody}}y"}
	rec := models.Record{Row: 2, Fields: map[string]string{"Name": "Alice"}}

	msg, err := engine.Render(tpl, rec)
	require.NoError(t, err)
	require.Equal(t, "Hi ", msg.Subject)
	require.Equal(t, "xy", msg.Text)
	require.NotContains(t, msg.Text, "{{")
}

func TestRenderEscapesSubstitutedValues(t *testing.T) {
	tpl := models.Template{Text: "note: {{Note}}"}
	rec := models.Record{Row: 2, Fields: map[string]string{
		"Note": `back\slash "quoted"` + "\nsecond line",
	}}

	msg, err := engine.Render(tpl, rec)
	require.NoError(t, err)
	// The backslash and quotes survive the JSON round trip; the newline
	// becomes a line-break marker.
	require.Equal(t, `note: back\slash "quoted"<br />second line`, msg.Text)
}

func TestRenderNewlineBecomesLineBreak(t *testing.T) {
	tpl := models.Template{Text: "{{Body}}"}
	rec := models.Record{Row: 2, Fields: map[string]string{"Body": "a\nb\nc"}}

	msg, err := engine.Render(tpl, rec)
	require.NoError(t, err)
	require.Equal(t, "a<br />b<br />c", msg.Text)
}

func TestRenderSlashAndTabSurvive(t *testing.T) {
	tpl := models.Template{Text: "{{V}}"}
	rec := models.Record{Row: 2, Fields: map[string]string{"V": "a/b\tc\rd"}}

	msg, err := engine.Render(tpl, rec)
	require.NoError(t, err)
	require.Equal(t, "a/b\tc\rd", msg.Text)
}

func TestRenderDoesNotDoubleEscapeTemplateText(t *testing.T) {
	tpl := models.Template{Text: `say "hi" to {{Name}} \ friends`}
	rec := models.Record{Row: 2, Fields: map[string]string{"Name": "Bob"}}

	msg, err := engine.Render(tpl, rec)
	require.NoError(t, err)
	require.Equal(t, `say "hi" to Bob \ friends`, msg.Text)
}

func TestRenderNoPlaceholders(t *testing.T) {
	tpl := models.Template{Subject: "plain", Text: "no markers here", HTML: "<p>none</p>"}
	msg, err := engine.Render(tpl, models.Record{Row: 2, Fields: map[string]string{}})
	require.NoError(t, err)
	require.Equal(t, models.RenderedMessage{Subject: "plain", Text: "no markers here", HTML: "<p>none</p>"}, msg)
}

func TestRenderPlaceholderNameTrimmed(t *testing.T) {
	tpl := models.Template{Text: "{{ Name }}"}
	rec := models.Record{Row: 2, Fields: map[string]string{"Name": "Alice"}}

	msg, err := engine.Render(tpl, rec)
	require.NoError(t, err)
	require.Equal(t, "Alice", msg.Text)
}
