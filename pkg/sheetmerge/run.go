package sheetmerge

import (
	"context"
	"time"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/drive"
	"github.com/rowkit/sheetmerge/pkg/sheetmerge/engine"
	"github.com/rowkit/sheetmerge/pkg/sheetmerge/mail"
	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
	"github.com/rowkit/sheetmerge/pkg/sheetmerge/sheet"
)

// SentMarkerFormat is the timestamp layout recorded in the status column for
// a successfully sent message.
const SentMarkerFormat = "2006-01-02 15:04:05"

// RunReport summarizes one batch pass.
type RunReport struct {
	Processed int
	Succeeded int
	Skipped   int
	Failed    int
	Outcomes  []models.RowOutcome
}

func report(outcomes []models.RowOutcome) *RunReport {
	r := &RunReport{Processed: len(outcomes), Outcomes: outcomes}
	for _, oc := range outcomes {
		switch oc.Kind {
		case models.OutcomeSuccess:
			r.Succeeded++
		case models.OutcomeSkipped:
			r.Skipped++
		case models.OutcomeFailure:
			r.Failed++
		}
	}
	return r
}

// draftSource picks the configured template source. A drafts directory wins
// over IMAP when both are configured.
func draftSource(cfg *Config) (mail.DraftSource, error) {
	if cfg.Drafts.Dir != "" {
		return &mail.FileDrafts{Dir: cfg.Drafts.Dir}, nil
	}
	if cfg.Drafts.IMAP != nil {
		return &mail.IMAPDrafts{
			Addr:     cfg.Drafts.IMAP.Addr,
			Username: cfg.Drafts.IMAP.Username,
			Password: cfg.Drafts.IMAP.Password,
			Mailbox:  cfg.Drafts.IMAP.Mailbox,
		}, nil
	}
	return nil, ErrNoDraftSource
}

// SendEmails runs the mail-merge pass: one message per eligible row, using
// the draft whose subject exactly matches as the template. A missing draft
// is fatal before any row is touched.
func SendEmails(ctx context.Context, cfg *Config, subject string) (*RunReport, error) {
	source, err := draftSource(cfg)
	if err != nil {
		return nil, err
	}
	tpl, attachments, err := source.FindBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	sender := &mail.SMTPSender{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	}
	return sendEmails(ctx, cfg, tpl, attachments, sender)
}

// sendEmails is split from SendEmails so tests can inject a fake sender.
func sendEmails(ctx context.Context, cfg *Config, tpl models.Template, attachments []mail.Attachment, sender mail.Sender) (*RunReport, error) {
	ws, err := sheet.Open(cfg.Spreadsheet, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	rows, err := ws.ReadRange()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	header, data := rows[0], rows[1:]

	statusCol, err := engine.RequireColumn(header, cfg.Columns.Status)
	if err != nil {
		return nil, err
	}

	proc := &engine.Processor{
		StatusColumn:  cfg.Columns.Status,
		DrivingColumn: cfg.Columns.Recipient,
		Suppressed:    ws.IsRowSuppressed,
		Action: func(ctx context.Context, rec models.Record, msg models.RenderedMessage) (string, error) {
			_, err := sender.Send(ctx, &mail.Message{
				From:        cfg.SMTP.From,
				To:          rec.Get(cfg.Columns.Recipient),
				Subject:     msg.Subject,
				Text:        msg.Text,
				HTML:        msg.HTML,
				Attachments: attachments,
			})
			if err != nil {
				return "", err
			}
			return time.Now().Format(SentMarkerFormat), nil
		},
	}
	outcomes, err := proc.Run(ctx, header, data, tpl)
	if err != nil {
		return nil, err
	}
	if err := ws.WriteOutcomes(statusCol+1, outcomes); err != nil {
		return nil, err
	}
	if err := ws.Save(); err != nil {
		return nil, err
	}
	return report(outcomes), nil
}

// CreateCopies copies the configured template file once per eligible row,
// named by the filename column, and records each copy's URL in the url
// column. The url column doubles as the status column: a row with a URL is
// done and skipped on re-runs.
func CreateCopies(ctx context.Context, cfg *Config) (*RunReport, error) {
	if cfg.Drive.Template == "" {
		return nil, ErrNoTemplateFile
	}
	action := func(_ context.Context, _ models.Record, msg models.RenderedMessage) (string, error) {
		art, err := drive.CopyTemplate(cfg.Drive.Template, msg.Subject, cfg.Drive.Destination)
		if err != nil {
			return "", err
		}
		return art.URL, nil
	}
	return runDriveBatch(ctx, cfg, cfg.Columns.Filename, action)
}

// CreateFolders creates one folder per eligible row, named by the folder
// column, recording each folder's URL in the url column.
func CreateFolders(ctx context.Context, cfg *Config) (*RunReport, error) {
	action := func(_ context.Context, _ models.Record, msg models.RenderedMessage) (string, error) {
		art, err := drive.CreateFolder(msg.Subject, cfg.Drive.Destination)
		if err != nil {
			return "", err
		}
		return art.URL, nil
	}
	return runDriveBatch(ctx, cfg, cfg.Columns.Folder, action)
}

// runDriveBatch runs a drive-backed pass. The artifact name column is
// rendered per row through the same placeholder path the mail pass uses, so
// name cells may themselves contain {{field}} markers.
func runDriveBatch(ctx context.Context, cfg *Config, nameColumn string, action engine.RowAction) (*RunReport, error) {
	ws, err := sheet.Open(cfg.Spreadsheet, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	defer ws.Close()

	rows, err := ws.ReadRange()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	header, data := rows[0], rows[1:]

	urlCol, err := engine.RequireColumn(header, cfg.Columns.URL)
	if err != nil {
		return nil, err
	}

	proc := &engine.Processor{
		StatusColumn:  cfg.Columns.URL,
		DrivingColumn: nameColumn,
		Suppressed:    ws.IsRowSuppressed,
		Action:        action,
	}
	tpl := models.Template{Subject: "{{" + nameColumn + "}}"}
	outcomes, err := proc.Run(ctx, header, data, tpl)
	if err != nil {
		return nil, err
	}
	if err := ws.WriteOutcomes(urlCol+1, outcomes); err != nil {
		return nil, err
	}
	if err := ws.Save(); err != nil {
		return nil, err
	}
	return report(outcomes), nil
}

// WriteListing writes the entries' names and URLs into the sheet's filename
// and url columns, starting at the first data row.
func WriteListing(cfg *Config, entries []drive.Entry) error {
	ws, err := sheet.Open(cfg.Spreadsheet, cfg.Sheet)
	if err != nil {
		return err
	}
	defer ws.Close()

	rows, err := ws.ReadRange()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrEmptySheet
	}
	header := rows[0]
	if err := engine.ValidateHeader(header); err != nil {
		return err
	}
	nameCol, err := engine.RequireColumn(header, cfg.Columns.Filename)
	if err != nil {
		return err
	}
	urlCol, err := engine.RequireColumn(header, cfg.Columns.URL)
	if err != nil {
		return err
	}

	names := make([]string, len(entries))
	urls := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		urls[i] = e.URL
	}
	if err := ws.WriteColumn(2, nameCol+1, names); err != nil {
		return err
	}
	if err := ws.WriteColumn(2, urlCol+1, urls); err != nil {
		return err
	}
	return ws.Save()
}
