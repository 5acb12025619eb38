package sheetmerge

import "errors"

// ErrEmptySheet indicates the worksheet has no rows at all, not even a
// header.
var ErrEmptySheet = errors.New("sheet has no rows")

// ErrNoDraftSource indicates the config names neither a drafts directory nor
// an IMAP mailbox.
var ErrNoDraftSource = errors.New("config: drafts.dir or drafts.imap must be set")

// ErrNoTemplateFile indicates a copy run was requested without a template
// file configured.
var ErrNoTemplateFile = errors.New("config: drive.template is required for copy runs")
