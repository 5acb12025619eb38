// Package main provides the CLI entry point for sheetmerge.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge"
	"github.com/rowkit/sheetmerge/pkg/sheetmerge/drive"
	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

var (
	configPath string
	subject    string
	listKind   string
	toSheet    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetmerge",
		Short: "Spreadsheet-driven batch mail merge and file tooling",
		Long: `sheetmerge reads a worksheet of records and performs batch operations
against them: a mail-merge send using a stored draft as template, bulk
template-file copies, bulk folder creation and folder listings. Per-row
results are written back into the sheet, so re-running only touches rows
that have no result yet.`,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "sheetmerge.yaml", "Path to the yaml config file")

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Send one email per unprocessed row using a draft as template",
		RunE:  runSend,
	}
	sendCmd.Flags().StringVarP(&subject, "subject", "s", "", "Subject of the draft to use as template")
	sendCmd.MarkFlagRequired("subject")

	copyCmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the template file once per unprocessed row",
		RunE:  runCopy,
	}

	mkdirCmd := &cobra.Command{
		Use:   "mkdir",
		Short: "Create one folder per unprocessed row",
		RunE:  runMkdir,
	}

	listCmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List a folder's files and subfolders",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runList,
	}
	listCmd.Flags().StringVar(&listKind, "kind", "all", "Entries to list: files, folders, all")
	listCmd.Flags().BoolVar(&toSheet, "to-sheet", false, "Write the listing into the sheet's filename/url columns")

	rootCmd.AddCommand(sendCmd, copyCmd, mkdirCmd, listCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := sheetmerge.LoadConfig(configPath)
	if err != nil {
		return err
	}
	rep, err := sheetmerge.SendEmails(cmd.Context(), cfg, subject)
	if err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	printReport("sent", rep)
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	cfg, err := sheetmerge.LoadConfig(configPath)
	if err != nil {
		return err
	}
	rep, err := sheetmerge.CreateCopies(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	printReport("copied", rep)
	return nil
}

func runMkdir(cmd *cobra.Command, args []string) error {
	cfg, err := sheetmerge.LoadConfig(configPath)
	if err != nil {
		return err
	}
	rep, err := sheetmerge.CreateFolders(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}
	printReport("created", rep)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	var kind drive.ListKind
	switch listKind {
	case "files":
		kind = drive.ListFiles
	case "folders":
		kind = drive.ListFolders
	case "all":
		kind = drive.ListAll
	default:
		return fmt.Errorf("invalid kind: %s (must be files, folders, or all)", listKind)
	}

	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}
	var cfg *sheetmerge.Config
	if dir == "" || toSheet {
		var err error
		cfg, err = sheetmerge.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if dir == "" {
			dir = cfg.Drive.Destination
		}
	}

	entries, err := drive.List(dir, kind)
	if err != nil {
		return err
	}
	if toSheet {
		if err := sheetmerge.WriteListing(cfg, entries); err != nil {
			return fmt.Errorf("writing listing to sheet: %w", err)
		}
		fmt.Printf("wrote %d entries to %s\n", len(entries), cfg.Spreadsheet)
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s\t%s\n", e.Name, e.URL)
	}
	return nil
}

func printReport(verb string, rep *sheetmerge.RunReport) {
	fmt.Printf("%d rows: %d %s, %d skipped, %d failed\n", rep.Processed, rep.Succeeded, verb, rep.Skipped, rep.Failed)
	for _, oc := range rep.Outcomes {
		if oc.Kind == models.OutcomeFailure {
			fmt.Printf("  row %d: %s\n", oc.Row, oc.Value)
		}
	}
}
