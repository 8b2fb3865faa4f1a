package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

var (
	uploadCollection string
	uploadJSON       bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Manage the upload area",
	Long: `Uploaded files are copied into the uploads directory and ingested one by
one. Removing an uploaded file does not remove its points.`,
}

var uploadAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Copy files into the upload area and ingest them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUploadAdd,
}

var uploadListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded files",
	Args:  cobra.NoArgs,
	RunE:  runUploadList,
}

var uploadRmCmd = &cobra.Command{
	Use:   "rm [name]",
	Short: "Remove an uploaded file",
	Args:  cobra.ExactArgs(1),
	RunE:  runUploadRm,
}

var uploadClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every uploaded file",
	Args:  cobra.NoArgs,
	RunE:  runUploadClear,
}

func init() {
	uploadAddCmd.Flags().StringVarP(&uploadCollection, "collection", "c", "", "target collection (default from config)")
	uploadListCmd.Flags().BoolVar(&uploadJSON, "json", false, "output as JSON")

	uploadCmd.AddCommand(uploadAddCmd)
	uploadCmd.AddCommand(uploadListCmd)
	uploadCmd.AddCommand(uploadRmCmd)
	uploadCmd.AddCommand(uploadClearCmd)
	rootCmd.AddCommand(uploadCmd)
}

func requireUploads(cmd *cobra.Command) error {
	if err := requireServices(cmd); err != nil {
		return err
	}
	if uploadService == nil {
		return errors.New("upload service not configured")
	}
	return nil
}

func runUploadAdd(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	opts := settings.IngestOptions()
	if uploadCollection != "" {
		opts.Collection = uploadCollection
	}

	if err := requireUploads(cmd); err != nil {
		return err
	}

	var failed int
	for _, path := range args {
		report, err := uploadService.Upload(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("upload %s: %w", path, err)
		}
		printReport(cmd, report)
		failed += report.Failed()
	}

	if failed > 0 {
		return fmt.Errorf("%d upload(s) failed to ingest", failed)
	}
	return nil
}

func runUploadList(cmd *cobra.Command, _ []string) error {
	if err := requireUploads(cmd); err != nil {
		return err
	}

	files, err := uploadService.List()
	if err != nil {
		return fmt.Errorf("list uploads: %w", err)
	}

	if uploadJSON {
		return printJSON(cmd, uploadsJSON(files))
	}
	if len(files) == 0 {
		cmd.Println("No uploaded files.")
		return nil
	}
	for _, f := range files {
		cmd.Printf("%-40s %10d  %s\n", f.Name, f.Size, f.ModTime.Format(time.DateTime))
	}
	return nil
}

func uploadsJSON(files []domain.UploadedFile) []map[string]any {
	out := make([]map[string]any, 0, len(files))
	for _, f := range files {
		out = append(out, map[string]any{
			"name":     f.Name,
			"size":     f.Size,
			"modified": f.ModTime.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func runUploadRm(cmd *cobra.Command, args []string) error {
	if err := requireUploads(cmd); err != nil {
		return err
	}
	if err := uploadService.Delete(args[0]); err != nil {
		return fmt.Errorf("remove %s: %w", args[0], err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runUploadClear(cmd *cobra.Command, _ []string) error {
	if err := requireUploads(cmd); err != nil {
		return err
	}
	n, err := uploadService.DeleteAll()
	if err != nil {
		return fmt.Errorf("clear uploads: %w", err)
	}
	cmd.Printf("Removed %d uploaded file(s)\n", n)
	return nil
}
