package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	collectionJSON bool
	collectionYes  bool
)

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Aliases: []string{"collections"},
	Short:   "Manage collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	Args:  cobra.NoArgs,
	RunE:  runCollectionList,
}

var collectionInfoCmd = &cobra.Command{
	Use:   "info [name]",
	Short: "Show dimension, distance and point count of a collection",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCollectionInfo,
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a collection and all of its points",
	Long: `Deletes a collection. On a terminal the approximate number of points is
shown and you are asked to type "yes". Without a terminal the command
refuses unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runCollectionDelete,
}

func init() {
	collectionListCmd.Flags().BoolVar(&collectionJSON, "json", false, "output as JSON")
	collectionInfoCmd.Flags().BoolVar(&collectionJSON, "json", false, "output as JSON")
	collectionDeleteCmd.Flags().BoolVarP(&collectionYes, "yes", "y", false, "skip the confirmation prompt")

	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionInfoCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runCollectionList(cmd *cobra.Command, _ []string) error {
	if err := requireServices(cmd); err != nil {
		return err
	}
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	names, err := collectionService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}

	if collectionJSON {
		if names == nil {
			names = []string{}
		}
		return printJSON(cmd, names)
	}
	if len(names) == 0 {
		cmd.Println("No collections.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runCollectionInfo(cmd *cobra.Command, args []string) error {
	name, err := collectionArg(args)
	if err != nil {
		return err
	}
	if err := requireServices(cmd); err != nil {
		return err
	}
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	info, err := collectionService.Info(cmd.Context(), name)
	if err != nil {
		return err
	}

	if collectionJSON {
		return printJSON(cmd, map[string]any{
			"name":         info.Name,
			"dimension":    info.Dimension,
			"distance":     info.Distance.String(),
			"points_count": info.PointsCount,
		})
	}
	cmd.Printf("Name:      %s\n", info.Name)
	cmd.Printf("Dimension: %d\n", info.Dimension)
	cmd.Printf("Distance:  %s\n", info.Distance)
	cmd.Printf("Points:    ~%d\n", info.PointsCount)
	return nil
}

func runCollectionDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := requireServices(cmd); err != nil {
		return err
	}
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	if !collectionYes {
		if !stdinIsTerminal() {
			return errors.New("refusing to delete without confirmation: stdin is not a terminal, pass --yes")
		}
		info, err := collectionService.Info(cmd.Context(), name)
		if err != nil {
			return err
		}
		cmd.Printf("Collection %q holds about %d point(s). Type \"yes\" to delete it: ", name, info.PointsCount)
		if readLine(cmd.InOrStdin()) != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := collectionService.Delete(cmd.Context(), name); err != nil {
		return err
	}
	cmd.Printf("Deleted collection %q\n", name)
	return nil
}

// collectionArg returns the named collection or the configured default.
func collectionArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	svc, err := requireSettings()
	if err != nil {
		return "", err
	}
	settings, err := svc.Get()
	if err != nil {
		return "", err
	}
	return settings.Collection, nil
}
