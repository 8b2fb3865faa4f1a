package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pointsCollection string
	pointsIDs        []string
	pointsTitle      string
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Manage individual points",
}

var pointsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete points by id or by document title",
	Long: `Deletes points from a collection, either by id (repeat --id) or every
point of a document (--title). Deleting by title removes chunks left over
when a document shrank between ingestions.`,
	Args: cobra.NoArgs,
	RunE: runPointsDelete,
}

func init() {
	pointsDeleteCmd.Flags().StringVarP(&pointsCollection, "collection", "c", "", "collection (default from config)")
	pointsDeleteCmd.Flags().StringSliceVar(&pointsIDs, "id", nil, "point id to delete (repeatable)")
	pointsDeleteCmd.Flags().StringVar(&pointsTitle, "title", "", "delete every point of this document title")
	pointsDeleteCmd.MarkFlagsMutuallyExclusive("id", "title")
	pointsDeleteCmd.MarkFlagsOneRequired("id", "title")

	pointsCmd.AddCommand(pointsDeleteCmd)
	rootCmd.AddCommand(pointsCmd)
}

func runPointsDelete(cmd *cobra.Command, _ []string) error {
	collection := pointsCollection
	if collection == "" {
		name, err := collectionArg(nil)
		if err != nil {
			return err
		}
		collection = name
	}
	if err := requireServices(cmd); err != nil {
		return err
	}
	if collectionService == nil {
		return errors.New("collection service not configured")
	}

	if pointsTitle != "" {
		if err := collectionService.DeleteByTitle(cmd.Context(), collection, pointsTitle); err != nil {
			return fmt.Errorf("delete points: %w", err)
		}
		cmd.Printf("Deleted points of %q from %q\n", pointsTitle, collection)
		return nil
	}

	if err := collectionService.DeletePoints(cmd.Context(), collection, pointsIDs); err != nil {
		return fmt.Errorf("delete points: %w", err)
	}
	cmd.Printf("Deleted %d point(s) from %q\n", len(pointsIDs), collection)
	return nil
}
