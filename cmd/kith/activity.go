// Activity commands manage logged interactions with people.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/anhofmann/kith/internal/editor"
	"github.com/anhofmann/kith/internal/sqlite"
	"github.com/anhofmann/kith/pkg/types"
)

var (
	activityAddName    string
	activityAddDate    string
	activityAddType    string
	activityAddContent string
	activityAddPeople  []string

	activityEditID int64

	activityRemoveID int64

	activityListName   string
	activityListPerson string
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Manage activities",
}

var activityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new activity",
	Long: `Add records an activity with one or more people.

The activity type is one of: phone, in_person, online. Date defaults to
today. People are referenced by name and must already exist.

Example:
  kith activity add --name "Coffee" --type in_person --person Ana
  kith activity add --name "Call" --type phone --date 2026-08-30 --person Ana --person Ben`,
	RunE: runActivityAdd,
}

var activityEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an activity in your editor",
	Long: `Edit opens the activity in $EDITOR as a fillable form and saves
the result when the editor exits.

Example:
  kith activity edit --id 7`,
	RunE: runActivityEdit,
}

var activityRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove an activity",
	Long: `Remove deletes an activity from the store.

Example:
  kith activity remove --id 7`,
	RunE: runActivityRemove,
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities",
	Long: `List shows all activities, optionally filtered by name substring
and by participant name (both case-insensitive).

Example:
  kith activity list
  kith activity list --name coffee
  kith activity list --person ana`,
	RunE: runActivityList,
}

func init() {
	activityAddCmd.Flags().StringVar(&activityAddName, "name", "", "name for the activity (required)")
	activityAddCmd.Flags().StringVar(&activityAddDate, "date", "", "date as YYYY-MM-DD (default: today)")
	activityAddCmd.Flags().StringVar(&activityAddType, "type", "", "activity type: phone, in_person, online (required)")
	activityAddCmd.Flags().StringVar(&activityAddContent, "content", "", "what happened")
	activityAddCmd.Flags().StringArrayVar(&activityAddPeople, "person", nil, "participant name (repeatable)")
	_ = activityAddCmd.MarkFlagRequired("name")
	_ = activityAddCmd.MarkFlagRequired("type")

	activityEditCmd.Flags().Int64Var(&activityEditID, "id", 0, "id of the activity to edit")
	_ = activityEditCmd.MarkFlagRequired("id")

	activityRemoveCmd.Flags().Int64Var(&activityRemoveID, "id", 0, "id of the activity to remove")
	_ = activityRemoveCmd.MarkFlagRequired("id")

	activityListCmd.Flags().StringVar(&activityListName, "name", "", "filter by name substring")
	activityListCmd.Flags().StringVar(&activityListPerson, "person", "", "filter by participant name")

	activityCmd.AddCommand(activityAddCmd, activityEditCmd, activityRemoveCmd, activityListCmd)
}

func runActivityAdd(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	activityType, err := types.ParseActivityType(activityAddType)
	if err != nil {
		return err
	}

	date, err := parseRequiredDate(activityAddDate)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	people, err := resolvePeople(backend, activityAddPeople)
	if err != nil {
		return err
	}

	activity, err := types.NewActivity(activityAddName, activityType, date, activityAddContent, people)
	if err != nil {
		return err
	}

	if err := backend.AddActivity(activity); err != nil {
		return fmt.Errorf("add activity: %w", err)
	}

	fmt.Printf("Added activity: %s (id %d)\n", activity.Name, activity.ID)
	return nil
}

func runActivityEdit(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	activity, err := backend.GetActivityByID(activityEditID)
	if err != nil {
		return err
	}

	initial := editor.RenderActivity(activityToFields(activity))
	edited, err := editor.Edit(initial)
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	fields, err := editor.ParseActivity(edited)
	if err != nil {
		return err
	}

	if err := applyActivityFields(backend, activity, fields); err != nil {
		return err
	}

	if err := backend.SaveActivity(activity); err != nil {
		return fmt.Errorf("save activity: %w", err)
	}

	fmt.Printf("Saved activity: %s (id %d)\n", activity.Name, activity.ID)
	return nil
}

func runActivityRemove(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	activity, err := backend.GetActivityByID(activityRemoveID)
	if err != nil {
		return err
	}

	if err := backend.RemoveActivity(activity); err != nil {
		return fmt.Errorf("remove activity: %w", err)
	}

	fmt.Printf("Removed activity: %s (id %d)\n", activity.Name, activity.ID)
	return nil
}

func runActivityList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var activities []types.Activity
	switch {
	case activityListName != "":
		activities, err = backend.GetActivitiesByName(activityListName, activityListPerson)
	case activityListPerson != "":
		activities, err = backend.GetActivitiesByPerson(activityListPerson)
	default:
		activities, err = backend.GetAllActivities()
	}
	if err != nil {
		return fmt.Errorf("list activities: %w", err)
	}

	printActivityTable(activities)
	return nil
}

func activityToFields(a *types.Activity) editor.ActivityFields {
	return editor.ActivityFields{
		Name:         a.Name,
		Date:         types.FormatDate(a.Date),
		ActivityType: types.ActivityTypeToken(a.Type),
		Content:      a.Content,
		People:       types.PersonNames(a.People),
	}
}

func applyActivityFields(backend *sqlite.Backend, a *types.Activity, f editor.ActivityFields) error {
	if f.Name == "" {
		return types.ErrInvalidName
	}

	activityType, err := types.ParseActivityType(f.ActivityType)
	if err != nil {
		return err
	}

	date, err := types.ParseDate(f.Date)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	people, err := resolvePeople(backend, f.People)
	if err != nil {
		return err
	}

	a.Name = f.Name
	a.Type = activityType
	a.Date = date
	a.Content = f.Content
	a.People = people
	return nil
}

func printActivityTable(activities []types.Activity) {
	if len(activities) == 0 {
		fmt.Println("No activities found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tTYPE\tDATE\tPEOPLE")
	fmt.Fprintln(w, "--\t----\t----\t----\t------")
	for _, a := range activities {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.Name,
			types.ActivityTypeToken(a.Type),
			types.FormatDate(a.Date),
			strings.Join(types.PersonNames(a.People), ","),
		)
	}
	w.Flush()
	printTrimmed(sb.String())

	fmt.Printf("Total: %d activity(ies)\n", len(activities))
}
