// Reminder commands manage dated follow-ups.
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
	reminderAddName        string
	reminderAddDate        string
	reminderAddRecurring   string
	reminderAddDescription string
	reminderAddPeople      []string

	reminderEditID   int64
	reminderEditName string

	reminderRemoveID   int64
	reminderRemoveName string

	reminderListPerson      string
	reminderListIncludePast bool
)

var reminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Manage reminders",
}

var reminderAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new reminder",
	Long: `Add creates a reminder with the given name and date.

Recurrence is one of: onetime, daily, weekly, fortnightly, monthly,
quarterly, biannual, yearly. It defaults to onetime. People are
referenced by name and must already exist.

Example:
  kith reminder add --name "Ana's birthday" --date 2026-03-14 --recurring yearly --person Ana
  kith reminder add --name "Return book" --date 2026-09-15`,
	RunE: runReminderAdd,
}

var reminderEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a reminder in your editor",
	Long: `Edit opens the reminder in $EDITOR as a fillable form and saves
the result when the editor exits.

Example:
  kith reminder edit --name "Return book"
  kith reminder edit --id 4`,
	RunE: runReminderEdit,
}

var reminderRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a reminder",
	Long: `Remove deletes a reminder from the store.

Example:
  kith reminder remove --name "Return book"
  kith reminder remove --id 4`,
	RunE: runReminderRemove,
}

var reminderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	Long: `List shows upcoming reminders. Past reminders are hidden unless
--include-past is given. --person filters by linked person name.

Example:
  kith reminder list
  kith reminder list --include-past
  kith reminder list --person ana`,
	RunE: runReminderList,
}

func init() {
	reminderAddCmd.Flags().StringVar(&reminderAddName, "name", "", "name for the reminder (required)")
	reminderAddCmd.Flags().StringVar(&reminderAddDate, "date", "", "date as YYYY-MM-DD or MM-DD (required)")
	reminderAddCmd.Flags().StringVar(&reminderAddRecurring, "recurring", "onetime", "recurrence: onetime, daily, weekly, fortnightly, monthly, quarterly, biannual, yearly")
	reminderAddCmd.Flags().StringVar(&reminderAddDescription, "description", "", "what to remember")
	reminderAddCmd.Flags().StringArrayVar(&reminderAddPeople, "person", nil, "linked person name (repeatable)")
	_ = reminderAddCmd.MarkFlagRequired("name")
	_ = reminderAddCmd.MarkFlagRequired("date")

	reminderEditCmd.Flags().Int64Var(&reminderEditID, "id", 0, "id of the reminder to edit")
	reminderEditCmd.Flags().StringVar(&reminderEditName, "name", "", "name of the reminder to edit")

	reminderRemoveCmd.Flags().Int64Var(&reminderRemoveID, "id", 0, "id of the reminder to remove")
	reminderRemoveCmd.Flags().StringVar(&reminderRemoveName, "name", "", "name of the reminder to remove")

	reminderListCmd.Flags().StringVar(&reminderListPerson, "person", "", "filter by linked person name")
	reminderListCmd.Flags().BoolVar(&reminderListIncludePast, "include-past", false, "include reminders dated before today")

	reminderCmd.AddCommand(reminderAddCmd, reminderEditCmd, reminderRemoveCmd, reminderListCmd)
}

func runReminderAdd(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	recurring, err := types.ParseRecurringType(reminderAddRecurring)
	if err != nil {
		return err
	}

	date, err := types.ParseDate(reminderAddDate)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	people, err := resolvePeople(backend, reminderAddPeople)
	if err != nil {
		return err
	}

	reminder, err := types.NewReminder(reminderAddName, date, optionalString(reminderAddDescription), recurring, people)
	if err != nil {
		return err
	}

	if err := backend.AddReminder(reminder); err != nil {
		return fmt.Errorf("add reminder: %w", err)
	}

	fmt.Printf("Added reminder: %s (id %d)\n", reminder.Name, reminder.ID)
	return nil
}

func runReminderEdit(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	reminder, err := findReminder(backend, reminderEditID, reminderEditName)
	if err != nil {
		return err
	}

	initial := editor.RenderReminder(reminderToFields(reminder))
	edited, err := editor.Edit(initial)
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	fields, err := editor.ParseReminder(edited)
	if err != nil {
		return err
	}

	if err := applyReminderFields(reminder, fields); err != nil {
		return err
	}

	if err := backend.SaveReminder(reminder); err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}

	fmt.Printf("Saved reminder: %s (id %d)\n", reminder.Name, reminder.ID)
	return nil
}

func runReminderRemove(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	reminder, err := findReminder(backend, reminderRemoveID, reminderRemoveName)
	if err != nil {
		return err
	}

	if err := backend.RemoveReminder(reminder); err != nil {
		return fmt.Errorf("remove reminder: %w", err)
	}

	fmt.Printf("Removed reminder: %s (id %d)\n", reminder.Name, reminder.ID)
	return nil
}

func runReminderList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var reminders []types.Reminder
	if reminderListPerson != "" {
		reminders, err = backend.GetRemindersByPerson(reminderListPerson)
	} else {
		reminders, err = backend.GetAllReminders(reminderListIncludePast)
	}
	if err != nil {
		return fmt.Errorf("list reminders: %w", err)
	}

	printReminderTable(reminders)
	return nil
}

// findReminder resolves a reminder from either an id or an exact name.
func findReminder(backend *sqlite.Backend, id int64, name string) (*types.Reminder, error) {
	switch {
	case id != 0:
		return backend.GetReminderByID(id)
	case name != "":
		return backend.GetReminderByName(name)
	default:
		return nil, fmt.Errorf("%w: either --id or --name is required", types.ErrInvalidInput)
	}
}

func reminderToFields(r *types.Reminder) editor.ReminderFields {
	return editor.ReminderFields{
		Name:        r.Name,
		Date:        types.FormatDate(r.Date),
		Recurring:   types.RecurringTypeToken(r.Recurring),
		Description: derefOrEmpty(r.Description),
		People:      types.PersonNames(r.People),
	}
}

func applyReminderFields(r *types.Reminder, f editor.ReminderFields) error {
	if f.Name == "" {
		return types.ErrInvalidName
	}

	recurring, err := types.ParseRecurringType(f.Recurring)
	if err != nil {
		return err
	}

	date, err := types.ParseDate(f.Date)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	r.Name = f.Name
	r.Date = date
	r.Recurring = recurring
	r.Description = optionalString(f.Description)
	return nil
}

func printReminderTable(reminders []types.Reminder) {
	if len(reminders) == 0 {
		fmt.Println("No reminders found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tDATE\tRECURRING\tPEOPLE")
	fmt.Fprintln(w, "--\t----\t----\t---------\t------")
	for _, r := range reminders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Name,
			types.FormatDate(r.Date),
			types.RecurringTypeToken(r.Recurring),
			strings.Join(types.PersonNames(r.People), ","),
		)
	}
	w.Flush()
	printTrimmed(sb.String())

	fmt.Printf("Total: %d reminder(s)\n", len(reminders))
}
