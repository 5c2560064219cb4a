// Person commands manage the people in the store.
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
	personAddName     string
	personAddBirthday string
	personAddContact  string

	personEditID   int64
	personEditName string

	personRemoveID   int64
	personRemoveName string

	personListName string
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage people",
}

var personAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new person",
	Long: `Add creates a new person with the given name.

Birthday is YYYY-MM-DD, or MM-DD when the year is unknown. Contact info
is a comma-separated list of kind:value pairs.

Example:
  kith person add --name "Ana"
  kith person add --name "Ana" --birthday 1990-03-14 --contact "phone:555-0100,email:ana@example.com"`,
	RunE: runPersonAdd,
}

var personEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a person in your editor",
	Long: `Edit opens the person in $EDITOR as a fillable form and saves the
result when the editor exits.

Example:
  kith person edit --name "Ana"
  kith person edit --id 3`,
	RunE: runPersonEdit,
}

var personRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a person",
	Long: `Remove deletes a person from the store.

Example:
  kith person remove --name "Ana"
  kith person remove --id 3`,
	RunE: runPersonRemove,
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List people",
	Long: `List shows all people, or the people whose name contains the
--name filter (case-insensitive).

Example:
  kith person list
  kith person list --name ana`,
	RunE: runPersonList,
}

func init() {
	personAddCmd.Flags().StringVar(&personAddName, "name", "", "name for the person (required)")
	personAddCmd.Flags().StringVar(&personAddBirthday, "birthday", "", "birthday as YYYY-MM-DD or MM-DD")
	personAddCmd.Flags().StringVar(&personAddContact, "contact", "", "comma-separated kind:value pairs")
	_ = personAddCmd.MarkFlagRequired("name")

	personEditCmd.Flags().Int64Var(&personEditID, "id", 0, "id of the person to edit")
	personEditCmd.Flags().StringVar(&personEditName, "name", "", "name of the person to edit")

	personRemoveCmd.Flags().Int64Var(&personRemoveID, "id", 0, "id of the person to remove")
	personRemoveCmd.Flags().StringVar(&personRemoveName, "name", "", "name of the person to remove")

	personListCmd.Flags().StringVar(&personListName, "name", "", "filter by name substring")

	personCmd.AddCommand(personAddCmd, personEditCmd, personRemoveCmd, personListCmd)
}

func runPersonAdd(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	birthday, err := parseOptionalDate(personAddBirthday)
	if err != nil {
		return fmt.Errorf("parse birthday: %w", err)
	}

	contacts, err := types.ParseContactList(personAddContact)
	if err != nil {
		return fmt.Errorf("parse contact info: %w", err)
	}

	person, err := types.NewPerson(personAddName, birthday, contacts)
	if err != nil {
		return err
	}

	if err := backend.AddPerson(person); err != nil {
		return fmt.Errorf("add person: %w", err)
	}

	fmt.Printf("Added person: %s (id %d)\n", person.Name, person.ID)
	return nil
}

func runPersonEdit(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	person, err := findPerson(backend, personEditID, personEditName)
	if err != nil {
		return err
	}

	initial := editor.RenderPerson(personToFields(person))
	edited, err := editor.Edit(initial)
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	fields, err := editor.ParsePerson(edited)
	if err != nil {
		return err
	}

	if err := applyPersonFields(person, fields); err != nil {
		return err
	}

	if err := backend.SavePerson(person); err != nil {
		return fmt.Errorf("save person: %w", err)
	}

	fmt.Printf("Saved person: %s (id %d)\n", person.Name, person.ID)
	return nil
}

func runPersonRemove(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	person, err := findPerson(backend, personRemoveID, personRemoveName)
	if err != nil {
		return err
	}

	if err := backend.RemovePerson(person); err != nil {
		return fmt.Errorf("remove person: %w", err)
	}

	fmt.Printf("Removed person: %s (id %d)\n", person.Name, person.ID)
	return nil
}

func runPersonList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var people []types.Person
	if personListName != "" {
		people, err = backend.GetPeopleByName(personListName)
	} else {
		people, err = backend.GetAllPeople()
	}
	if err != nil {
		return fmt.Errorf("list people: %w", err)
	}

	printPersonTable(people)
	return nil
}

// findPerson resolves a person from either an id or an exact name.
func findPerson(backend *sqlite.Backend, id int64, name string) (*types.Person, error) {
	switch {
	case id != 0:
		return backend.GetPersonByID(id)
	case name != "":
		return backend.GetPersonByName(name)
	default:
		return nil, fmt.Errorf("%w: either --id or --name is required", types.ErrInvalidInput)
	}
}

func personToFields(p *types.Person) editor.PersonFields {
	contacts := make([]string, len(p.ContactInfo))
	for i, ci := range p.ContactInfo {
		contacts[i] = ci.String()
	}
	return editor.PersonFields{
		Name:        p.Name,
		Birthday:    formatOptionalDate(p.Birthday),
		ContactInfo: contacts,
	}
}

func applyPersonFields(p *types.Person, f editor.PersonFields) error {
	if f.Name == "" {
		return types.ErrInvalidName
	}

	birthday, err := parseOptionalDate(f.Birthday)
	if err != nil {
		return fmt.Errorf("parse birthday: %w", err)
	}

	contacts, err := types.ParseContactList(strings.Join(f.ContactInfo, ","))
	if err != nil {
		return fmt.Errorf("parse contact info: %w", err)
	}
	for i := range contacts {
		contacts[i].PersonID = p.ID
	}

	p.Name = f.Name
	p.Birthday = birthday
	p.ContactInfo = contacts
	return nil
}

func printPersonTable(people []types.Person) {
	if len(people) == 0 {
		fmt.Println("No people found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tNAME\tBIRTHDAY\tCONTACT")
	fmt.Fprintln(w, "--\t----\t--------\t-------")
	for _, p := range people {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			p.ID,
			p.Name,
			formatOptionalDate(p.Birthday),
			types.FormatContactList(p.ContactInfo),
		)
	}
	w.Flush()
	printTrimmed(sb.String())

	fmt.Printf("Total: %d person(s)\n", len(people))
}
