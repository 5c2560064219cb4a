// Note commands manage free-form dated notes.
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
	noteAddDate    string
	noteAddContent string
	noteAddPeople  []string

	noteEditID int64

	noteRemoveID int64

	noteListContent string
	noteListPerson  string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new note",
	Long: `Add records a note, optionally linked to people.

Date defaults to today. People are referenced by name and must already
exist.

Example:
  kith note add --content "Ana started a new job"
  kith note add --content "Met Ben's sister" --person Ben --date 2026-08-30`,
	RunE: runNoteAdd,
}

var noteEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a note in your editor",
	Long: `Edit opens the note in $EDITOR as a fillable form and saves the
result when the editor exits.

Example:
  kith note edit --id 12`,
	RunE: runNoteEdit,
}

var noteRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a note",
	Long: `Remove deletes a note from the store.

Example:
  kith note remove --id 12`,
	RunE: runNoteRemove,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List shows all notes, optionally filtered by content substring or
by linked person name (both case-insensitive).

Example:
  kith note list
  kith note list --content job
  kith note list --person ana`,
	RunE: runNoteList,
}

func init() {
	noteAddCmd.Flags().StringVar(&noteAddDate, "date", "", "date as YYYY-MM-DD (default: today)")
	noteAddCmd.Flags().StringVar(&noteAddContent, "content", "", "note content (required)")
	noteAddCmd.Flags().StringArrayVar(&noteAddPeople, "person", nil, "linked person name (repeatable)")
	_ = noteAddCmd.MarkFlagRequired("content")

	noteEditCmd.Flags().Int64Var(&noteEditID, "id", 0, "id of the note to edit")
	_ = noteEditCmd.MarkFlagRequired("id")

	noteRemoveCmd.Flags().Int64Var(&noteRemoveID, "id", 0, "id of the note to remove")
	_ = noteRemoveCmd.MarkFlagRequired("id")

	noteListCmd.Flags().StringVar(&noteListContent, "content", "", "filter by content substring")
	noteListCmd.Flags().StringVar(&noteListPerson, "person", "", "filter by linked person name")

	noteCmd.AddCommand(noteAddCmd, noteEditCmd, noteRemoveCmd, noteListCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	date, err := parseRequiredDate(noteAddDate)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	people, err := resolvePeople(backend, noteAddPeople)
	if err != nil {
		return err
	}

	note := types.NewNote(date, noteAddContent, people)
	if err := backend.AddNote(note); err != nil {
		return fmt.Errorf("add note: %w", err)
	}

	fmt.Printf("Added note: id %d\n", note.ID)
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	note, err := backend.GetNoteByID(noteEditID)
	if err != nil {
		return err
	}

	initial := editor.RenderNote(noteToFields(note))
	edited, err := editor.Edit(initial)
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	fields, err := editor.ParseNote(edited)
	if err != nil {
		return err
	}

	if err := applyNoteFields(backend, note, fields); err != nil {
		return err
	}

	if err := backend.SaveNote(note); err != nil {
		return fmt.Errorf("save note: %w", err)
	}

	fmt.Printf("Saved note: id %d\n", note.ID)
	return nil
}

func runNoteRemove(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	note, err := backend.GetNoteByID(noteRemoveID)
	if err != nil {
		return err
	}

	if err := backend.RemoveNote(note); err != nil {
		return fmt.Errorf("remove note: %w", err)
	}

	fmt.Printf("Removed note: id %d\n", note.ID)
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	var notes []types.Note
	switch {
	case noteListContent != "":
		notes, err = backend.GetNotesByContent(noteListContent)
	case noteListPerson != "":
		notes, err = backend.GetNotesByPerson(noteListPerson)
	default:
		notes, err = backend.GetAllNotes()
	}
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	printNoteTable(notes)
	return nil
}

func noteToFields(n *types.Note) editor.NoteFields {
	return editor.NoteFields{
		Date:    types.FormatDate(n.Date),
		Content: n.Content,
		People:  types.PersonNames(n.People),
	}
}

func applyNoteFields(backend *sqlite.Backend, n *types.Note, f editor.NoteFields) error {
	date, err := types.ParseDate(f.Date)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}

	people, err := resolvePeople(backend, f.People)
	if err != nil {
		return err
	}

	n.Date = date
	n.Content = f.Content
	n.People = people
	return nil
}

func printNoteTable(notes []types.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tDATE\tCONTENT\tPEOPLE")
	fmt.Fprintln(w, "--\t----\t-------\t------")
	for _, n := range notes {
		content := n.Content
		if len(content) > 60 {
			content = content[:57] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			n.ID,
			types.FormatDate(n.Date),
			content,
			strings.Join(types.PersonNames(n.People), ","),
		)
	}
	w.Flush()
	printTrimmed(sb.String())

	fmt.Printf("Total: %d note(s)\n", len(notes))
}
