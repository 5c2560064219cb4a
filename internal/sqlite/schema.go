// Package sqlite implements the SQLite storage backend for the kith
// relationship store: entity tables with soft-delete semantics, join tables
// for person associations, and lookup tables for enumerated kinds.
package sqlite

// Schema DDL. Every data table carries a deleted flag defaulting to 0;
// rows are never physically removed. The database file is the source of
// truth and survives between runs, so all DDL is IF NOT EXISTS.
const (
	createPeople = `CREATE TABLE IF NOT EXISTS people (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    birthday TEXT,
    deleted INTEGER NOT NULL DEFAULT 0
);`

	createActivities = `CREATE TABLE IF NOT EXISTS activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    type INTEGER NOT NULL,
    date TEXT NOT NULL,
    content TEXT NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (type) REFERENCES activity_types(id)
);`

	createReminders = `CREATE TABLE IF NOT EXISTS reminders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    date TEXT NOT NULL,
    description TEXT,
    recurring INTEGER NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (recurring) REFERENCES recurring_types(id)
);`

	createNotes = `CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL,
    content TEXT NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0
);`

	createContactInfo = `CREATE TABLE IF NOT EXISTS contact_info (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    person_id INTEGER NOT NULL,
    contact_info_type_id INTEGER NOT NULL,
    details TEXT NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (person_id) REFERENCES people(id),
    FOREIGN KEY (contact_info_type_id) REFERENCES contact_info_types(id)
);`

	createPeopleActivities = `CREATE TABLE IF NOT EXISTS people_activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    person_id INTEGER NOT NULL,
    activity_id INTEGER NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (person_id) REFERENCES people(id),
    FOREIGN KEY (activity_id) REFERENCES activities(id)
);`

	createPeopleReminders = `CREATE TABLE IF NOT EXISTS people_reminders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    person_id INTEGER NOT NULL,
    reminder_id INTEGER NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (person_id) REFERENCES people(id),
    FOREIGN KEY (reminder_id) REFERENCES reminders(id)
);`

	createPeopleNotes = `CREATE TABLE IF NOT EXISTS people_notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    person_id INTEGER NOT NULL,
    note_id INTEGER NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (person_id) REFERENCES people(id),
    FOREIGN KEY (note_id) REFERENCES notes(id)
);`

	createContactInfoTypes = `CREATE TABLE IF NOT EXISTS contact_info_types (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL UNIQUE
);`

	createActivityTypes = `CREATE TABLE IF NOT EXISTS activity_types (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL UNIQUE
);`

	createRecurringTypes = `CREATE TABLE IF NOT EXISTS recurring_types (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL UNIQUE
);`
)

// Index DDL for the read paths: name searches and join-table walks.
const (
	idxPeopleName            = `CREATE INDEX IF NOT EXISTS idx_people_name ON people(name);`
	idxActivitiesName        = `CREATE INDEX IF NOT EXISTS idx_activities_name ON activities(name);`
	idxRemindersName         = `CREATE INDEX IF NOT EXISTS idx_reminders_name ON reminders(name);`
	idxContactInfoPerson     = `CREATE INDEX IF NOT EXISTS idx_contact_info_person ON contact_info(person_id);`
	idxPeopleActivitiesBoth  = `CREATE INDEX IF NOT EXISTS idx_people_activities ON people_activities(person_id, activity_id);`
	idxPeopleRemindersBoth   = `CREATE INDEX IF NOT EXISTS idx_people_reminders ON people_reminders(person_id, reminder_id);`
	idxPeopleNotesBoth       = `CREATE INDEX IF NOT EXISTS idx_people_notes ON people_notes(person_id, note_id);`
	idxPeopleActivitiesOwner = `CREATE INDEX IF NOT EXISTS idx_people_activities_owner ON people_activities(activity_id);`
	idxPeopleRemindersOwner  = `CREATE INDEX IF NOT EXISTS idx_people_reminders_owner ON people_reminders(reminder_id);`
	idxPeopleNotesOwner      = `CREATE INDEX IF NOT EXISTS idx_people_notes_owner ON people_notes(note_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createContactInfoTypes,
	createActivityTypes,
	createRecurringTypes,
	createPeople,
	createActivities,
	createReminders,
	createNotes,
	createContactInfo,
	createPeopleActivities,
	createPeopleReminders,
	createPeopleNotes,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPeopleName,
	idxActivitiesName,
	idxRemindersName,
	idxContactInfoPerson,
	idxPeopleActivitiesBoth,
	idxPeopleRemindersBoth,
	idxPeopleNotesBoth,
	idxPeopleActivitiesOwner,
	idxPeopleRemindersOwner,
	idxPeopleNotesOwner,
}
