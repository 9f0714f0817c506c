package storage

// Schema DDL for SQLite snapshots.
const (
	createSnapshot = `CREATE TABLE snapshot (
    version INTEGER NOT NULL
);`

	createContacts = `CREATE TABLE contacts (
    contact_id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    name TEXT NOT NULL
);`

	createContactFields = `CREATE TABLE contact_fields (
    contact_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    tag TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (contact_id, ordinal),
    FOREIGN KEY (contact_id) REFERENCES contacts(contact_id) ON DELETE CASCADE
);`
)

// Index DDL.
const (
	idxContactsPosition = `CREATE INDEX idx_contacts_position ON contacts(position);`
	idxContactsName     = `CREATE INDEX idx_contacts_name ON contacts(name);`
	idxFieldsTag        = `CREATE INDEX idx_contact_fields_tag ON contact_fields(tag, value);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSnapshot,
	createContacts,
	createContactFields,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxContactsPosition,
	idxContactsName,
	idxFieldsTag,
}
