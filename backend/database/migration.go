package database

type MigrationId int

type migration struct {
	id          MigrationId
	description string
	query       string
}

var migrations = []migration{
	{
		id:          0,
		description: "Initial Tables",
		query: `
			CREATE TABLE photo (
			    id TEXT PRIMARY KEY,
			    checksum TEXT NOT NULL,
			    viewed INTEGER NOT NULL DEFAULT 0
			);

			CREATE INDEX photo_viewed_idx ON photo (viewed);

			CREATE TABLE settings (
			    key TEXT PRIMARY KEY,
			    value TEXT NOT NULL
			);
		`,
	},
}
