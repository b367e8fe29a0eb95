package database

type Photo struct {
	Id       string `db:"id"`
	Checksum string `db:"checksum"`
	Viewed   bool   `db:"viewed"`
}

type Setting struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

type Migration struct {
	Id MigrationId `db:"id"`
}
