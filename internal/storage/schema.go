package storage

// Schema holds the base table definitions. Applying it is always safe:
// every statement is CREATE ... IF NOT EXISTS and never touches existing
// rows. Column names match the on-disk layout of existing resepbunda.db
// files, so a database created by an older build opens cleanly.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    fullName TEXT,
    bio TEXT,
    avatarUrl TEXT,
    badgePrimary TEXT,
    badgeSecondary TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session (
    id INTEGER PRIMARY KEY NOT NULL,
    is_logged_in INTEGER NOT NULL,
    email TEXT NOT NULL,
    logged_in_at TEXT
);

CREATE TABLE IF NOT EXISTS recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    creator TEXT,
    creatorType TEXT,
    creator_email TEXT,
    cookingTime TEXT,
    category TEXT,
    isPrivate INTEGER DEFAULT 0,
    rating REAL,
    calories TEXT,
    ingredients TEXT,
    steps TEXT,
    image TEXT
);

CREATE TABLE IF NOT EXISTS saved_recipes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_email TEXT NOT NULL,
    recipe_id INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE(user_email, recipe_id)
);
`

// Migration is one numbered step of additive schema evolution. Migrations
// run in Version order on every Open. SQLite has no ALTER TABLE ... ADD
// COLUMN IF NOT EXISTS, so a column addition signals "duplicate column
// name" when it already ran; the runner treats that as already-migrated.
type Migration struct {
	Version    int
	Name       string
	Statements []string
}

// Migrations is the ordered list applied after the base schema. Databases
// created before a given column existed pick it up here; fresh databases
// already have every column and each ALTER is swallowed as a no-op.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "users profile columns",
		Statements: []string{
			"ALTER TABLE users ADD COLUMN fullName TEXT",
			"ALTER TABLE users ADD COLUMN bio TEXT",
			"ALTER TABLE users ADD COLUMN avatarUrl TEXT",
			"ALTER TABLE users ADD COLUMN badgePrimary TEXT",
			"ALTER TABLE users ADD COLUMN badgeSecondary TEXT",
		},
	},
	{
		Version: 2,
		Name:    "recipes creator email",
		Statements: []string{
			"ALTER TABLE recipes ADD COLUMN creator_email TEXT",
		},
	},
	{
		Version: 3,
		Name:    "recipes image",
		Statements: []string{
			"ALTER TABLE recipes ADD COLUMN image TEXT",
		},
	},
}
