//go:build cgo_sqlite
// +build cgo_sqlite

package verses

import (
	_ "github.com/mattn/go-sqlite3"
)

const SQLiteDriverName = "sqlite3"
