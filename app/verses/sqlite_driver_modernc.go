//go:build !cgo_sqlite
// +build !cgo_sqlite

package verses

import (
	_ "modernc.org/sqlite"
)

const SQLiteDriverName = "sqlite"
