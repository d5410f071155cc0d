package sql

import (
	"bufio"
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var embedded embed.FS

type migration struct {
	order int
	name  string
	path  string
}

func embeddedMigrations() ([]migration, error) {
	var migrations []migration
	err := fs.WalkDir(embedded, "migrations", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		parts := strings.Split(d.Name(), "_")
		order, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid migration %s: %w", d.Name(), err)
		}
		migrations = append(migrations, migration{order: order, name: d.Name(), path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(migrations, func(a, b migration) int {
		return a.order - b.order
	})
	return migrations, nil
}

func (m migration) apply(db Executor) error {
	content, err := embedded.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("readfile %s: %w", m.path, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Split(func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if i := bytes.Index(data, []byte(";")); i >= 0 {
			return i + 1, data[0 : i+1], nil
		}
		return 0, nil, nil
	})
	for scanner.Scan() {
		if _, err := db.Exec(scanner.Text(), nil, nil); err != nil {
			return fmt.Errorf("exec %s: %w", scanner.Text(), err)
		}
	}
	// binding values in pragma statement is not allowed
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", m.order), nil, nil); err != nil {
		return fmt.Errorf("update user_version to %d: %w", m.order, err)
	}
	return nil
}

// Version returns the schema version stored in the database.
func Version(db Executor) (int, error) {
	var current int
	if _, err := db.Exec("PRAGMA user_version;", nil, func(stmt *Statement) bool {
		current = stmt.ColumnInt(0)
		return true
	}); err != nil {
		return 0, fmt.Errorf("read user_version %w", err)
	}
	return current, nil
}

func migrate(db *Database) (before, after int, err error) {
	migrations, err := embeddedMigrations()
	if err != nil {
		return 0, 0, err
	}
	before, err = Version(db)
	if err != nil {
		return 0, 0, err
	}
	if last := migrations[len(migrations)-1].order; before > last {
		return before, before, fmt.Errorf("%w: %d > %d", ErrTooNew, before, last)
	}
	after = before
	for _, m := range migrations {
		if m.order <= before {
			continue
		}
		if err := db.withTx(context.Background(), beginImmediate, func(tx *Tx) error {
			return m.apply(tx)
		}); err != nil {
			return before, after, fmt.Errorf("migration %s: %w", m.name, err)
		}
		after = m.order
	}
	return before, after, nil
}
