// Package inmemdb provides map-backed repositories for tests and local
// development without postgres.
package inmemdb

import (
	"sync"

	"github.com/radianlabs/precalc/core/progress"
	"github.com/radianlabs/precalc/core/user"
)

type (
	DB struct {
		user     *userTable
		progress *progressTable
	}

	userTable struct {
		table map[string]*user.User
		mutex sync.RWMutex
	}

	progressTable struct {
		// keyed user_id -> lesson_path -> raw snapshot
		table      map[string]map[string][]byte
		navigation map[string]progress.NavigationState
		mutex      sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		user: &userTable{table: make(map[string]*user.User)},
		progress: &progressTable{
			table:      make(map[string]map[string][]byte),
			navigation: make(map[string]progress.NavigationState),
		},
	}
}
