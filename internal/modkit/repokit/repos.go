// Package repokit holds the seams repos are written against
package repokit

import "animefinder/internal/platform/store"

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

// Binder builds a domain repo over whichever Queryer is in scope, pool or tx
type Binder[T any] interface {
	Bind(Queryer) T
}
