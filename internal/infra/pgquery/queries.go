// Package pgquery holds the SQL of the service and the row types it scans into. Every method
// takes the DBTX to run on so callers decide between the pool and a transaction.
package pgquery

import "carwash-scheduler/internal/infra/db"

type DBTX = db.DBTX

type Queries struct{}

func New() *Queries {
	return &Queries{}
}
