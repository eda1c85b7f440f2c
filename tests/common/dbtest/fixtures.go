//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DefaultConstraintsID is the id of the constraints row seeded by the initial migration.
var DefaultConstraintsID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func CreateTestCustomer(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO customers (id, name, email) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING",
		customerID, "Test Customer", email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM customers WHERE email = $1", email).Scan(&customerID)
	}

	return customerID
}

func CreateTestVehicle(t *testing.T, db DBLike, customerID uuid.UUID, size string) uuid.UUID {
	t.Helper()

	vehicleID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO vehicles (id, customer_id, plate, size) VALUES ($1, $2, $3, $4)",
		vehicleID, customerID, "TEST-"+vehicleID.String()[:6], size)
	require.NoError(t, err)

	return vehicleID
}

func CreateTestService(t *testing.T, db DBLike, name string, priceCents int64, minutes int, equipment ...string) uuid.UUID {
	t.Helper()

	if equipment == nil {
		equipment = []string{}
	}
	serviceID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO services (id, name, price_cents, duration_minutes, equipment) VALUES ($1, $2, $3, $4, $5)",
		serviceID, name, priceCents, minutes, equipment)
	require.NoError(t, err)

	return serviceID
}

func CreateTestWashBay(t *testing.T, db DBLike, bayNumber int, maxSize string, equipment ...string) uuid.UUID {
	t.Helper()

	if equipment == nil {
		equipment = []string{}
	}
	bayID := uuid.New()
	now := time.Now().UTC()
	_, err := db.Exec(context.Background(),
		`INSERT INTO wash_bays (id, bay_number, max_vehicle_size, equipment, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 'ACTIVE', $5, $5)`,
		bayID, bayNumber, maxSize, equipment, now)
	require.NoError(t, err)

	return bayID
}

// SeedReferenceData restores the default scheduling constraints after a reset.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO scheduling_constraints (
		    id, version, min_advance_minutes, max_advance_minutes, slot_duration_minutes, buffer_minutes,
		    business_hours, closed_dates, time_zone, is_active, created_at
		) VALUES (
		    $1, 1, 120, 129600, 30, 15,
		    '[{"closed":false,"openMinute":540,"closeMinute":1020},
		      {"closed":false,"openMinute":480,"closeMinute":1200},
		      {"closed":false,"openMinute":480,"closeMinute":1200},
		      {"closed":false,"openMinute":480,"closeMinute":1200},
		      {"closed":false,"openMinute":480,"closeMinute":1200},
		      {"closed":false,"openMinute":480,"closeMinute":1200},
		      {"closed":false,"openMinute":480,"closeMinute":1200}]',
		    '{}', 'UTC', TRUE, now()
		)
		ON CONFLICT (id) DO NOTHING;
	`, DefaultConstraintsID)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
