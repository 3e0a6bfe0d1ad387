package commands

import (
	"fmt"
	"log"

	"hrms/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('EMPLOYEE', 'ADMIN');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            tenant_id int not null,
            employee_id text not null,
            full_name text,
            password text not null,
            role user_role default 'EMPLOYEE',
            phone text,
            email text,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id),
            UNIQUE (tenant_id, employee_id)
        );`,
	},
	{
		Index:       3,
		Description: "Create admin for tenant 1 with employee_id: Admin01, password: 1",
		Query: `
        INSERT INTO users(tenant_id, employee_id, role, password)
        SELECT 1, 'Admin01', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT employee_id FROM users WHERE tenant_id = 1 AND employee_id = 'Admin01');
        `,
	},
	{
		Index:       4,
		Description: "Create table: attendance",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            tenant_id int not null,
            employee_id int not null references users(id),
            work_day date not null,
            check_in_time timestamptz,
            check_in_source text,
            check_in_latitude double precision,
            check_in_longitude double precision,
            check_in_accuracy double precision,
            check_in_address text,
            matched_location_id int,
            check_out_time timestamptz,
            check_out_source text,
            check_out_latitude double precision,
            check_out_longitude double precision,
            check_out_accuracy double precision,
            check_out_address text,
            check_out_location_id int,
            total_work_minutes int,
            status text not null default 'PRESENT',
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       5,
		Description: "One attendance row per employee per day",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS attendance_day_uindex
            ON attendance (tenant_id, employee_id, work_day);`,
	},
	{
		Index:       6,
		Description: "Create table: attendance_policy",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance_policy (
            id serial primary key,
            tenant_id int not null,
            enforce_geofence bool not null default false,
            allow_check_in_without_coords bool not null default true,
            max_accuracy_meters int not null default 50,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id),
            UNIQUE (tenant_id)
        );`,
	},
	{
		Index:       7,
		Description: "Create table: work_location",
		Query: `
        CREATE TABLE IF NOT EXISTS work_location (
            id serial primary key,
            tenant_id int not null,
            name text not null,
            latitude double precision not null,
            longitude double precision not null,
            radius_meters double precision not null,
            is_active bool not null default true,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );
        CREATE INDEX IF NOT EXISTS work_location_tenant_index
            ON work_location (tenant_id) WHERE deleted_at IS NULL;`,
	},
	{
		Index:       8,
		Description: "Create table: mobile_device",
		Query: `
        CREATE TABLE IF NOT EXISTS mobile_device (
            id serial primary key,
            user_id int not null references users(id),
            device_id text not null,
            platform text,
            created_at timestamp default now(),
            last_seen_at timestamp,
            UNIQUE (user_id, device_id)
        );`,
	},
	{
		Index:       9,
		Description: "Create table: refresh_token",
		Query: `
        CREATE TABLE IF NOT EXISTS refresh_token (
            id uuid primary key,
            user_id int not null references users(id),
            device_id text not null,
            token_hash text not null,
            expires_at timestamptz not null,
            created_at timestamp default now(),
            revoked_at timestamptz
        );
        CREATE UNIQUE INDEX IF NOT EXISTS refresh_token_hash_uindex
            ON refresh_token (token_hash);
        CREATE INDEX IF NOT EXISTS refresh_token_device_index
            ON refresh_token (user_id, device_id) WHERE revoked_at IS NULL;`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

// MigrateUP applies schemes past the version recorded in schema_migrations,
// retrying the dirty one first if the previous run failed mid-way.
func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
