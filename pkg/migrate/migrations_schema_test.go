package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harborview-hotels/frontdesk-backend/pkg/migrate"
)

func TestInitSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE guests",
		"CONSTRAINT guests_email_key UNIQUE (email)",
		"CONSTRAINT guests_phone_key UNIQUE (phone)",
		"CREATE TABLE rooms",
		"CHECK (capacity >= 1)",
		"CREATE TABLE bookings",
		"REFERENCES rooms (room_number) ON DELETE CASCADE",
		"CREATE TABLE check_ins",
		"CONSTRAINT check_ins_booking_id_key UNIQUE (booking_id)",
		"CREATE TABLE payments",
		"CONSTRAINT payments_idempotency_key_key UNIQUE (idempotency_key)",
		"CHECK (amount > 0)",
		"CREATE TABLE staff_users",
		"DROP TABLE IF EXISTS payments",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}
