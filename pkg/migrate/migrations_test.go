package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCatalogMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_catalog.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no catalog migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		`CREATE TABLE IF NOT EXISTS "PART"`,
		`"PartNumber"        VARCHAR(100) NOT NULL UNIQUE`,
		`CHECK ("StockQuantity" >= 0)`,
		`CHECK ("ReservedQuantity" >= 0)`,
		`REFERENCES "PART"("PartId") ON DELETE CASCADE`,
		`DROP TABLE IF EXISTS "PART"`,
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestUsersMigrationSeedsRoles(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_users.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	for _, role := range []string{"'ADMIN'", "'EMPLOYEE'", "'USER'"} {
		if !strings.Contains(string(data), role) {
			t.Errorf("missing seeded role %s", role)
		}
	}
}
