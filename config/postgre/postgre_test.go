package postgre

import (
	"strings"
	"testing"
)

func TestMigrationNamesAreOrdered(t *testing.T) {
	names, err := MigrationNames()
	if err != nil {
		t.Fatalf("MigrationNames: %v", err)
	}
	if len(names) == 0 || names[0] != "0001_init.sql" {
		t.Fatalf("unexpected migrations: %v", names)
	}
}

func TestInitMigrationCreatesEveryTable(t *testing.T) {
	body, err := migrations.ReadFile("migrations/0001_init.sql")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, table := range []string{"auth_tokens", "packs", "pack_versions", "reviews", "webhooks", "webhook_deliveries"} {
		if !strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("migration does not create %s", table)
		}
	}
}
