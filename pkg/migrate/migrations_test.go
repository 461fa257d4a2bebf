package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no %s migration file found", suffix)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCommerceMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "init_commerce.sql")

	checks := []string{
		"CREATE UNIQUE INDEX idx_customers_email ON customers (email)",
		"CHECK (price >= 0)",
		"CHECK (quantity_on_hand >= 0)",
		"CHECK (qty >= 1)",
		"customer_id uuid NOT NULL REFERENCES customers (id) ON DELETE RESTRICT",
		"order_id uuid NOT NULL REFERENCES orders (id) ON DELETE CASCADE",
		"product_id uuid NOT NULL REFERENCES products (id) ON DELETE RESTRICT",
		"CREATE UNIQUE INDEX idx_order_lines_order_product ON order_lines (order_id, product_id)",
		"DROP TABLE order_lines",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestPeopleMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "people.sql")

	checks := []string{
		"CREATE TABLE persons",
		"person_id uuid PRIMARY KEY REFERENCES persons (id) ON DELETE CASCADE",
		"CHECK (grade >= 0 AND grade <= 100)",
		"DROP TABLE teacher_profiles",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
