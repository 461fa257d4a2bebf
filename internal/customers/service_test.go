package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/errors"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:customers_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, conn
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomerInput{
		FirstName: "Mara",
		LastName:  "Lindqvist",
		Email:     "Mara.Lindqvist@Example.com",
		Phone:     " +46 70 123 45 67 ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if created.Email != "mara.lindqvist@example.com" {
		t.Fatalf("expected lowercased email, got %s", created.Email)
	}

	loaded, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.FirstName != "Mara" {
		t.Fatalf("unexpected first name %s", loaded.FirstName)
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	input := CreateCustomerInput{FirstName: "Ana", LastName: "Duarte", Email: "ana@example.com"}
	if _, err := svc.Create(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, input := range []CreateCustomerInput{
		{LastName: "Solo", Email: "x@example.com"},
		{FirstName: "Han", Email: "x@example.com"},
		{FirstName: "Han", LastName: "Solo"},
	} {
		_, err := svc.Create(ctx, input)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.GetByID(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchByName(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	seed := []CreateCustomerInput{
		{FirstName: "Maria", LastName: "Gonzalez", Email: "maria@example.com"},
		{FirstName: "Mario", LastName: "Rossi", Email: "mario@example.com"},
		{FirstName: "Lee", LastName: "Marsh", Email: "lee@example.com"},
		{FirstName: "Anna", LastName: "Kim", Email: "anna@example.com"},
	}
	for _, input := range seed {
		if _, err := svc.Create(ctx, input); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	matches, err := svc.SearchByName(ctx, "MAR", pagination.Params{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	all, err := svc.SearchByName(ctx, "  ", pagination.Params{})
	if err != nil {
		t.Fatalf("blank search: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected blank query to list all, got %d", len(all))
	}
}
