// Package seed loads a small demo data set through the domain services.
// It is safe to run repeatedly: rows that collide on unique keys are
// skipped with a warning.
package seed

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/customers"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/people"
	"github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	pkgerrors "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/errors"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
)

// Seeder inserts the demo customers, products and students.
type Seeder struct {
	customers customers.Service
	products  products.Service
	people    people.Service
	logg      *logger.Logger
}

// New builds a Seeder.
func New(customersSvc customers.Service, productsSvc products.Service, peopleSvc people.Service, logg *logger.Logger) *Seeder {
	return &Seeder{customers: customersSvc, products: productsSvc, people: peopleSvc, logg: logg}
}

var seedCustomers = []customers.CreateCustomerInput{
	{FirstName: "Ivan", LastName: "Ivanov", Email: "ivan@test.com", Phone: "+79991234567"},
	{FirstName: "Maria", LastName: "Petrova", Email: "maria@test.com", Phone: "+79997654321"},
	{FirstName: "Alexey", LastName: "Sidorov", Email: "alex@test.com", Phone: "+79999876543"},
}

var seedProducts = []products.CreateProductInput{
	{Name: "Laptop HP", SKU: "NB001", Category: "electronics", Price: decimal.RequireFromString("50000.00"), QuantityOnHand: 10, Description: "Workhorse laptop"},
	{Name: "Smartphone Samsung", SKU: "PH001", Category: "electronics", Price: decimal.RequireFromString("30000.00"), QuantityOnHand: 15, Description: "Current-gen smartphone"},
	{Name: "T-Shirt", SKU: "TS001", Category: "clothing", Price: decimal.RequireFromString("1500.00"), QuantityOnHand: 50, Description: "Cotton t-shirt"},
	{Name: "Python Book", SKU: "BK001", Category: "books", Price: decimal.RequireFromString("1200.00"), QuantityOnHand: 20, Description: "Programming textbook"},
	{Name: "Coffee", SKU: "FD001", Category: "food", Price: decimal.RequireFromString("500.00"), QuantityOnHand: 100, Description: "Ground arabica"},
}

var seedStudents = []struct {
	FirstName string
	Grade     float64
}{
	{"Ivan", 50},
	{"Maria", 60},
	{"Alexey", 66},
}

// Run inserts the full demo set. Already-seeded rows do not fail the run.
func (s *Seeder) Run(ctx context.Context) error {
	for _, input := range seedCustomers {
		if _, err := s.customers.Create(ctx, input); err != nil {
			if !isConflict(err) {
				return err
			}
			s.warn(ctx, "customer already seeded", "email", input.Email)
		}
	}
	for _, input := range seedProducts {
		if _, err := s.products.Create(ctx, input); err != nil {
			if !isConflict(err) {
				return err
			}
			s.warn(ctx, "product already seeded", "sku", input.SKU)
		}
	}
	for _, student := range seedStudents {
		person, err := s.people.CreatePerson(ctx, student.FirstName)
		if err != nil {
			return err
		}
		if _, err := s.people.AssignStudentProfile(ctx, person.ID, student.Grade); err != nil {
			return err
		}
	}
	if s.logg != nil {
		s.logg.Info(ctx, "seed complete")
	}
	return nil
}

func isConflict(err error) bool {
	appErr := pkgerrors.As(err)
	return appErr != nil && appErr.Code() == pkgerrors.CodeConflict
}

func (s *Seeder) warn(ctx context.Context, msg, key, value string) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, key, value), msg)
}
