package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"opsdesk/internal/database"
	"opsdesk/internal/domain"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "opsdesk.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Staff{},
		&domain.Service{},
		&domain.Lead{},
		&domain.LeadService{},
		&domain.Customer{},
		&domain.CustomerService{},
		&domain.Work{},
		&domain.Invoice{},
		&domain.InvoiceLine{},
		&domain.Payment{},
		&domain.Note{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notes")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM invoice_lines")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM works")
	db.Exec("DELETE FROM customer_services")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM lead_services")
	db.Exec("DELETE FROM leads")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM staff_members")

	// ================== STAFF ==================
	log.Println("Creating staff...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.Staff{
		Name:         "Alex Admin",
		Email:        "admin@opsdesk.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@opsdesk.local / admin123")

	managerHash, _ := bcrypt.GenerateFromPassword([]byte("manager123"), bcrypt.DefaultCost)
	manager := domain.Staff{
		Name:         "Maria Manager",
		Email:        "maria@opsdesk.local",
		PasswordHash: string(managerHash),
		Role:         domain.RoleManager,
		Phone:        "555-0100",
		Active:       true,
	}
	db.Create(&manager)

	techHash, _ := bcrypt.GenerateFromPassword([]byte("tech123"), bcrypt.DefaultCost)
	tech := domain.Staff{
		Name:         "Tom Technician",
		Email:        "tom@opsdesk.local",
		PasswordHash: string(techHash),
		Role:         domain.RoleTechnician,
		Phone:        "555-0101",
		Active:       true,
	}
	db.Create(&tech)

	// ================== SERVICES ==================
	log.Println("Creating service catalog...")

	services := []domain.Service{
		{Name: "Pest Control", Category: "maintenance", BasePrice: 120, Active: true},
		{Name: "Lawn Care", Category: "maintenance", BasePrice: 80, Active: true},
		{Name: "Deep Cleaning", Category: "cleaning", BasePrice: 200, Active: true},
		{Name: "Window Washing", Category: "cleaning", BasePrice: 60, Active: true},
		{Name: "HVAC Inspection", Category: "inspection", BasePrice: 150, Active: true},
	}
	for i := range services {
		db.Create(&services[i])
	}

	// ================== LEADS ==================
	log.Println("Creating leads...")

	leads := []domain.Lead{
		{
			Name:    "Acme Co",
			Email:   "info@acme.example",
			Phone:   "555-0200",
			Company: "Acme Co",
			City:    "Springfield",
			Notes:   "Interested in monthly maintenance contract",
			Status:  domain.LeadQualified,
			Source:  "referral",
		},
		{
			Name:   "Jane Peterson",
			Email:  "jane.p@example.com",
			Phone:  "555-0201",
			City:   "Springfield",
			Status: domain.LeadContacted,
			Source: "website",
		},
		{
			Name:   "Oak Street Bakery",
			Email:  "hello@oakbakery.example",
			Phone:  "555-0202",
			Status: domain.LeadNew,
			Source: "walk-in",
		},
	}
	for i := range leads {
		leads[i].AssignedTo = &manager.ID
		db.Create(&leads[i])
	}

	// Acme is interested in pest control and lawn care
	db.Create(&domain.LeadService{
		LeadID:      leads[0].ID,
		ServiceID:   services[0].ID,
		ServiceName: services[0].Name,
	})
	db.Create(&domain.LeadService{
		LeadID:      leads[0].ID,
		ServiceID:   services[1].ID,
		ServiceName: services[1].Name,
	})
	db.Create(&domain.LeadService{
		LeadID:      leads[1].ID,
		ServiceID:   services[2].ID,
		ServiceName: services[2].Name,
	})

	// ================== CUSTOMERS ==================
	log.Println("Creating customers...")

	customer := domain.Customer{
		Name:    "Riverside Dental",
		Email:   "office@riversidedental.example",
		Phone:   "555-0300",
		Company: "Riverside Dental LLC",
		City:    "Springfield",
		TaxID:   "84-1234567",
		Status:  domain.CustomerActive,
	}
	db.Create(&customer)

	db.Create(&domain.CustomerService{
		CustomerID: customer.ID,
		ServiceID:  services[2].ID,
		Status:     domain.CustomerServiceActive,
		Price:      180,
	})

	// ================== WORKS ==================
	log.Println("Creating works...")

	due := time.Now().Add(72 * time.Hour)
	work := domain.Work{
		CustomerID:  customer.ID,
		ServiceID:   services[2].ID,
		Title:       fmt.Sprintf("%s for %s", services[2].Name, customer.Name),
		Description: "Quarterly deep clean, after hours only",
		Priority:    domain.PriorityHigh,
		Status:      domain.WorkPending,
		DueDate:     &due,
		AssignedTo:  &tech.ID,
	}
	db.Create(&work)

	// ================== INVOICES ==================
	log.Println("Creating invoices...")

	invoice := domain.Invoice{
		CustomerID: customer.ID,
		Number:     "INV-2026-SEED0001",
		Status:     domain.InvoiceDraft,
	}
	db.Create(&invoice)

	line := domain.InvoiceLine{
		InvoiceID:   invoice.ID,
		ServiceID:   &services[2].ID,
		WorkID:      &work.ID,
		Description: "Deep cleaning, Q1",
		Quantity:    1,
		UnitPrice:   180,
	}
	db.Create(&line)
	db.Model(&invoice).Update("total", line.Amount())

	// ================== NOTES ==================
	db.Create(&domain.Note{
		ParentType: domain.NoteParentLead,
		ParentID:   leads[0].ID,
		AuthorID:   manager.ID,
		Kind:       domain.NoteCall,
		Body:       "Called back, wants a quote for both services before end of month.",
	})
	db.Create(&domain.Note{
		ParentType: domain.NoteParentCustomer,
		ParentID:   customer.ID,
		AuthorID:   manager.ID,
		Kind:       domain.NotePlain,
		Body:       "Gate code is 4411, park behind the building.",
	})

	log.Println("Seed complete.")
}
