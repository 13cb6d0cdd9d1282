package seed

import "github.com/MuhamadAgungGumelar/chatherine-be/internal/models"

var demoCustomers = []models.Customer{
	{Name: "John Doe", Email: "john@example.com", Phone: "+1234567890", BusinessName: "Doe Enterprises", BusinessType: "Consulting", BusinessAddress: "123 Main St"},
	{Name: "Jane Smith", Email: "jane@example.com", Phone: "+1234567891", BusinessName: "Smith Co", BusinessType: "Retail", BusinessAddress: "456 Oak Ave"},
	{Name: "Bob Johnson", Email: "bob@example.com", Phone: "+1234567892", BusinessName: "Johnson LLC", BusinessType: "Services", BusinessAddress: "789 Pine Rd"},
	{Name: "Alice Brown", Email: "alice@example.com", Phone: "+1234567893", BusinessName: "Brown Corp", BusinessType: "Manufacturing", BusinessAddress: "321 Elm St"},
	{Name: "Charlie Wilson", Email: "charlie@example.com", Phone: "+1234567894", BusinessName: "Wilson Inc", BusinessType: "Technology", BusinessAddress: "654 Maple Dr"},
}

// Indexes below refer to demoCustomers.
type demoService struct {
	owner int
	offering
}

var demoServices = []demoService{
	{0, offering{"", "Consultation", "Initial business consultation", 150, 60}},
	{0, offering{"", "Facial Treatment", "Premium facial care", 100, 45}},
	{1, offering{"", "Deep Tissue Massage", "Therapeutic massage", 120, 60}},
	{1, offering{"", "Hair Styling", "Professional hair styling", 80, 30}},
	{2, offering{"", "Manicure", "Nail care service", 50, 30}},
}

type demoStock struct {
	owner    int
	name     string
	quantity int
	price    float64
	category string
}

var demoInventory = []demoStock{
	{0, "Facial Cream", 25, 25, "Skincare"},
	{0, "Massage Oil", 15, 30, "Wellness"},
	{1, "Hair Shampoo", 40, 15, "Hair Care"},
	{1, "Nail Polish", 50, 8, "Nails"},
	{2, "Towels", 100, 5, "Supplies"},
}

// Each appointment gets one invoice for its service.
type demoBooking struct {
	owner   int
	service int
	date    string
	time    string
	status  string
	notes   string
	paid    bool
}

var demoBookings = []demoBooking{
	{0, 0, "2024-12-01", "10:00", "scheduled", "Initial consultation", true},
	{1, 1, "2024-12-01", "14:00", "confirmed", "Regular facial", false},
	{2, 2, "2024-12-02", "11:00", "scheduled", "Deep tissue session", true},
	{3, 3, "2024-12-02", "15:30", "confirmed", "Hair styling appointment", false},
	{4, 4, "2024-12-03", "13:00", "scheduled", "Manicure service", true},
}
