package kb

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/database"
)

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	return NewStore(db, zerolog.Nop()), db
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func TestUpsertFactIsIdempotent(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()
	in := FactInput{Title: "Address", Content: "123 Main St", Category: "location"}

	first, err := store.UpsertFact(ctx, 1, in)
	require.NoError(t, err)
	second, err := store.UpsertFact(ctx, 1, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.BusinessFact{}).Where("customer_id = ?", 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertFactReplacesContent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.UpsertFact(ctx, 1, FactInput{Title: "Address", Content: "123 Main St", Category: "location"})
	require.NoError(t, err)
	updated, err := store.UpsertFact(ctx, 1, FactInput{Title: "Address", Content: "9 Harbour Rd", Category: "location"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "9 Harbour Rd", updated.Content)
	assert.True(t, updated.IsPublic)

	// Same title under another category is a different fact.
	other, err := store.UpsertFact(ctx, 1, FactInput{Title: "Address", Content: "PO Box 4", Category: "contact"})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)
}

func TestUpsertFactKeepsPrivateFlag(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	fact, err := store.UpsertFact(ctx, 1, FactInput{Title: "Wifi", Content: "pw: hunter2", IsPublic: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, fact.IsPublic)
	assert.Equal(t, models.CategoryGeneral, fact.Category)

	public, err := store.ListFacts(ctx, 1, true)
	require.NoError(t, err)
	assert.Empty(t, public)

	all, err := store.ListFacts(ctx, 1, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpsertFactValidation(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.UpsertFact(context.Background(), 1, FactInput{Title: " ", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = store.UpsertFact(context.Background(), 1, FactInput{Title: "x", Content: ""})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestConcurrentUpsertsLeaveOneFact(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.UpsertFact(ctx, 1, FactInput{Title: "Phone", Content: "555", Category: "contact"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&models.BusinessFact{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateFactAllowsDuplicates(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	in := FactInput{Title: "Staff: Ana", Content: "Role: Chef", Category: models.CategoryStaff}

	a, err := store.CreateFact(ctx, 1, in)
	require.NoError(t, err)
	b, err := store.CreateFact(ctx, 1, in)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSearchFacts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	seed := []FactInput{
		{Title: "Opening Hours", Content: "See the hours table", Category: "general"},
		{Title: "Address", Content: "123 Main St", Category: "location"},
		{Title: "Holiday", Content: "Closed for HOURS on holidays", Category: "general"},
		{Title: "Team", Content: "Four people", Category: "weekly-hours"},
		{Title: "100% organic", Content: "All produce", Category: "general"},
		{Title: "CAFÉ MENU", Content: "espresso", Category: "menu"},
	}
	for _, in := range seed {
		_, err := store.UpsertFact(ctx, 1, in)
		require.NoError(t, err)
	}

	facts, err := store.SearchFacts(ctx, 1, "hours")
	require.NoError(t, err)
	titles := make([]string, 0, len(facts))
	for _, f := range facts {
		titles = append(titles, f.Title)
	}
	assert.Equal(t, []string{"Opening Hours", "Holiday", "Team"}, titles)

	// LIKE wildcards in the query are literal.
	facts, err = store.SearchFacts(ctx, 1, "%")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "100% organic", facts[0].Title)

	// Non-ASCII letters fold too.
	facts, err = store.SearchFacts(ctx, 1, "café")
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "CAFÉ MENU", facts[0].Title)

	_, err = store.SearchFacts(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSearchFactsEmptyTenant(t *testing.T) {
	store, _ := newTestStore(t)

	facts, err := store.SearchFacts(context.Background(), 42, "hours")
	require.NoError(t, err)
	assert.Empty(t, facts)
}

func TestTenantIsolation(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	_, err := store.UpsertFact(ctx, 1, FactInput{Title: "Address", Content: "123 Main St", Category: "location"})
	require.NoError(t, err)
	_, err = store.AddOffering(ctx, 1, OfferingInput{Name: "Haircut", Price: floatPtr(30)})
	require.NoError(t, err)
	_, err = store.RecordUnanswered(ctx, 1, "Do you do weddings?")
	require.NoError(t, err)
	_, err = store.UpsertBusinessHours(ctx, 1, HoursInput{DayOfWeek: 0, OpenTime: strPtr("09:00"), CloseTime: strPtr("17:00")})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.InventoryItem{CustomerID: 1, Name: "Shampoo", Quantity: 3}).Error)
	require.NoError(t, db.Create(&models.Appointment{CustomerID: 1, Date: "2024-12-01", Time: "10:00"}).Error)
	require.NoError(t, db.Create(&models.Invoice{CustomerID: 1, TotalAmount: 50, Status: models.InvoicePaid, CreatedDate: "2024-12-01"}).Error)

	facts, err := store.ListFacts(ctx, 2, false)
	require.NoError(t, err)
	assert.Empty(t, facts)

	found, err := store.SearchFacts(ctx, 2, "Main")
	require.NoError(t, err)
	assert.Empty(t, found)

	offerings, err := store.ListOfferings(ctx, 2, false)
	require.NoError(t, err)
	assert.Empty(t, offerings)

	matched, err := store.SearchOfferings(ctx, 2, "Haircut")
	require.NoError(t, err)
	assert.Empty(t, matched)

	_, err = store.SetOfferingPrice(ctx, 2, "Haircut", 10)
	assert.ErrorIs(t, err, ErrNotFound)

	questions, err := store.ListUnanswered(ctx, 2, "")
	require.NoError(t, err)
	assert.Empty(t, questions)

	hours, err := store.ListBusinessHours(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, hours)

	items, err := store.ListInventory(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, items)

	appts, err := store.ListAppointments(ctx, 2, "")
	require.NoError(t, err)
	assert.Empty(t, appts)

	revenue, err := store.Revenue(ctx, 2, "2024-01-01", "2025-01-01")
	require.NoError(t, err)
	assert.Zero(t, revenue.Total)
}

func TestOfferings(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddOffering(ctx, 1, OfferingInput{Name: "Haircut", Category: "Hair", Price: floatPtr(30)})
	require.NoError(t, err)
	_, err = store.AddOffering(ctx, 1, OfferingInput{Name: "Beard Trim", Category: "Hair", Description: strPtr("Hot towel finish"), IsAvailable: boolPtr(false)})
	require.NoError(t, err)

	available, err := store.ListOfferings(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Haircut", available[0].Name)

	byCategory, err := store.SearchOfferings(ctx, 1, "hair")
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	byDescription, err := store.SearchOfferings(ctx, 1, "TOWEL")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)
	assert.Equal(t, "Beard Trim", byDescription[0].Name)

	_, err = store.AddOffering(ctx, 1, OfferingInput{Name: "Crème Brûlée", Category: "Dessert"})
	require.NoError(t, err)
	accented, err := store.SearchOfferings(ctx, 1, "CRÈME")
	require.NoError(t, err)
	require.Len(t, accented, 1)
	assert.Equal(t, "Crème Brûlée", accented[0].Name)

	_, err = store.AddOffering(ctx, 1, OfferingInput{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetOfferingPrice(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddOffering(ctx, 1, OfferingInput{Name: "Haircut", Price: floatPtr(30)})
	require.NoError(t, err)

	updated, err := store.SetOfferingPrice(ctx, 1, "Haircut", 35)
	require.NoError(t, err)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 35.0, *updated.Price)

	// Name match is case-sensitive.
	_, err = store.SetOfferingPrice(ctx, 1, "haircut", 40)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = store.SetOfferingPrice(ctx, 1, "Haircut", -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Unavailable offerings cannot be repriced.
	_, err = store.SetOfferingAvailability(ctx, 1, "Haircut", false)
	require.NoError(t, err)
	_, err = store.SetOfferingPrice(ctx, 1, "Haircut", 36)
	assert.ErrorIs(t, err, ErrNotFound)

	back, err := store.SetOfferingAvailability(ctx, 1, "Haircut", true)
	require.NoError(t, err)
	assert.True(t, back.IsAvailable)
}

func TestRevenueRange(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	invoices := []models.Invoice{
		{CustomerID: 1, TotalAmount: 150, Status: models.InvoicePaid, CreatedDate: "2024-12-01"},
		{CustomerID: 1, TotalAmount: 100, Status: models.InvoiceUnpaid, CreatedDate: "2024-12-02"},
		{CustomerID: 1, TotalAmount: 120, Status: models.InvoicePaid, CreatedDate: "2024-12-05"},
		{CustomerID: 1, TotalAmount: 80, Status: models.InvoicePaid, CreatedDate: "2024-12-10"},
		{CustomerID: 2, TotalAmount: 999, Status: models.InvoicePaid, CreatedDate: "2024-12-03"},
	}
	require.NoError(t, db.Create(&invoices).Error)

	summary, err := store.Revenue(ctx, 1, "2024-12-01", "2024-12-10")
	require.NoError(t, err)
	assert.Equal(t, 270.0, summary.Total)
	assert.Equal(t, int64(2), summary.Invoices)

	_, err = store.Revenue(ctx, 1, "12/01/2024", "2024-12-10")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = store.Revenue(ctx, 1, "2024-12-10", "2024-12-01")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBusinessHoursUpsert(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.UpsertBusinessHours(ctx, 1, HoursInput{DayOfWeek: 4, OpenTime: strPtr("09:00"), CloseTime: strPtr("16:00")})
	require.NoError(t, err)

	closed, err := store.UpsertBusinessHours(ctx, 1, HoursInput{DayOfWeek: 4, IsClosed: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, closed.ID)
	assert.True(t, closed.IsClosed)
	assert.Equal(t, "09:00", closed.OpenTime)

	hours, err := store.ListBusinessHours(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, hours, 1)

	_, err = store.UpsertBusinessHours(ctx, 1, HoursInput{DayOfWeek: 7})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = store.UpsertBusinessHours(ctx, 1, HoursInput{DayOfWeek: 1, OpenTime: strPtr("9am")})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUnansweredQuestions(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	q, err := store.RecordUnanswered(ctx, 1, "Do you cater weddings?")
	require.NoError(t, err)
	assert.Equal(t, models.QuestionPending, q.Status)

	answered, err := store.AnswerUnanswered(ctx, 1, q.ID, "Yes, up to 80 guests")
	require.NoError(t, err)
	assert.Equal(t, models.QuestionAnswered, answered.Status)
	require.NotNil(t, answered.Response)

	pending, err := store.ListUnanswered(ctx, 1, models.QuestionPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = store.AnswerUnanswered(ctx, 2, q.ID, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]int{"Monday": 0, "fri": 4, " SUNDAY ": 6, "3": 3}
	for in, want := range cases {
		got, err := ParseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWeekday("someday")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCustomers(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateCustomer(ctx, &models.Customer{Name: "Bella Vista", BusinessName: "Bella Vista"}))
	customers, err := store.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 1)

	got, err := store.GetCustomer(ctx, customers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Bella Vista", got.BusinessName)

	_, err = store.GetCustomer(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
