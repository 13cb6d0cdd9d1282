package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/shared/database"
)

func newTestRegistry(t *testing.T) (*Registry, *kb.Store, *gorm.DB) {
	t.Helper()
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	store := kb.NewStore(db, zerolog.Nop())
	return MustNewRegistry(store, zerolog.Nop()), store, db
}

func TestCatalogueIsConsistent(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	require.NoError(t, reg.Validate())

	names := map[string]bool{}
	for _, def := range reg.Definitions() {
		assert.False(t, names[def.Name], "duplicate tool %s", def.Name)
		names[def.Name] = true
		assert.NotEmpty(t, def.Description, def.Name)
	}
	for _, want := range []string{
		"get_schedule", "get_offerings", "get_revenue", "search_facts", "list_facts",
		"get_business_hours", "get_inventory", "list_all_tenants", "get_unanswered_questions",
		"add_fact", "add_offering", "set_offering_price", "set_offering_availability",
		"update_business_hours", "update_description", "update_location", "add_staff_member",
		"set_day_availability", "record_unanswered_question",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}

func TestValidateRejectsIncoherentSchema(t *testing.T) {
	type args struct {
		Query string `json:"query"`
	}
	handler := func(ctx context.Context, customerID uint, a args) (string, error) { return "ok", nil }

	reg := &Registry{tools: map[string]*Tool{}, logger: zerolog.Nop()}
	require.NoError(t, reg.register(newTool("lookup", "x",
		object(map[string]jsonschema.Definition{"query": str("q"), "limit": num("n")}, "query"),
		false, handler)))
	require.NoError(t, reg.register(newTool("find", "x",
		object(map[string]jsonschema.Definition{"query": str("q")}, "term"),
		false, handler)))

	err := reg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `lookup: property "limit" is not accepted`)
	assert.Contains(t, err.Error(), `find: required "term" is not a declared property`)

	err = reg.register(newTool("find", "again", object(nil), false, handler))
	assert.EqualError(t, err, "tool already registered: find")
}

func TestDispatchUnknownTool(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	res := reg.Dispatch(context.Background(), 1, "launch_rockets", `{}`)
	assert.ErrorIs(t, res.Err, ErrToolNotFound)
	assert.Contains(t, res.Text, "unknown tool")
}

func TestDispatchInvalidArguments(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	res := reg.Dispatch(ctx, 1, "search_facts", `not json`)
	assert.ErrorIs(t, res.Err, ErrToolArgumentInvalid)

	res = reg.Dispatch(ctx, 1, "search_facts", `{}`)
	assert.ErrorIs(t, res.Err, ErrToolArgumentInvalid)
	assert.Contains(t, res.Text, `"query"`)

	res = reg.Dispatch(ctx, 1, "set_offering_price", `{"service_name":"Haircut","new_price":"cheap"}`)
	assert.ErrorIs(t, res.Err, ErrToolArgumentInvalid)
}

func TestDispatchOverridesTenant(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	res := reg.Dispatch(ctx, 1, "add_fact", `{"title":"Parking","content":"Free behind the shop","customer_id":2,"tenant_id":"2"}`)
	require.NoError(t, res.Err)

	foreign, err := store.ListFacts(ctx, 2, false)
	require.NoError(t, err)
	assert.Empty(t, foreign)

	own, err := store.ListFacts(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Parking", own[0].Title)
}

func TestSearchFactsTool(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := store.UpsertFact(ctx, 1, kb.FactInput{Title: "Address", Content: "123 Main St", Category: "location"})
	require.NoError(t, err)
	private := false
	_, err = store.UpsertFact(ctx, 1, kb.FactInput{Title: "Alarm code", Content: "4321 location", IsPublic: &private})
	require.NoError(t, err)

	res := reg.Dispatch(ctx, 1, "search_facts", `{"query":"location"}`)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Text, "123 Main St")
	assert.NotContains(t, res.Text, "4321")

	res = reg.Dispatch(ctx, 1, "search_facts", `{"query":"parking"}`)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Text, "No facts found")
}

func TestSetOfferingPriceTool(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	price := 30.0
	_, err := store.AddOffering(ctx, 1, kb.OfferingInput{Name: "Haircut", Price: &price})
	require.NoError(t, err)

	res := reg.Dispatch(ctx, 1, "set_offering_price", `{"service_name":"Haircut","new_price":35.0}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "Price of Haircut is now $35.00.", res.Text)

	res = reg.Dispatch(ctx, 1, "set_offering_price", `{"service_name":"Massage","new_price":"50"}`)
	assert.True(t, errors.Is(res.Err, kb.ErrNotFound))
	assert.Contains(t, res.Text, "Error: set_offering_price failed")
}

func TestHoursTools(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	res := reg.Dispatch(ctx, 1, "update_business_hours", `{"day":"Friday","open_time":"09:00","close_time":"16:00"}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "Updated hours. Friday: 09:00-16:00", res.Text)

	// Retrying is safe: same row.
	res = reg.Dispatch(ctx, 1, "update_business_hours", `{"day":"fri","open_time":"09:00","close_time":"16:00"}`)
	require.NoError(t, res.Err)

	res = reg.Dispatch(ctx, 1, "set_day_availability", `{"day":6,"is_open":"no"}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "Updated hours. Sunday: closed", res.Text)

	hours, err := store.ListBusinessHours(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, hours, 2)

	res = reg.Dispatch(ctx, 1, "get_business_hours", ``)
	require.NoError(t, res.Err)
	assert.Equal(t, "Business hours:\nFriday: 09:00-16:00\nSunday: closed", res.Text)

	res = reg.Dispatch(ctx, 1, "update_business_hours", `{"day":"someday"}`)
	assert.ErrorIs(t, res.Err, ErrToolArgumentInvalid)
}

func TestDescriptionAndLocationUpsert(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	for _, addr := range []string{"1 Old Rd", "9 Harbour Rd"} {
		res := reg.Dispatch(ctx, 1, "update_location", `{"address":"`+addr+`"}`)
		require.NoError(t, res.Err)
	}
	res := reg.Dispatch(ctx, 1, "update_description", `{"description":"Family-run trattoria"}`)
	require.NoError(t, res.Err)

	facts, err := store.ListFacts(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "9 Harbour Rd", facts[0].Content)
	assert.Equal(t, models.CategoryLocation, facts[0].Category)
	assert.Equal(t, "Business Description", facts[1].Title)
}

func TestAddStaffMemberIsNotIdempotent(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()
	args := `{"name":"Marco Rossi","role":"Head Chef","experience":"15 years","specialty":"Pasta","availability":"Tue-Sun"}`

	for i := 0; i < 2; i++ {
		res := reg.Dispatch(ctx, 1, "add_staff_member", args)
		require.NoError(t, res.Err)
	}

	facts, err := store.ListFacts(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "Staff: Marco Rossi", facts[0].Title)
	assert.Equal(t, models.CategoryStaff, facts[0].Category)
	assert.Equal(t, "Role: Head Chef\nExperience: 15 years\nSpecialty: Pasta\nAvailability: Tue-Sun", facts[0].Content)
}

func TestOfferingTools(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	res := reg.Dispatch(ctx, 1, "add_offering", `{"name":"Haircut","category":"Hair","price":"30","duration":45}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "Added offering Haircut (Hair): $30.00, 45 min.", res.Text)

	res = reg.Dispatch(ctx, 1, "add_offering", `{"name":"Perm","price":80,"is_available":false}`)
	require.NoError(t, res.Err)

	res = reg.Dispatch(ctx, 1, "get_offerings", `{}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "Offerings:\n- Haircut (Hair): $30.00, 45 min", res.Text)

	res = reg.Dispatch(ctx, 1, "get_offerings", `{"available_only":false}`)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Text, "Perm: $80.00 [unavailable]")

	res = reg.Dispatch(ctx, 1, "set_offering_availability", `{"service_name":"Perm","is_available":true}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "Perm is now available.", res.Text)
}

func TestRevenueAndScheduleTools(t *testing.T) {
	reg, _, db := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&[]models.Invoice{
		{CustomerID: 1, TotalAmount: 150, Status: models.InvoicePaid, CreatedDate: "2024-12-01"},
		{CustomerID: 1, TotalAmount: 99, Status: models.InvoiceUnpaid, CreatedDate: "2024-12-02"},
	}).Error)
	require.NoError(t, db.Create(&models.Appointment{CustomerID: 1, Date: "2024-12-01", Time: "10:00", Status: "scheduled", Notes: "Table for 4"}).Error)

	res := reg.Dispatch(ctx, 1, "get_revenue", `{"start_date":"2024-12-01","end_date":"2025-01-01"}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "Revenue from 2024-12-01 to 2025-01-01: $150.00 across 1 paid invoice(s).", res.Text)

	res = reg.Dispatch(ctx, 1, "get_schedule", `{"date":"2024-12-01"}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "Appointments:\n- 2024-12-01 10:00 (scheduled): Table for 4", res.Text)

	res = reg.Dispatch(ctx, 1, "get_schedule", `{"date":"2024-12-02"}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "No appointments on 2024-12-02.", res.Text)
}

func TestUnansweredQuestionTools(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	res := reg.Dispatch(ctx, 1, "record_unanswered_question", `{"question":"Do you cater weddings?"}`)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Text, "Recorded question #1")

	res = reg.Dispatch(ctx, 1, "get_unanswered_questions", `{}`)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Text, "[pending] Do you cater weddings?")

	res = reg.Dispatch(ctx, 2, "get_unanswered_questions", `{"status":"all"}`)
	require.NoError(t, res.Err)
	assert.Equal(t, "There are no unanswered questions.", res.Text)
}

func TestListAllTenantsHidesContactDetails(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, store.CreateCustomer(ctx, &models.Customer{
		Name:            "Owner",
		Email:           "owner@example.com",
		Phone:           "+1555",
		BusinessName:    "Bella Vista",
		BusinessType:    "restaurant",
		BusinessAddress: "123 Main St",
	}))

	res := reg.Dispatch(ctx, 7, "list_all_tenants", ``)
	require.NoError(t, res.Err)
	assert.Equal(t, "Businesses:\n- #1 Bella Vista (restaurant), 123 Main St", res.Text)
	assert.NotContains(t, res.Text, "owner@example.com")
}

type panickyStore struct{ KnowledgeStore }

func (panickyStore) ListInventory(context.Context, uint) ([]models.InventoryItem, error) {
	panic("boom")
}

func TestDispatchRecoversPanics(t *testing.T) {
	reg := MustNewRegistry(panickyStore{}, zerolog.Nop())

	res := reg.Dispatch(context.Background(), 1, "get_inventory", `{}`)
	require.Error(t, res.Err)
	assert.Equal(t, "Error: get_inventory failed unexpectedly", res.Text)
}
