package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/chatherine-be/internal/core/kb"
	"github.com/MuhamadAgungGumelar/chatherine-be/internal/models"
)

type KBHandler struct {
	store *kb.Store
}

func NewKBHandler(store *kb.Store) *KBHandler {
	return &KBHandler{store: store}
}

type CreateCustomerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	BusinessName    string `json:"business_name"`
	BusinessType    string `json:"business_type"`
	BusinessAddress string `json:"business_address"`
}

type FactRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	IsPublic *bool  `json:"is_public"`
}

type OfferingRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	IsAvailable *bool    `json:"is_available"`
}

type AnswerRequest struct {
	Response string `json:"response"`
}

// ListCustomers godoc
// @Summary List customers
// @Description Returns every business account
// @Tags Customers
// @Produce json
// @Success 200 {array} models.Customer
// @Router /customers [get]
func (h *KBHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.store.ListCustomers(c.UserContext())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(customers)
}

// CreateCustomer godoc
// @Summary Create a customer
// @Description Registers a business account
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body CreateCustomerRequest true "Customer"
// @Success 201 {object} models.Customer
// @Failure 400 {object} map[string]string
// @Router /customers [post]
func (h *KBHandler) CreateCustomer(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	customer := models.Customer{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		BusinessName:    req.BusinessName,
		BusinessType:    req.BusinessType,
		BusinessAddress: req.BusinessAddress,
	}
	if err := h.store.CreateCustomer(c.UserContext(), &customer); err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetCustomer godoc
// @Summary Get a customer
// @Tags Customers
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} models.Customer
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [get]
func (h *KBHandler) GetCustomer(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	customer, err := h.store.GetCustomer(c.UserContext(), id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(customer)
}

// ListFacts godoc
// @Summary List facts
// @Description Returns the customer's knowledge base facts
// @Tags KnowledgeBase
// @Produce json
// @Param id path int true "Customer ID"
// @Param public query bool false "Only public facts"
// @Success 200 {array} models.BusinessFact
// @Router /customers/{id}/facts [get]
func (h *KBHandler) ListFacts(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	facts, err := h.store.ListFacts(c.UserContext(), id, c.QueryBool("public", false))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(facts)
}

// UpsertFact godoc
// @Summary Save a fact
// @Description Creates the fact, or replaces the content of the fact with the same category and title
// @Tags KnowledgeBase
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param fact body FactRequest true "Fact"
// @Success 200 {object} models.BusinessFact
// @Failure 400 {object} map[string]string
// @Router /customers/{id}/facts [post]
func (h *KBHandler) UpsertFact(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	var req FactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	fact, err := h.store.UpsertFact(c.UserContext(), id, kb.FactInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(fact)
}

// SearchFacts godoc
// @Summary Search facts
// @Description Case-insensitive substring match over title, content and category
// @Tags KnowledgeBase
// @Produce json
// @Param id path int true "Customer ID"
// @Param q query string true "Search text"
// @Success 200 {array} models.BusinessFact
// @Failure 400 {object} map[string]string
// @Router /customers/{id}/facts/search [get]
func (h *KBHandler) SearchFacts(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	facts, err := h.store.SearchFacts(c.UserContext(), id, c.Query("q"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(facts)
}

// ListOfferings godoc
// @Summary List offerings
// @Tags Offerings
// @Produce json
// @Param id path int true "Customer ID"
// @Param available query bool false "Only available offerings"
// @Success 200 {array} models.BusinessService
// @Router /customers/{id}/offerings [get]
func (h *KBHandler) ListOfferings(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	offerings, err := h.store.ListOfferings(c.UserContext(), id, c.QueryBool("available", false))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(offerings)
}

// AddOffering godoc
// @Summary Add an offering
// @Tags Offerings
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param offering body OfferingRequest true "Offering"
// @Success 201 {object} models.BusinessService
// @Failure 400 {object} map[string]string
// @Router /customers/{id}/offerings [post]
func (h *KBHandler) AddOffering(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	var req OfferingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	offering, err := h.store.AddOffering(c.UserContext(), id, kb.OfferingInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(offering)
}

// ListUnanswered godoc
// @Summary List unanswered questions
// @Tags KnowledgeBase
// @Produce json
// @Param id path int true "Customer ID"
// @Param status query string false "pending, answered or ignored"
// @Success 200 {array} models.UnansweredQuestion
// @Router /customers/{id}/unanswered [get]
func (h *KBHandler) ListUnanswered(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	questions, err := h.store.ListUnanswered(c.UserContext(), id, c.Query("status"))
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(questions)
}

// AnswerUnanswered godoc
// @Summary Answer a question
// @Description Marks the question answered, or ignored when the response is empty
// @Tags KnowledgeBase
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param qid path int true "Question ID"
// @Param answer body AnswerRequest true "Answer"
// @Success 200 {object} models.UnansweredQuestion
// @Failure 404 {object} map[string]string
// @Router /customers/{id}/unanswered/{qid}/answer [post]
func (h *KBHandler) AnswerUnanswered(c *fiber.Ctx) error {
	id, ok := customerID(c)
	if !ok {
		return badParam(c, "id")
	}
	qid, ok := uintParam(c, "qid")
	if !ok {
		return badParam(c, "qid")
	}
	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	q, err := h.store.AnswerUnanswered(c.UserContext(), id, qid, req.Response)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(q)
}
