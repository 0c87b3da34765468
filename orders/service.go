// Package orders converts a cart snapshot plus the customer's delivery
// details into a durable order, and owns the status lifecycle after that.
package orders

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"queijos-backend/apperr"
	"queijos-backend/cart"
	"queijos-backend/models"
	"queijos-backend/whatsapp"
)

// ValidStatuses is the full set an order can be moved to. Transitions are
// deliberately unguarded: the admin panel moves orders freely, including
// backwards.
var ValidStatuses = []string{"pending", "preparing", "ready", "delivered", "cancelled"}

type Service struct {
	db             *gorm.DB
	whatsappNumber string
}

// NewService wires the order service. whatsappNumber is the restaurant's
// own number, the destination of new-order notifications; it may be empty,
// in which case orders are still created but no link is produced.
func NewService(db *gorm.DB, whatsappNumber string) *Service {
	return &Service{db: db, whatsappNumber: whatsappNumber}
}

type CreateOrderInput struct {
	CustomerName   string             `json:"customerName"`
	CustomerPhone  string             `json:"customerPhone"`
	DeliveryMethod string             `json:"deliveryMethod"`
	Address        string             `json:"address"`
	Items          []models.OrderItem `json:"items"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
}

// CreateResult is a stored order plus the rendered notification. A blank
// WhatsappURL means the restaurant number is not configured; the order
// itself is unaffected.
type CreateResult struct {
	Order       models.Order
	Message     string
	WhatsappURL string
}

// CartSnapshot copies cart lines into order items. The copies are what
// gets persisted; the cart and the live products are left behind.
func CartSnapshot(items []cart.Item) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return out
}

func (s *Service) CreateOrder(input CreateOrderInput) (CreateResult, error) {
	if input.CustomerName == "" || input.CustomerPhone == "" || input.DeliveryMethod == "" ||
		len(input.Items) == 0 || input.TotalAmount.IsZero() {
		return CreateResult{}, apperr.Validation("customer name, phone, delivery method, items and total amount are required")
	}
	if input.DeliveryMethod != "delivery" && input.DeliveryMethod != "pickup" {
		return CreateResult{}, apperr.Validation("delivery method must be 'delivery' or 'pickup'")
	}
	if input.DeliveryMethod == "delivery" && input.Address == "" {
		return CreateResult{}, apperr.Validation("address is required for delivery orders")
	}

	itemsJSON, err := json.Marshal(input.Items)
	if err != nil {
		return CreateResult{}, err
	}

	order := models.Order{
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		DeliveryMethod: input.DeliveryMethod,
		Address:        input.Address,
		Items:          string(itemsJSON),
		TotalAmount:    input.TotalAmount,
		Status:         "pending",
		WhatsappSent:   false,
		Printed:        false,
	}
	if err := s.db.Create(&order).Error; err != nil {
		return CreateResult{}, err
	}

	result := CreateResult{
		Order:   order,
		Message: renderMessage(order.ID, input),
	}
	// Link generation failing never rolls back the order; the customer
	// just doesn't get a pre-filled chat to open.
	if link, err := whatsapp.BuildLink(s.whatsappNumber, result.Message); err == nil {
		result.WhatsappURL = link
	}
	return result, nil
}

// UpdateStatus sets the order's status to any of the recognized values
// and refreshes updatedAt.
func (s *Service) UpdateStatus(id uint, status string) (models.Order, error) {
	if id == 0 || status == "" {
		return models.Order{}, apperr.Validation("order id and status are required")
	}
	valid := false
	for _, st := range ValidStatuses {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return models.Order{}, apperr.Validation("invalid status")
	}

	var order models.Order
	err := s.db.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, apperr.NotFound("order not found")
	}
	if err != nil {
		return models.Order{}, err
	}
	order.Status = status
	if err := s.db.Save(&order).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// List returns every order, newest first.
func (s *Service) List() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
