// Package cart keeps the shopper's in-progress selection. The store is
// ordered (insertion order is preserved) and writes itself through a
// Storage port on every mutation, so a reload picks up where the shopper
// left off.
package cart

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"

	"queijos-backend/models"
)

// Item is one cart line: a snapshot of the product's display fields plus
// the chosen quantity. Price unmarshals from either a JSON number or a
// quoted string, since older clients send it as text.
type Item struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl"`
	Quantity int             `json:"quantity"`
}

// Storage is the persistence port. The production implementation writes a
// JSON file; tests inject MemoryStorage.
type Storage interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

type Store struct {
	storage Storage
	items   []Item
}

// New rehydrates the store from storage, or starts empty if nothing was
// saved yet.
func New(storage Storage) (*Store, error) {
	items, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Store{storage: storage, items: items}, nil
}

// Add puts quantity units of the product in the cart. If the product is
// already there its quantity is incremented; otherwise a new line is
// appended. Quantities below 1 count as 1.
func (s *Store) Add(p models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity += quantity
			return s.persist()
		}
	}
	s.items = append(s.items, Item{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Quantity: quantity,
	})
	return s.persist()
}

// Remove drops the line with the given product id. No-op if absent.
func (s *Store) Remove(id uint) error {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return s.persist()
}

// SetQuantity sets the line's quantity to exactly quantity. Zero or
// negative removes the line, so a quantity below 1 is never stored.
func (s *Store) SetQuantity(id uint, quantity int) error {
	if quantity <= 0 {
		return s.Remove(id)
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	return s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.items = nil
	return s.persist()
}

// TotalPrice is the sum of price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Count is the sum of quantities, not the number of distinct lines.
func (s *Store) Count() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) persist() error {
	return s.storage.Save(s.items)
}

// MemoryStorage holds the cart in memory. Used in tests and anywhere the
// cart should not outlive the process.
type MemoryStorage struct {
	items []Item
}

func (m *MemoryStorage) Load() ([]Item, error) {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *MemoryStorage) Save(items []Item) error {
	m.items = make([]Item, len(items))
	copy(m.items, items)
	return nil
}

// FileStorage persists the cart as a JSON file, the server-side analog of
// the browser's localStorage entry.
type FileStorage struct {
	Path string
}

func (f *FileStorage) Load() ([]Item, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (f *FileStorage) Save(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o644)
}
