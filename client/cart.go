package client

import (
	"myshop-backend/models"
	"myshop-backend/pricing"
)

// Persisted storage keys.
const (
	keyCartItems       = "cartItems"
	keyShippingAddress = "shippingAddress"
	keyPaymentMethod   = "paymentMethod"
	keyUserInfo        = "userInfo"
)

// DefaultPaymentMethod is used until the shopper picks one.
const DefaultPaymentMethod = "PayPal"

// CartItem is a product snapshot plus the chosen quantity.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// UserInfo is the logged-in identity persisted alongside the cart.
type UserInfo struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// CartStore holds the shopper's cart and checkout preferences. All state is
// explicit and injected; every mutation writes through to the backing
// Storage.
type CartStore struct {
	storage *Storage
	items   []CartItem
}

// NewCartStore loads any persisted cart from storage.
func NewCartStore(storage *Storage) (*CartStore, error) {
	s := &CartStore{storage: storage}
	if _, err := storage.Get(keyCartItems, &s.items); err != nil {
		return nil, err
	}
	return s, nil
}

// Items returns the cart's line items in insertion order.
func (s *CartStore) Items() []CartItem {
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// AddItem puts a product in the cart. Adding a product that is already
// present replaces its entry, so the latest quantity wins and the cart
// never holds two entries for one product.
func (s *CartStore) AddItem(product models.Product, qty int) error {
	item := CartItem{
		ProductID: product.ID.Hex(),
		Name:      product.Name,
		Image:     product.Image,
		Price:     product.Price,
		Qty:       qty,
	}

	replaced := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, item)
	}
	return s.storage.Set(keyCartItems, s.items)
}

// RemoveItem drops the entry for the given product id, if present.
func (s *CartStore) RemoveItem(productID string) error {
	filtered := s.items[:0]
	for _, it := range s.items {
		if it.ProductID != productID {
			filtered = append(filtered, it)
		}
	}
	s.items = filtered
	return s.storage.Set(keyCartItems, s.items)
}

// Clear empties the cart and erases its persisted copy.
func (s *CartStore) Clear() error {
	s.items = nil
	return s.storage.Delete(keyCartItems)
}

// Totals derives the checkout price breakdown for the current cart.
func (s *CartStore) Totals() pricing.Totals {
	lineItems := make([]pricing.LineItem, 0, len(s.items))
	for _, it := range s.items {
		lineItems = append(lineItems, pricing.LineItem{Price: it.Price, Qty: it.Qty})
	}
	return pricing.Calculate(lineItems)
}

// ShippingAddress returns the persisted shipping address, zero-valued when
// none was saved yet.
func (s *CartStore) ShippingAddress() (models.ShippingAddress, error) {
	var addr models.ShippingAddress
	_, err := s.storage.Get(keyShippingAddress, &addr)
	return addr, err
}

// SaveShippingAddress persists the shipping address independently of the
// cart contents.
func (s *CartStore) SaveShippingAddress(addr models.ShippingAddress) error {
	return s.storage.Set(keyShippingAddress, addr)
}

// PaymentMethod returns the persisted payment preference, falling back to
// the default.
func (s *CartStore) PaymentMethod() (string, error) {
	var method string
	found, err := s.storage.Get(keyPaymentMethod, &method)
	if err != nil {
		return "", err
	}
	if !found || method == "" {
		return DefaultPaymentMethod, nil
	}
	return method, nil
}

// SavePaymentMethod persists the payment preference.
func (s *CartStore) SavePaymentMethod(method string) error {
	return s.storage.Set(keyPaymentMethod, method)
}

// SaveUserInfo persists the logged-in identity and token.
func (s *CartStore) SaveUserInfo(info UserInfo) error {
	return s.storage.Set(keyUserInfo, info)
}

// UserInfo returns the persisted identity. found is false when nobody is
// logged in.
func (s *CartStore) UserInfo() (UserInfo, bool, error) {
	var info UserInfo
	found, err := s.storage.Get(keyUserInfo, &info)
	return info, found, err
}

// ClearUserInfo logs the user out of the persisted state.
func (s *CartStore) ClearUserInfo() error {
	return s.storage.Delete(keyUserInfo)
}
