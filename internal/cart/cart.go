package cart

import (
	"resto-pos/internal/model"

	"github.com/google/uuid"
)

// Session is the order builder for a single checkout flow. It owns the
// in-progress lines outright: there is no shared or package-level cart
// state, and a session is discarded (or cleared) once its order completes.
//
// A session is not safe for concurrent use; one checkout flow owns it.
type Session struct {
	id      uuid.UUID
	mode    model.OrderMode
	payment model.PaymentMethod
	lines   []model.CartLine
}

// NewSession creates an empty checkout session with defaults matching a
// walk-in customer paying cash.
func NewSession() *Session {
	return &Session{
		id:      uuid.New(),
		mode:    model.ModeDineIn,
		payment: model.PaymentCash,
	}
}

// ID returns the session's identity, used for log correlation only.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// SetMode sets the order mode for the eventual order.
func (s *Session) SetMode(mode model.OrderMode) error {
	if !mode.Valid() {
		return model.ErrInvalidMode
	}
	s.mode = mode
	return nil
}

// Mode returns the currently selected order mode.
func (s *Session) Mode() model.OrderMode {
	return s.mode
}

// SetPayment sets the payment method for the eventual order.
func (s *Session) SetPayment(payment model.PaymentMethod) error {
	if !payment.Valid() {
		return model.ErrInvalidPayment
	}
	s.payment = payment
	return nil
}

// Payment returns the currently selected payment method.
func (s *Session) Payment() model.PaymentMethod {
	return s.payment
}

// AddLine appends a line for the given menu item. Quantity must be at
// least one.
func (s *Session) AddLine(item model.MenuItem, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	s.lines = append(s.lines, model.CartLine{
		ItemName: item.Name,
		Category: item.Category,
		Price:    item.Price,
		TaxRate:  item.TaxRate,
		Quantity: quantity,
	})
	return nil
}

// RemoveLast removes and returns the most recently added line. The second
// return value is false if the session is empty.
func (s *Session) RemoveLast() (model.CartLine, bool) {
	if len(s.lines) == 0 {
		return model.CartLine{}, false
	}
	last := s.lines[len(s.lines)-1]
	s.lines = s.lines[:len(s.lines)-1]
	return last, true
}

// RemoveLine removes the line at index i.
func (s *Session) RemoveLine(i int) error {
	if i < 0 || i >= len(s.lines) {
		return model.NewDomainError(model.ErrCodeInternalError, "cart line index out of range")
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return nil
}

// Clear discards all lines.
func (s *Session) Clear() {
	s.lines = nil
}

// Lines returns a copy of the session's lines in insertion order.
func (s *Session) Lines() []model.CartLine {
	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Empty reports whether the session has no lines.
func (s *Session) Empty() bool {
	return len(s.lines) == 0
}
