package budgeting

import "github.com/shopspring/decimal"

// EventKind names a committed ledger change
type EventKind string

const (
	EventBudgetCreated      EventKind = "budget.created"
	EventBudgetSelected     EventKind = "budget.selected"
	EventCategoryCreated    EventKind = "category.created"
	EventCategoryUpdated    EventKind = "category.updated"
	EventTransactionCreated EventKind = "transaction.created"
	EventFundsTransferred   EventKind = "funds.transferred"
)

// Event is delivered to listeners after a mutation has been committed.
// Presentation layers use it to know which views to re-render.
type Event struct {
	Kind       EventKind `json:"kind"`
	BudgetID   uint      `json:"budget_id"`
	CategoryID uint      `json:"category_id,omitempty"`

	// FromCategoryID is the source of a funds.transferred event; CategoryID
	// is its destination.
	FromCategoryID uint `json:"from_category_id,omitempty"`

	TransactionID uint `json:"transaction_id,omitempty"`
	TransferID    uint `json:"transfer_id,omitempty"`

	// Amount is the signed posting, the moved sum or a budget's opening
	// funds, depending on Kind.
	Amount decimal.Decimal `json:"amount"`
}

// Listener receives ledger events. It runs synchronously on the caller's
// goroutine after the engine lock is released, so it may call back into
// Budgeting.
type Listener func(Event)

type subscription struct {
	id       int
	listener Listener
}

// Subscribe registers l and returns a function that removes it
func (b *Budgeting) Subscribe(l Listener) func() {
	b.listenersMu.Lock()
	defer b.listenersMu.Unlock()

	id := b.nextListener
	b.nextListener++
	b.listeners = append(b.listeners, subscription{id: id, listener: l})

	return func() {
		b.listenersMu.Lock()
		defer b.listenersMu.Unlock()
		for i, s := range b.listeners {
			if s.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// publish delivers evt to every listener in subscription order
func (b *Budgeting) publish(evt Event) {
	b.listenersMu.Lock()
	subs := make([]subscription, len(b.listeners))
	copy(subs, b.listeners)
	b.listenersMu.Unlock()

	for _, s := range subs {
		s.listener(evt)
	}
}
