package collect

import "sync"

// Hook reacts to a positive gathering event of units collectibles.
type Hook interface {
	Collected(units int)
}

// HookFunc adapts a function to Hook.
type HookFunc func(units int)

func (f HookFunc) Collected(units int) {
	f(units)
}

// Inventory counts the player's collectibles. Hooks fire once per positive
// Add, in registration order.
type Inventory struct {
	mu    sync.Mutex
	count int
	hooks []Hook

	// OnChanged runs after every count change.
	OnChanged func(count int)
}

func NewInventory(hooks ...Hook) *Inventory {
	inv := &Inventory{}
	for _, h := range hooks {
		inv.AddHook(h)
	}
	return inv
}

func (i *Inventory) AddHook(h Hook) {
	if i == nil || h == nil {
		return
	}
	i.mu.Lock()
	i.hooks = append(i.hooks, h)
	i.mu.Unlock()
}

// Add changes the count by amount, clamping at zero. Zero is a no-op and
// negative amounts never trigger hooks.
func (i *Inventory) Add(amount int) {
	if i == nil || amount == 0 {
		return
	}
	i.mu.Lock()
	i.count += amount
	if i.count < 0 {
		i.count = 0
	}
	count := i.count
	hooks := append([]Hook(nil), i.hooks...)
	i.mu.Unlock()

	if i.OnChanged != nil {
		i.OnChanged(count)
	}
	if amount < 0 {
		return
	}
	for _, h := range hooks {
		h.Collected(amount)
	}
}

// Set overwrites the count without triggering hooks.
func (i *Inventory) Set(value int) {
	if i == nil {
		return
	}
	if value < 0 {
		value = 0
	}
	i.mu.Lock()
	i.count = value
	i.mu.Unlock()
	if i.OnChanged != nil {
		i.OnChanged(value)
	}
}

func (i *Inventory) Count() int {
	if i == nil {
		return 0
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.count
}
