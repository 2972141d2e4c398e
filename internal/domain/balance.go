package domain

// BalanceRecord is the per-item shape used for bulk balance export and import.
// Equipped is only set for equippable goods, CurrentUpgrade only for goods
// that have an upgrade chain (empty string means no upgrade yet).
type BalanceRecord struct {
	Balance        int     `json:"balance"`
	Equipped       *bool   `json:"equipped,omitempty"`
	CurrentUpgrade *string `json:"currentUpgrade,omitempty"`
}

// Balances maps item ids to their persisted state
type Balances map[string]BalanceRecord
