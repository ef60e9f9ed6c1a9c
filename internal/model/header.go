package model

// Role is the meaning of a statement column.
type Role string

const (
	RoleDate       Role = "date"
	RoleWithdrawal Role = "withdrawalAmount"
	RoleDeposit    Role = "depositAmount"
	RoleAmount     Role = "amount"
	RoleMerchant   Role = "merchant"
	RoleTime       Role = "time"
)

// HeaderMap maps a role to its zero-based column index.
type HeaderMap map[Role]int

// Column returns the column index for role.
func (m HeaderMap) Column(role Role) (int, bool) {
	col, ok := m[role]
	return col, ok
}

// HasSplitAmounts reports whether separate withdrawal or deposit columns were found.
func (m HeaderMap) HasSplitAmounts() bool {
	_, w := m[RoleWithdrawal]
	_, d := m[RoleDeposit]
	return w || d
}

// Missing lists the required roles that are absent: date, and any amount-bearing role.
func (m HeaderMap) Missing() []Role {
	var missing []Role
	if _, ok := m[RoleDate]; !ok {
		missing = append(missing, RoleDate)
	}
	_, amt := m[RoleAmount]
	if !amt && !m.HasSplitAmounts() {
		missing = append(missing, RoleAmount)
	}
	return missing
}

// Valid reports whether the map can drive row extraction.
func (m HeaderMap) Valid() bool {
	return len(m.Missing()) == 0
}
