package statement

import (
	"slices"
	"strings"

	"github.com/gagyebu/gagyebu/internal/cell"
	"github.com/gagyebu/gagyebu/internal/model"
)

// columnRule classifies a header key into a role.
type columnRule struct {
	role  model.Role
	match func(key string) bool
}

// exactly matches whole header names, ignoring inner spaces.
func exactly(role model.Role, names ...string) columnRule {
	return columnRule{role: role, match: func(key string) bool {
		return slices.Contains(names, strings.ReplaceAll(key, " ", ""))
	}}
}

func containing(role model.Role, subs ...string) columnRule {
	return columnRule{role: role, match: func(key string) bool {
		return cell.ContainsAny(key, subs...)
	}}
}

// columnRules are evaluated in order; the first match wins.
// Issuer-specific exact names come before generic substrings so that
// "출금액" is a withdrawal column and not a combined amount.
var columnRules = []columnRule{
	exactly(model.RoleWithdrawal, "출금(원)", "출금", "출금액", "출금금액", "찾으신금액"),
	exactly(model.RoleDeposit, "입금(원)", "입금", "입금액", "입금금액", "맡기신금액"),
	containing(model.RoleDate, "일자", "날짜", "일시", "date"),
	containing(model.RoleTime, "시간", "시각", "time"),
	containing(model.RoleAmount, "금액", "원금", "amount"),
	containing(model.RoleMerchant, "가맹점", "상호", "내용", "적요", "merchant", "description"),
}

// ClassifyHeader returns the role of a single header text.
func ClassifyHeader(text string) (model.Role, bool) {
	key := cell.Key(text)
	if key == "" {
		return "", false
	}
	for _, r := range columnRules {
		if r.match(key) {
			return r.role, true
		}
	}
	return "", false
}

// Mapping is the column layout resolved from a header row.
type Mapping struct {
	Headers []string
	Columns model.HeaderMap
	// Candidates lists every column per role in sheet order; Columns holds the first.
	Candidates map[model.Role][]int
}

// MapColumns classifies the cells of a header row.
func MapColumns(header model.Row) (Mapping, error) {
	m := Mapping{
		Headers:    make([]string, len(header)),
		Columns:    model.HeaderMap{},
		Candidates: map[model.Role][]int{},
	}
	for i, c := range header {
		text := cell.Clean(c.String())
		m.Headers[i] = text
		role, ok := ClassifyHeader(text)
		if !ok {
			continue
		}
		if _, seen := m.Columns[role]; !seen {
			m.Columns[role] = i
		}
		m.Candidates[role] = append(m.Candidates[role], i)
	}

	if missing := m.Columns.Missing(); len(missing) > 0 {
		return m, &ColumnMappingError{Headers: m.Headers, Columns: m.Columns, Missing: missing}
	}
	return m, nil
}
