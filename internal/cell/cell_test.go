package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{"2024.01.15", "2024-01-15", true},
		{"2024/01/15", "2024-01-15", true},
		{"2024.1.5", "2024-01-05", true},
		{"2024/1/5", "2024-01-05", true},
		{"2024.01.15.", "2024-01-15", true},
		{"2024-01-15 13:45:01", "2024-01-15", true},
		{"  2024.03.01 09:10 ", "2024-03-01", true},
		{"1/15/24", "2024-01-15", true},
		{"12/31/99", "1999-12-31", true},
		{"3/4/70", "1970-03-04", true},
		{"3/4/69", "2069-03-04", true},
		{"2024-13-45", "", false},
		{"2023-02-29", "", false},
		{"13/45/99", "", false},
		{"2024-01/15", "", false},
		{"abc", "", false},
		{"", "", false},
		{"합계", "", false},
		{"20240115", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeDate(tt.raw)
		assert.Equal(t, tt.ok, ok, "NormalizeDate(%q)", tt.raw)
		assert.Equal(t, tt.want, got, "NormalizeDate(%q)", tt.raw)
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1,234,567원", "1234567"},
		{"₩10,000", "10000"},
		{"₩ 5,000 원", "5000"},
		{" 50000 ", "50000"},
		{"1234.5", "1234.5"},
		{"-3,000", "-3000"},
		{"", "0"},
		{"-", "0"},
		{"  ", "0"},
		{"n/a", "0"},
		{"12abc", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeAmount(tt.raw).String(), "NormalizeAmount(%q)", tt.raw)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "거래일자", Clean(" 거래\n일자 "))
	assert.Equal(t, "출금(원)", Clean("출금(원)\r\n"))

	decomposed := norm.NFD.String("가맹점명")
	assert.NotEqual(t, "가맹점명", decomposed)
	assert.Equal(t, "가맹점명", Clean(decomposed))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "transaction date", Key(" Transaction Date\n"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("이용금액", "금액", "원금"))
	assert.False(t, ContainsAny("가맹점명", "금액", "원금"))
	assert.False(t, ContainsAny("anything"))
}
