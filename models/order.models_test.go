package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardLast4(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain number", "4111111111111111", "1111"},
		{"spaced number", "4111 1111 1111 1234", "1234"},
		{"dashed number", "4111-1111-1111-9876", "9876"},
		{"short input returned as-is", "123", "123"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CardLast4(tt.in))
		})
	}
}

func TestAddressDefaultsCountry(t *testing.T) {
	in := AddressInput{Street: "1 MG Road", City: "Bengaluru", State: "KA", ZipCode: "560001"}
	assert.Equal(t, "India", in.ToAddress().Country)

	in.Country = "Nepal"
	assert.Equal(t, "Nepal", in.ToAddress().Country)
}
