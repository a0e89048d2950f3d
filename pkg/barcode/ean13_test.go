package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEAN13CheckDigit(t *testing.T) {
	tests := []struct {
		code string
		want byte
	}{
		{"400638133393", '1'}, // 4006381333931
		{"590123412345", '7'}, // 5901234123457
		{"123456789012", '8'}, // 1234567890128
		{"000000000000", '0'},
	}
	for _, tt := range tests {
		got, err := ComputeEAN13CheckDigit(tt.code)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.want, got, tt.code)
	}

	_, err := ComputeEAN13CheckDigit("123")
	assert.Error(t, err)
}

func TestValidateEAN13(t *testing.T) {
	assert.NoError(t, ValidateEAN13("4006381333931"))
	assert.NoError(t, ValidateEAN13("5901234123457"))

	assert.Error(t, ValidateEAN13("1234567890123"), "dígito de control incorrecto")
	assert.Error(t, ValidateEAN13("400638133393"), "longitud")
	assert.Error(t, ValidateEAN13("40063813339A1"), "no numérico")
	assert.False(t, IsValidEAN13(""))
}
