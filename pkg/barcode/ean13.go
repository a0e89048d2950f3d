// Package barcode valida códigos EAN-13 (GS1).
package barcode

import (
	"fmt"
	"unicode"
)

// pesos GS1 para los 12 primeros dígitos, de izquierda a derecha.
var ean13Weights = [12]int{1, 3, 1, 3, 1, 3, 1, 3, 1, 3, 1, 3}

// ComputeEAN13CheckDigit calcula el dígito de control para los 12 primeros dígitos.
func ComputeEAN13CheckDigit(code string) (byte, error) {
	digits, err := onlyDigits(code)
	if err != nil {
		return 0, err
	}
	if len(digits) < 12 {
		return 0, fmt.Errorf("barcode: se requieren 12 dígitos para calcular el control, se encontraron %d", len(digits))
	}
	var sum int
	for i, d := range digits[:12] {
		sum += int(d-'0') * ean13Weights[i]
	}
	return byte('0' + (10-sum%10)%10), nil
}

// ValidateEAN13 comprueba longitud y dígito de control.
// El ledger no lo exige al dar de alta items: solo se informa en los reportes.
func ValidateEAN13(code string) error {
	digits, err := onlyDigits(code)
	if err != nil {
		return err
	}
	if len(digits) != 13 {
		return fmt.Errorf("barcode: EAN-13 debe tener 13 dígitos, se recibieron %d", len(digits))
	}
	expected, _ := ComputeEAN13CheckDigit(code)
	if digits[12] != expected {
		return fmt.Errorf("barcode: dígito de control inválido: esperado %c, recibido %c", expected, digits[12])
	}
	return nil
}

// IsValidEAN13 atajo de ValidateEAN13.
func IsValidEAN13(code string) bool { return ValidateEAN13(code) == nil }

func onlyDigits(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return nil, fmt.Errorf("barcode: carácter no numérico %q", r)
		}
		out = append(out, byte(r))
	}
	return out, nil
}
