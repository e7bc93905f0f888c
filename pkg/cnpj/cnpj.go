// Package cnpj valida y formatea el CNPJ (Cadastro Nacional da Pessoa Jurídica).
package cnpj

import (
	"errors"
	"fmt"
	"unicode"
)

// pesos módulo 11 para el primer y segundo dígito verificador.
var (
	firstWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

var ErrInvalid = errors.New("cnpj inválido")

// Validate comprueba longitud y dígitos verificadores. Acepta el valor con o sin máscara.
func Validate(s string) error {
	digits := extractDigits(s)
	if len(digits) != 14 {
		return fmt.Errorf("%w: se esperaban 14 dígitos, se encontraron %d", ErrInvalid, len(digits))
	}
	if allEqual(digits) {
		return fmt.Errorf("%w: dígitos repetidos", ErrInvalid)
	}
	d1 := checkDigit(digits[:12], firstWeights[:])
	d2 := checkDigit(digits[:13], secondWeights[:])
	if digits[12] != d1 || digits[13] != d2 {
		return fmt.Errorf("%w: dígitos verificadores esperados %c%c, recibidos %c%c", ErrInvalid, d1, d2, digits[12], digits[13])
	}
	return nil
}

// Normalize valida y devuelve el CNPJ con máscara 00.000.000/0000-00.
func Normalize(s string) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	return Format(s), nil
}

// Format aplica la máscara sin validar. Si no hay 14 dígitos devuelve la entrada tal cual.
func Format(s string) string {
	d := extractDigits(s)
	if len(d) != 14 {
		return s
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
}

func checkDigit(digits []byte, weights []int) byte {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + (11 - r))
}

func allEqual(d []byte) bool {
	for _, c := range d[1:] {
		if c != d[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
