package gateway

import "testing"

func TestValidAmount(t *testing.T) {
	for _, amount := range []int64{1, 100, 5000, 1 << 40} {
		if !ValidAmount(amount) {
			t.Errorf("ValidAmount(%d) = false, want true", amount)
		}
	}
	for _, amount := range []int64{0, -1, -5000} {
		if ValidAmount(amount) {
			t.Errorf("ValidAmount(%d) = true, want false", amount)
		}
	}
}

func TestSupportedCurrency(t *testing.T) {
	supported := []string{"XOF", "EUR", "USD"}

	for _, code := range []string{"XOF", "xof", "Eur", "usd"} {
		if !SupportedCurrency(code, supported) {
			t.Errorf("SupportedCurrency(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"NGN", "", "XO", "EURO"} {
		if SupportedCurrency(code, supported) {
			t.Errorf("SupportedCurrency(%q) = true, want false", code)
		}
	}
}
