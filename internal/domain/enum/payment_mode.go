package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PaymentMode represents how a receipt is paid
type PaymentMode int

const (
	PaymentModeFull    PaymentMode = 0
	PaymentModePartial PaymentMode = 1
)

func (m PaymentMode) String() string {
	return [...]string{"Full", "Partial"}[m]
}

// Valid reports whether the mode is one of the known values
func (m PaymentMode) Valid() bool {
	return m == PaymentModeFull || m == PaymentModePartial
}

// ParsePaymentMode parses a payment mode from its string form
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch s {
	case "Full":
		return PaymentModeFull, nil
	case "Partial":
		return PaymentModePartial, nil
	}
	return PaymentModeFull, fmt.Errorf("unknown payment mode %q", s)
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMode(i)
		return nil
	}
	parsed, err := ParsePaymentMode(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeFull
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMode(v)
	case int:
		*m = PaymentMode(v)
	}
	return nil
}
