package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderType distinguishes normal outbound orders from inbound returns.
// The type flips the sign convention for line quantities: normal orders
// carry positive quantities, returns carry negative ones.
type OrderType int

const (
	OrderTypeNormal OrderType = 1
	OrderTypeReturn OrderType = 2
)

func (t OrderType) String() string {
	if t == OrderTypeReturn {
		return "Return"
	}
	return "Normal"
}

// Sign returns the quantity sign convention for the order type.
func (t OrderType) Sign() int64 {
	if t == OrderTypeReturn {
		return -1
	}
	return 1
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(t))
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "Return" {
			*t = OrderTypeReturn
		} else {
			*t = OrderTypeNormal
		}
		return nil
	}
	*t = OrderType(i)
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	if value == nil {
		*t = OrderTypeNormal
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = OrderType(v)
	case int:
		*t = OrderType(v)
	}
	return nil
}
