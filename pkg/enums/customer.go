package enums

import "fmt"

// CustomerType segments customers by how they buy.
type CustomerType string

const (
	CustomerTypeRetail    CustomerType = "retail"
	CustomerTypeBulk      CustomerType = "bulk"
	CustomerTypeCorporate CustomerType = "corporate"
)

var validCustomerTypes = []CustomerType{
	CustomerTypeRetail,
	CustomerTypeBulk,
	CustomerTypeCorporate,
}

// String implements fmt.Stringer.
func (t CustomerType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known CustomerType.
func (t CustomerType) IsValid() bool {
	for _, candidate := range validCustomerTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCustomerType converts raw input into a CustomerType.
func ParseCustomerType(value string) (CustomerType, error) {
	for _, candidate := range validCustomerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer type %q", value)
}

// CustomerStatus captures the lifecycle standing of a customer account.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusVIP      CustomerStatus = "vip"
	CustomerStatusInactive CustomerStatus = "inactive"
)

var validCustomerStatuses = []CustomerStatus{
	CustomerStatusActive,
	CustomerStatusVIP,
	CustomerStatusInactive,
}

// String implements fmt.Stringer.
func (s CustomerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CustomerStatus.
func (s CustomerStatus) IsValid() bool {
	for _, candidate := range validCustomerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCustomerStatus converts raw input into a CustomerStatus.
func ParseCustomerStatus(value string) (CustomerStatus, error) {
	for _, candidate := range validCustomerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer status %q", value)
}
