package customers

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Filter fields understood by the customer view.
const (
	FilterType   = "customer_type"
	FilterStatus = "status"
)

// Descriptor adapts customers to the collection layer.
type Descriptor struct{}

func (Descriptor) ID(c models.Customer) uuid.UUID {
	return c.ID
}

func (Descriptor) SearchValues(c models.Customer) []string {
	return []string{c.Name, c.Email, c.Phone, c.ID.String()}
}

func (Descriptor) FilterValue(c models.Customer, field string) string {
	switch field {
	case FilterType:
		return c.CustomerType.String()
	case FilterStatus:
		return c.Status.String()
	default:
		return ""
	}
}

// Validate aggregates every field failure. Rollup fields are accepted as
// given and never validated against each other.
func (Descriptor) Validate(c models.Customer) error {
	var err error
	if strings.TrimSpace(c.Name) == "" {
		err = multierr.Append(err, errors.New("name: required"))
	}
	if strings.TrimSpace(c.Email) == "" {
		err = multierr.Append(err, errors.New("email: required"))
	} else if _, mailErr := mail.ParseAddress(c.Email); mailErr != nil {
		err = multierr.Append(err, errors.New("email: invalid address"))
	}
	if !c.CustomerType.IsValid() {
		err = multierr.Append(err, errors.New("customer_type: invalid value"))
	}
	if !c.Status.IsValid() {
		err = multierr.Append(err, errors.New("status: invalid value"))
	}
	if c.TotalOrders < 0 {
		err = multierr.Append(err, errors.New("total_orders: must not be negative"))
	}
	if c.TotalSpent.IsNegative() {
		err = multierr.Append(err, errors.New("total_spent: must not be negative"))
	}
	return err
}
