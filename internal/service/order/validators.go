package order

import (
	"fmt"
	"regexp"
	"strings"

	"logistics/internal/entities"
)

var phoneRegex = regexp.MustCompile(`^(0|\+84)\d{9,10}$`)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

// validateParty проверяет сторону и приводит код региона к каноничному виду "N-HN".
func validateParty(role string, p *entities.Party) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: %s name is required", ErrInvalidOrder, role)
	}
	if !phoneRegex.MatchString(p.Phone) {
		return fmt.Errorf("%w: %s phone %q is malformed", ErrInvalidOrder, role, p.Phone)
	}
	if strings.TrimSpace(p.Address) == "" {
		return fmt.Errorf("%w: %s address is required", ErrInvalidOrder, role)
	}
	region, err := entities.ParseRegion(p.RegionCode)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidOrder, role, err)
	}
	p.RegionCode = region.Code()
	return nil
}

func validateCreate(c *entities.OrderCreate) error {
	if !isValidID(c.OwnerID) {
		return fmt.Errorf("%w: owner is required", ErrInvalidOrder)
	}
	if err := validateParty("sender", &c.Sender); err != nil {
		return err
	}
	if err := validateParty("recipient", &c.Recipient); err != nil {
		return err
	}
	if !c.Weight.IsPositive() {
		return fmt.Errorf("%w: weight must be > 0", ErrInvalidOrder)
	}
	if c.COD < 0 || c.OrderValue < 0 {
		return fmt.Errorf("%w: cod and order value must be >= 0", ErrInvalidOrder)
	}
	if !c.Payer.Valid() {
		return fmt.Errorf("%w: unknown payer %q", ErrInvalidOrder, c.Payer)
	}
	if !c.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, c.PaymentMethod)
	}
	return nil
}

func validateEdit(e *entities.OrderEdit) error {
	if !isValidID(e.ID) {
		return fmt.Errorf("%w: order id is required", ErrInvalidOrder)
	}
	if e.ExpectedVersion <= 0 {
		return fmt.Errorf("%w: expected version is required", ErrInvalidOrder)
	}
	if e.Weight != nil && !e.Weight.IsPositive() {
		return fmt.Errorf("%w: weight must be > 0", ErrInvalidOrder)
	}
	if (e.COD != nil && *e.COD < 0) || (e.OrderValue != nil && *e.OrderValue < 0) {
		return fmt.Errorf("%w: cod and order value must be >= 0", ErrInvalidOrder)
	}
	for _, phone := range []*string{e.SenderPhone, e.RecipientPhone} {
		if phone != nil && !phoneRegex.MatchString(*phone) {
			return fmt.Errorf("%w: phone %q is malformed", ErrInvalidOrder, *phone)
		}
	}
	for _, code := range []**string{&e.SenderRegion, &e.RecipientRegion} {
		if *code == nil {
			continue
		}
		region, err := entities.ParseRegion(**code)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidOrder, err)
		}
		normalized := region.Code()
		*code = &normalized
	}
	return nil
}

func validateActor(a entities.Actor) error {
	if !isValidID(a.ID) || !a.Role.Valid() {
		return fmt.Errorf("%w: actor id and role are required", ErrInvalidOrder)
	}
	return nil
}
