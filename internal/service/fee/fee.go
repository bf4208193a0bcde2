package fee

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"logistics/internal/entities"
)

// MaxWeight: предел колонки orders.weight NUMERIC(10, 3).
var MaxWeight = decimal.RequireFromString("9999999.999")

type Quote struct {
	RegionClass entities.RegionClass
	BaseFee     int64
	Discount    int64
	FinalFee    int64
	PromotionID *string
}

// Engine считает стоимость доставки. Чистые функции без состояния, безопасны для конкурентного вызова.
type Engine struct {
	table RateTable
}

func New(table RateTable) (*Engine, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("rate table: %w", err)
	}
	return &Engine{table: table}, nil
}

func MustDefault() *Engine {
	e, err := New(DefaultRateTable())
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Engine) ComputeFee(
	weight decimal.Decimal,
	service entities.ServiceType,
	originRegion string,
	destRegion string,
) (int64, entities.RegionClass, error) {
	if !weight.IsPositive() {
		return 0, "", fmt.Errorf("%w: weight must be > 0, got %s", ErrInvalidInput, weight)
	}
	if weight.GreaterThan(MaxWeight) {
		return 0, "", fmt.Errorf("%w: weight %s kg exceeds %s kg", ErrInvalidInput, weight, MaxWeight)
	}
	if _, ok := e.table[service]; !ok {
		return 0, "", fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, service)
	}

	origin, err := entities.ParseRegion(originRegion)
	if err != nil {
		return 0, "", fmt.Errorf("%w: origin: %w", ErrInvalidInput, err)
	}
	dest, err := entities.ParseRegion(destRegion)
	if err != nil {
		return 0, "", fmt.Errorf("%w: destination: %w", ErrInvalidInput, err)
	}

	class := entities.Classify(origin, dest)
	bracket, ok := e.table.lookup(service, class, weight)
	if !ok {
		return 0, class, fmt.Errorf("%w: no tier for %s/%s at %s kg", ErrInvalidInput, service, class, weight)
	}

	price, err := bracket.price(weight)
	if err != nil {
		return 0, class, fmt.Errorf("%s/%s: %w", service, class, err)
	}
	return price, class, nil
}

// ApplyPromotion возвращает скидку и итог. Без акции скидка нулевая.
func ApplyPromotion(baseFee int64, p *entities.Promotion, now time.Time) (int64, int64, error) {
	if baseFee < 0 {
		return 0, 0, fmt.Errorf("%w: base fee must be >= 0", ErrInvalidInput)
	}
	if p == nil {
		return 0, baseFee, nil
	}
	if err := CheckPromotion(baseFee, p, now); err != nil {
		return 0, baseFee, err
	}

	var discount int64
	switch p.DiscountType {
	case entities.DiscountPercentage:
		discount = baseFee * p.DiscountValue / 100
		if p.MaxDiscountAmount != nil && discount > *p.MaxDiscountAmount {
			discount = *p.MaxDiscountAmount
		}
	case entities.DiscountFixed:
		discount = p.DiscountValue
	default:
		return 0, baseFee, fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, p.DiscountType)
	}

	discount = min(max(discount, 0), baseFee)
	return discount, baseFee - discount, nil
}

func CheckPromotion(baseFee int64, p *entities.Promotion, now time.Time) error {
	switch {
	case p.Status != entities.PromotionActive:
		return fmt.Errorf("%w: %s is %s", ErrPromotionNotApplicable, p.Code, p.Status)
	case !p.InWindow(now):
		return fmt.Errorf("%w: %s is outside its date window", ErrPromotionNotApplicable, p.Code)
	case p.Exhausted():
		return fmt.Errorf("%w: %s usage limit reached", ErrPromotionNotApplicable, p.Code)
	case p.MinOrderValue > baseFee:
		return fmt.Errorf("%w: %s requires fee >= %d", ErrPromotionNotApplicable, p.Code, p.MinOrderValue)
	}
	return nil
}

func (e *Engine) Quote(
	weight decimal.Decimal,
	service entities.ServiceType,
	originRegion string,
	destRegion string,
	promotion *entities.Promotion,
	now time.Time,
) (*Quote, error) {
	base, class, err := e.ComputeFee(weight, service, originRegion, destRegion)
	if err != nil {
		return nil, err
	}

	discount, final, err := ApplyPromotion(base, promotion, now)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		RegionClass: class,
		BaseFee:     base,
		Discount:    discount,
		FinalFee:    final,
	}
	if promotion != nil {
		id := promotion.ID
		q.PromotionID = &id
	}
	return q, nil
}
