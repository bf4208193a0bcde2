package fee

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"logistics/internal/entities"
)

// Bracket: весовой диапазон тарифа.
// Ограниченный: BasePrice + ceil(max(0, w-Threshold)/Step) * PerStep.
// Верхний без UpTo: ceil(w/Step) * PerStep.
type Bracket struct {
	UpTo      *decimal.Decimal
	BasePrice int64
	Threshold decimal.Decimal
	Step      decimal.Decimal
	PerStep   int64
}

func (b Bracket) Unbounded() bool {
	return b.UpTo == nil
}

var maxFee = decimal.NewFromInt(math.MaxInt64)

// price считается в decimal: результат, не влезающий в int64, это ошибка, а не переполнение.
func (b Bracket) price(weight decimal.Decimal) (int64, error) {
	base, over := decimal.Zero, weight
	if !b.Unbounded() {
		base = decimal.NewFromInt(b.BasePrice)
		over = decimal.Max(decimal.Zero, weight.Sub(b.Threshold))
	}
	total := base.Add(over.Div(b.Step).Ceil().Mul(decimal.NewFromInt(b.PerStep)))
	if total.GreaterThan(maxFee) {
		return 0, fmt.Errorf("%w: fee for %s kg overflows", ErrInvalidInput, weight)
	}
	return total.IntPart(), nil
}

// RateTable: тип услуги -> класс пары регионов -> диапазоны по возрастанию UpTo.
type RateTable map[entities.ServiceType]map[entities.RegionClass][]Bracket

func (t RateTable) Validate() error {
	for service, classes := range t {
		for class, brackets := range classes {
			if len(brackets) == 0 {
				return fmt.Errorf("%s/%s: no brackets", service, class)
			}
			var prev *decimal.Decimal
			for i, b := range brackets {
				if !b.Step.IsPositive() {
					return fmt.Errorf("%s/%s bracket %d: step must be > 0", service, class, i)
				}
				if b.BasePrice < 0 || b.PerStep < 0 {
					return fmt.Errorf("%s/%s bracket %d: negative price", service, class, i)
				}
				if b.Unbounded() {
					if i != len(brackets)-1 {
						return fmt.Errorf("%s/%s: unbounded bracket must be last", service, class)
					}
					continue
				}
				if prev != nil && !b.UpTo.GreaterThan(*prev) {
					return fmt.Errorf("%s/%s bracket %d: upper bounds must ascend", service, class, i)
				}
				prev = b.UpTo
			}
		}
	}
	return nil
}

func (t RateTable) lookup(service entities.ServiceType, class entities.RegionClass, weight decimal.Decimal) (Bracket, bool) {
	for _, b := range t[service][class] {
		if b.Unbounded() || b.UpTo.GreaterThanOrEqual(weight) {
			return b, true
		}
	}
	return Bracket{}, false
}

func kg(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// tiers строит три диапазона: до 5 кг, до 20 кг (без скачка цены на границе) и тяжелый тариф за каждый кг.
func tiers(base, perKg, heavyPerKg int64) []Bracket {
	one := decimal.NewFromInt(1)
	return []Bracket{
		{UpTo: kg(5), BasePrice: base, Threshold: one, Step: one, PerStep: perKg},
		{UpTo: kg(20), BasePrice: base + 4*perKg, Threshold: decimal.NewFromInt(5), Step: one, PerStep: perKg},
		{Step: one, PerStep: heavyPerKg},
	}
}

// DefaultRateTable: тарифы в VND.
func DefaultRateTable() RateTable {
	return RateTable{
		entities.ServiceStandard: {
			entities.IntraCity:   tiers(15000, 2500, 3500),
			entities.IntraRegion: tiers(20000, 3000, 4000),
			entities.NearRegion:  tiers(25000, 4000, 5500),
			entities.InterRegion: tiers(30000, 5000, 6500),
		},
		entities.ServiceExpress: {
			entities.IntraCity:   tiers(22500, 3500, 5000),
			entities.IntraRegion: tiers(30000, 4000, 5500),
			entities.NearRegion:  tiers(37500, 5000, 7000),
			entities.InterRegion: tiers(45000, 6000, 8000),
		},
	}
}
