package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"logistics/internal/entities"
	"logistics/internal/service/fee"
	"logistics/pkg/logger"
)

const maxTrackingAttempts = 5

type Service struct {
	repository Repository
	promotions PromotionRepository
	ledger     Ledger
	offices    OfficeDirectory
	payments   PaymentGateway
	outbox     Outbox
	txManager  TxManager
	fees       *fee.Engine
	logger     serviceLogger

	// офис, на который проводится онлайн-оплата заказа без назначенного офиса
	settlementOfficeID string

	now      func() time.Time
	tracking func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithTrackingGenerator(gen func() string) Option {
	return func(s *Service) {
		s.tracking = gen
	}
}

func New(
	repository Repository,
	promotions PromotionRepository,
	ledger Ledger,
	offices OfficeDirectory,
	payments PaymentGateway,
	outbox Outbox,
	txManager TxManager,
	fees *fee.Engine,
	log serviceLogger,
	settlementOfficeID string,
	opts ...Option,
) *Service {
	if log == nil {
		log = logger.Nop{}
	}
	s := &Service{
		repository:         repository,
		promotions:         promotions,
		ledger:             ledger,
		offices:            offices,
		payments:           payments,
		outbox:             outbox,
		txManager:          txManager,
		fees:               fees,
		logger:             log,
		settlementOfficeID: settlementOfficeID,
		now:                func() time.Time { return time.Now().UTC() },
		tracking:           NewTrackingNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, create entities.OrderCreate) (*entities.CreatedOrder, error) {
	if create.ServiceTypeID == "" {
		create.ServiceTypeID = entities.ServiceStandard
	}
	if err := validateCreate(&create); err != nil {
		return nil, err
	}

	baseFee, _, err := s.fees.ComputeFee(create.Weight, create.ServiceTypeID, create.Sender.RegionCode, create.Recipient.RegionCode)
	if err != nil {
		return nil, err
	}

	now := s.now()
	status := entities.OrderPending
	if create.Draft {
		status = entities.OrderDraft
	}

	order := entities.Order{
		ID:            uuid.NewString(),
		OwnerID:       create.OwnerID,
		Sender:        create.Sender,
		Recipient:     create.Recipient,
		Weight:        create.Weight,
		ServiceTypeID: create.ServiceTypeID,
		COD:           create.COD,
		OrderValue:    create.OrderValue,
		Payer:         create.Payer,
		PaymentMethod: create.PaymentMethod,
		PaymentStatus: entities.PaymentUnpaid,
		ShippingFee:   baseFee,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var created *entities.Order
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if create.PromotionCode != nil && strings.TrimSpace(*create.PromotionCode) != "" {
			promo, err := s.promotions.GetByCode(ctx, strings.TrimSpace(*create.PromotionCode))
			if err != nil {
				return fmt.Errorf("get promotion: %w", err)
			}
			discount, _, err := fee.ApplyPromotion(baseFee, promo, now)
			if err != nil {
				return err
			}
			if err := s.promotions.IncrementUsage(ctx, promo.ID); err != nil {
				return fmt.Errorf("use promotion %s: %w", promo.Code, err)
			}
			order.DiscountAmount = discount
			order.PromotionID = &promo.ID
		}

		if err := order.Validate(); err != nil {
			return err
		}

		for attempt := 0; ; attempt++ {
			order.TrackingNumber = s.tracking()
			created, err = s.repository.Create(ctx, order)
			if err == nil {
				break
			}
			if !errors.Is(err, ErrTrackingNumberTaken) || attempt+1 >= maxTrackingAttempts {
				return fmt.Errorf("create order: %w", err)
			}
		}

		return s.emitStatusChanged(ctx, *created, "", "create", entities.Actor{ID: create.OwnerID, Role: entities.RoleOwner})
	})
	if err != nil {
		return nil, err
	}

	CreatedTotal.WithLabelValues(created.ServiceTypeID.String()).Inc()
	result := &entities.CreatedOrder{Order: *created}

	// после коммита: отказ шлюза не откатывает заказ
	if created.RequiresOnlinePayment() && created.Status == entities.OrderPending {
		url, err := s.payments.CreatePaymentURL(ctx, created.ID, created.PayableFee())
		if err != nil {
			s.logger.Warn("payment url not created",
				logger.NewField("order_id", created.ID),
				logger.NewField("error", err),
			)
		} else {
			result.PaymentURL = &url
		}
	}

	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	if !isValidID(id) {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidOrder)
	}
	return s.repository.GetByID(ctx, id)
}

func (s *Service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*entities.Order, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if !ValidTrackingNumber(trackingNumber) {
		return nil, fmt.Errorf("%w: malformed tracking number %q", ErrInvalidOrder, trackingNumber)
	}
	return s.repository.GetByTrackingNumber(ctx, trackingNumber)
}

func (s *Service) ListOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, *filter.Status)
	}
	if filter.Limit == 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return s.repository.List(ctx, filter)
}

// EditOrder применяет частичную правку. Если после пересчета тарифа акция больше не подходит,
// она снимается молча, а использование возвращается.
func (s *Service) EditOrder(ctx context.Context, edit entities.OrderEdit) (*entities.Order, error) {
	if err := validateEdit(&edit); err != nil {
		return nil, err
	}
	if err := validateActor(edit.Actor); err != nil {
		return nil, err
	}
	if edit.Actor.Role == entities.RoleDriver {
		return nil, fmt.Errorf("%w: drivers cannot edit orders", entities.ErrInvalidStateForEdit)
	}

	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.lockOne(ctx, edit.ID)
		if err != nil {
			return err
		}
		if edit.Actor.Role == entities.RoleOwner && current.OwnerID != edit.Actor.ID {
			return ErrNotOwner
		}

		next, err := entities.ApplyEdit(*current, edit)
		if err != nil {
			return err
		}
		if current.Version != edit.ExpectedVersion {
			return fmt.Errorf("%w: have %d, expected %d", ErrVersionConflict, current.Version, edit.ExpectedVersion)
		}

		if edit.AffectsFee() {
			if current.PaymentStatus != entities.PaymentUnpaid {
				return fmt.Errorf("%w: fee inputs are locked after payment", entities.ErrInvalidStateForEdit)
			}
			if err := s.repriceOrder(ctx, &next); err != nil {
				return err
			}
		}

		next.UpdatedAt = s.now()
		updated, err = s.repository.Update(ctx, next, current.Version)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) repriceOrder(ctx context.Context, o *entities.Order) error {
	baseFee, _, err := s.fees.ComputeFee(o.Weight, o.ServiceTypeID, o.Sender.RegionCode, o.Recipient.RegionCode)
	if err != nil {
		return err
	}
	o.ShippingFee = baseFee
	o.DiscountAmount = 0

	if o.PromotionID == nil {
		return nil
	}

	promo, err := s.promotions.GetByID(ctx, *o.PromotionID)
	if err != nil {
		return fmt.Errorf("get promotion: %w", err)
	}
	// уже учтенное использование не должно мешать пересчету
	counted := *promo
	counted.UsageLimit = nil

	discount, _, err := fee.ApplyPromotion(baseFee, &counted, s.now())
	if err == nil {
		o.DiscountAmount = discount
		return nil
	}
	if !errors.Is(err, fee.ErrPromotionNotApplicable) {
		return err
	}

	if err := s.promotions.DecrementUsage(ctx, promo.ID); err != nil {
		return fmt.Errorf("release promotion %s: %w", promo.Code, err)
	}
	o.PromotionID = nil
	return nil
}

// QuoteFee: расчет без сохранения. Неподходящая акция здесь ошибка, чтобы клиент ее увидел.
func (s *Service) QuoteFee(ctx context.Context, req entities.FeeQuoteRequest) (*fee.Quote, error) {
	if req.ServiceTypeID == "" {
		req.ServiceTypeID = entities.ServiceStandard
	}

	var promo *entities.Promotion
	if req.PromotionCode != nil && strings.TrimSpace(*req.PromotionCode) != "" {
		p, err := s.promotions.GetByCode(ctx, strings.TrimSpace(*req.PromotionCode))
		if err != nil {
			return nil, fmt.Errorf("get promotion: %w", err)
		}
		promo = p
	}

	return s.fees.Quote(req.Weight, req.ServiceTypeID, req.OriginRegion, req.DestRegion, promo, s.now())
}

func (s *Service) lockOne(ctx context.Context, id string) (*entities.Order, error) {
	orders, err := s.repository.LockByIDs(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return &orders[0], nil
}
