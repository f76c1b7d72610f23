package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/client"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/config"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/metrics"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/model"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/payment"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/repository"
)

// PaymentService drives one checkout attempt: derive the charge from the
// stored course price, create a gateway order, and on a signed confirmation
// record the purchase. The client never dictates the final charge.
type PaymentService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) error
}

type paymentServiceImpl struct {
	gatewayClient client.GatewayClient
	courseRepo    repository.CourseRepository
	purchaseRepo  repository.PurchaseRepository
	keyID         string
	keySecret     string
	rate          decimal.Decimal
	retryConf     config.Payment
	log           *slog.Logger
}

func NewPaymentService(
	gatewayClient client.GatewayClient,
	courseRepo repository.CourseRepository,
	purchaseRepo repository.PurchaseRepository,
	gatewayCfg config.Gateway,
	paymentCfg config.Payment,
	rate decimal.Decimal,
	log *slog.Logger,
) PaymentService {
	return &paymentServiceImpl{
		gatewayClient: gatewayClient,
		courseRepo:    courseRepo,
		purchaseRepo:  purchaseRepo,
		keyID:         gatewayCfg.KeyID,
		keySecret:     gatewayCfg.KeySecret,
		rate:          rate,
		retryConf:     paymentCfg,
		log:           log,
	}
}

func (s *paymentServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	// The charge is derived from the stored price; a client-sent amount is
	// only cross-checked.
	listed := payment.ToMinorUnits(course.Price)
	if req.Amount != 0 && req.Amount != listed {
		return nil, apperr.ErrAmountMismatch
	}

	converted := payment.Convert(listed, s.rate)
	if err := payment.ValidateAmount(converted); err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("receipt_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])

	resp, err := s.gatewayClient.CreateOrder(ctx, converted, payment.SettlementCurrency, receipt)
	if err != nil {
		return nil, fmt.Errorf("gateway api create order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	s.log.Info("gateway order created",
		slog.String("order_id", resp.OrderID),
		slog.String("course_id", course.ID),
		slog.Int64("amount", resp.Amount))

	return &dto.CreateOrderResponse{
		ID:       resp.OrderID,
		Amount:   resp.Amount,
		Currency: resp.Currency,
		Key:      s.keyID,
	}, nil
}

func (s *paymentServiceImpl) VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) error {
	// a purchase row without a course reference is a paid-for entitlement
	// that unlocks nothing
	if req.CourseID == "" {
		return &apperr.InputError{Msg: "courseId is required"}
	}

	err := payment.VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.keySecret)
	if err != nil {
		if errors.Is(err, apperr.ErrSignatureMismatch) {
			metrics.VerificationsRejected.Inc()
			s.log.Warn("payment signature mismatch",
				slog.String("order_id", req.OrderID),
				slog.String("payment_id", req.PaymentID))
		}
		return err
	}

	metrics.VerificationsSucceeded.Inc()

	return s.recordPurchase(ctx, &model.Purchase{
		UserID:    userID,
		CourseID:  req.CourseID,
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
	})
}

// recordPurchase runs only after a verified confirmation. The write is
// retried: at this point the user has already paid, so a transient storage
// failure must not simply drop the entitlement.
func (s *paymentServiceImpl) recordPurchase(ctx context.Context, purchase *model.Purchase) error {
	var created bool

	err := retry.Do(
		func() error {
			var err error
			created, err = s.purchaseRepo.Upsert(ctx, purchase)
			return err
		},
		retry.Attempts(s.retryConf.RecordAttempts),
		retry.Delay(s.retryConf.RecordDelay),
		retry.MaxDelay(s.retryConf.RecordMaxDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.log.Error("purchase write failed after retries",
			slog.String("payment_id", purchase.PaymentID),
			slog.Any("error", err))
		return &apperr.PersistenceError{Err: err}
	}

	if created {
		metrics.PurchasesRecorded.Inc()
		s.log.Info("purchase recorded",
			slog.String("user_id", purchase.UserID),
			slog.String("course_id", purchase.CourseID),
			slog.String("payment_id", purchase.PaymentID))
	} else {
		metrics.PurchasesDuplicate.Inc()
		s.log.Info("purchase already recorded for payment",
			slog.String("payment_id", purchase.PaymentID))
	}

	return nil
}
