package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/client"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/config"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
	"github.com/WavyWeb/SkillHub-CourseSelling/internal/model"
)

const testKeySecret = "test_key_secret"

func signConfirmation(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type mockGateway struct {
	lastAmount   int64
	lastCurrency string
	lastReceipt  string
	calls        int
	err          error
}

func (m *mockGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*client.CreateOrderResult, error) {
	m.calls++
	m.lastAmount = amount
	m.lastCurrency = currency
	m.lastReceipt = receipt
	if m.err != nil {
		return nil, m.err
	}
	return &client.CreateOrderResult{
		OrderID:  "order_test_1",
		Amount:   amount,
		Currency: currency,
	}, nil
}

type mockCourseRepo struct {
	course *model.Course
}

func (m *mockCourseRepo) Create(ctx context.Context, course *model.Course) error { return nil }
func (m *mockCourseRepo) Update(ctx context.Context, course *model.Course) error { return nil }
func (m *mockCourseRepo) FindByID(ctx context.Context, courseID string) (*model.Course, error) {
	if m.course == nil || m.course.ID != courseID {
		return nil, apperr.ErrCourseNotFound
	}
	return m.course, nil
}
func (m *mockCourseRepo) FindMany(ctx context.Context, ids []string) ([]*model.Course, error) {
	return nil, nil
}
func (m *mockCourseRepo) FindByCreator(ctx context.Context, id string) ([]*model.Course, error) {
	return nil, nil
}
func (m *mockCourseRepo) FindAll(ctx context.Context) ([]*model.Course, error) { return nil, nil }

type mockPurchaseRepo struct {
	failuresLeft int
	attempts     int
	rows         map[string]bool
}

func newMockPurchaseRepo() *mockPurchaseRepo {
	return &mockPurchaseRepo{rows: map[string]bool{}}
}

func (m *mockPurchaseRepo) Upsert(ctx context.Context, p *model.Purchase) (bool, error) {
	m.attempts++
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return false, errors.New("connection reset")
	}
	key := p.UserID + "|" + p.CourseID + "|" + p.PaymentID
	if m.rows[key] {
		return false, nil
	}
	m.rows[key] = true
	return true, nil
}

func (m *mockPurchaseRepo) FindByUser(ctx context.Context, userID string) ([]*model.Purchase, error) {
	return nil, nil
}

func testCourse(price string) *model.Course {
	p, _ := decimal.NewFromString(price)
	return &model.Course{
		ID:        "course-1",
		Title:     "Intro to Go",
		Price:     p,
		CreatorID: "admin-1",
	}
}

func newTestPaymentService(gw *mockGateway, courses *mockCourseRepo, purchases *mockPurchaseRepo) PaymentService {
	return NewPaymentService(
		gw,
		courses,
		purchases,
		config.Gateway{KeyID: "key_test", KeySecret: testKeySecret},
		config.Payment{
			RecordAttempts: 3,
			RecordDelay:    time.Millisecond,
			RecordMaxDelay: time.Millisecond,
		},
		decimal.NewFromInt(87),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestCreateOrder_DerivesChargeFromCoursePrice(t *testing.T) {
	gw := &mockGateway{}
	svc := newTestPaymentService(gw, &mockCourseRepo{course: testCourse("50")}, newMockPurchaseRepo())

	resp, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{CourseID: "course-1"})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// $50 → 5000 cents → 435000 paise at rate 87
	if gw.lastAmount != 435000 {
		t.Errorf("gateway amount = %d, want 435000", gw.lastAmount)
	}
	if gw.lastCurrency != "INR" {
		t.Errorf("gateway currency = %q, want INR", gw.lastCurrency)
	}
	if gw.lastReceipt == "" {
		t.Error("expected a receipt token")
	}
	if resp.ID != "order_test_1" || resp.Amount != 435000 || resp.Currency != "INR" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Key != "key_test" {
		t.Errorf("response key = %q, want key_test", resp.Key)
	}
}

func TestCreateOrder_AmountTooSmall(t *testing.T) {
	gw := &mockGateway{}
	svc := newTestPaymentService(gw, &mockCourseRepo{course: testCourse("0.01")}, newMockPurchaseRepo())

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{CourseID: "course-1"})
	if !errors.Is(err, apperr.ErrAmountTooSmall) {
		t.Fatalf("got %v, want ErrAmountTooSmall", err)
	}
	if gw.calls != 0 {
		t.Error("gateway must not be called when validation fails")
	}
}

func TestCreateOrder_AmountTooLarge(t *testing.T) {
	gw := &mockGateway{}
	svc := newTestPaymentService(gw, &mockCourseRepo{course: testCourse("10000")}, newMockPurchaseRepo())

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{CourseID: "course-1"})
	if !errors.Is(err, apperr.ErrAmountTooLarge) {
		t.Fatalf("got %v, want ErrAmountTooLarge", err)
	}
	if gw.calls != 0 {
		t.Error("gateway must not be called when validation fails")
	}
}

func TestCreateOrder_RejectsMismatchedClientAmount(t *testing.T) {
	gw := &mockGateway{}
	svc := newTestPaymentService(gw, &mockCourseRepo{course: testCourse("50")}, newMockPurchaseRepo())

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{
		CourseID: "course-1",
		Amount:   100, // client claims $1
	})
	if !errors.Is(err, apperr.ErrAmountMismatch) {
		t.Fatalf("got %v, want ErrAmountMismatch", err)
	}
	if gw.calls != 0 {
		t.Error("gateway must not be called on amount mismatch")
	}
}

func TestCreateOrder_CourseNotFound(t *testing.T) {
	svc := newTestPaymentService(&mockGateway{}, &mockCourseRepo{}, newMockPurchaseRepo())

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{CourseID: "missing"})
	if !errors.Is(err, apperr.ErrCourseNotFound) {
		t.Fatalf("got %v, want ErrCourseNotFound", err)
	}
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	gw := &mockGateway{err: &apperr.GatewayError{Op: "create order", Err: errors.New("503")}}
	svc := newTestPaymentService(gw, &mockCourseRepo{course: testCourse("50")}, newMockPurchaseRepo())

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{CourseID: "course-1"})

	var gwErr *apperr.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("got %v, want GatewayError", err)
	}
}

func TestVerifyPayment_RecordsPurchase(t *testing.T) {
	purchases := newMockPurchaseRepo()
	svc := newTestPaymentService(&mockGateway{}, &mockCourseRepo{course: testCourse("50")}, purchases)

	req := &dto.VerifyPaymentRequest{
		OrderID:   "order_test_1",
		PaymentID: "pay_1",
		Signature: signConfirmation("order_test_1", "pay_1"),
		CourseID:  "course-1",
	}

	if err := svc.VerifyPayment(context.Background(), "user-1", req); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}

	if len(purchases.rows) != 1 {
		t.Fatalf("expected 1 purchase row, got %d", len(purchases.rows))
	}
	if !purchases.rows["user-1|course-1|pay_1"] {
		t.Error("purchase not keyed by (user, course, payment)")
	}
}

func TestVerifyPayment_TamperedSignature(t *testing.T) {
	purchases := newMockPurchaseRepo()
	svc := newTestPaymentService(&mockGateway{}, &mockCourseRepo{course: testCourse("50")}, purchases)

	sig := []byte(signConfirmation("order_test_1", "pay_1"))
	sig[0] ^= 0x01

	req := &dto.VerifyPaymentRequest{
		OrderID:   "order_test_1",
		PaymentID: "pay_1",
		Signature: string(sig),
		CourseID:  "course-1",
	}

	err := svc.VerifyPayment(context.Background(), "user-1", req)
	if !errors.Is(err, apperr.ErrSignatureMismatch) {
		t.Fatalf("got %v, want ErrSignatureMismatch", err)
	}
	if len(purchases.rows) != 0 || purchases.attempts != 0 {
		t.Error("no purchase may be recorded on signature mismatch")
	}
}

func TestVerifyPayment_MissingCourseID(t *testing.T) {
	purchases := newMockPurchaseRepo()
	svc := newTestPaymentService(&mockGateway{}, &mockCourseRepo{course: testCourse("50")}, purchases)

	// correctly signed, but without a course to attach the purchase to
	req := &dto.VerifyPaymentRequest{
		OrderID:   "order_test_1",
		PaymentID: "pay_1",
		Signature: signConfirmation("order_test_1", "pay_1"),
	}

	err := svc.VerifyPayment(context.Background(), "user-1", req)

	var inputErr *apperr.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("got %v, want InputError", err)
	}
	if len(purchases.rows) != 0 || purchases.attempts != 0 {
		t.Errorf("no purchase may be recorded without a course reference, got rows %v", purchases.rows)
	}
}

func TestVerifyPayment_IdempotentPerConfirmation(t *testing.T) {
	purchases := newMockPurchaseRepo()
	svc := newTestPaymentService(&mockGateway{}, &mockCourseRepo{course: testCourse("50")}, purchases)

	req := &dto.VerifyPaymentRequest{
		OrderID:   "order_test_1",
		PaymentID: "pay_1",
		Signature: signConfirmation("order_test_1", "pay_1"),
		CourseID:  "course-1",
	}

	for i := 0; i < 2; i++ {
		if err := svc.VerifyPayment(context.Background(), "user-1", req); err != nil {
			t.Fatalf("VerifyPayment call %d: %v", i+1, err)
		}
	}

	if len(purchases.rows) != 1 {
		t.Fatalf("expected exactly 1 purchase row, got %d", len(purchases.rows))
	}
}

func TestVerifyPayment_RetriesTransientWriteFailure(t *testing.T) {
	purchases := newMockPurchaseRepo()
	purchases.failuresLeft = 2
	svc := newTestPaymentService(&mockGateway{}, &mockCourseRepo{course: testCourse("50")}, purchases)

	req := &dto.VerifyPaymentRequest{
		OrderID:   "order_test_1",
		PaymentID: "pay_1",
		Signature: signConfirmation("order_test_1", "pay_1"),
		CourseID:  "course-1",
	}

	if err := svc.VerifyPayment(context.Background(), "user-1", req); err != nil {
		t.Fatalf("expected retries to absorb transient failures, got %v", err)
	}
	if purchases.attempts != 3 {
		t.Errorf("expected 3 write attempts, got %d", purchases.attempts)
	}
	if len(purchases.rows) != 1 {
		t.Errorf("expected 1 purchase row, got %d", len(purchases.rows))
	}
}

func TestVerifyPayment_PersistenceErrorAfterRetriesExhausted(t *testing.T) {
	purchases := newMockPurchaseRepo()
	purchases.failuresLeft = 10
	svc := newTestPaymentService(&mockGateway{}, &mockCourseRepo{course: testCourse("50")}, purchases)

	req := &dto.VerifyPaymentRequest{
		OrderID:   "order_test_1",
		PaymentID: "pay_1",
		Signature: signConfirmation("order_test_1", "pay_1"),
		CourseID:  "course-1",
	}

	err := svc.VerifyPayment(context.Background(), "user-1", req)

	var persistErr *apperr.PersistenceError
	if !errors.As(err, &persistErr) {
		t.Fatalf("got %v, want PersistenceError", err)
	}
	if purchases.attempts != 3 {
		t.Errorf("expected 3 write attempts, got %d", purchases.attempts)
	}
}
