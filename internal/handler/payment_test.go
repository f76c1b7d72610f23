package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/dto"
)

type mockPaymentService struct {
	createResp *dto.CreateOrderResponse
	createErr  error
	verifyErr  error

	lastCreate *dto.CreateOrderRequest
	lastUserID string
	lastVerify *dto.VerifyPaymentRequest
}

func (m *mockPaymentService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	m.lastCreate = req
	return m.createResp, m.createErr
}

func (m *mockPaymentService) VerifyPayment(ctx context.Context, userID string, req *dto.VerifyPaymentRequest) error {
	m.lastUserID = userID
	m.lastVerify = req
	return m.verifyErr
}

func newPaymentContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateOrderHandler(t *testing.T) {
	svc := &mockPaymentService{
		createResp: &dto.CreateOrderResponse{
			ID:       "order_1",
			Amount:   435000,
			Currency: "INR",
			Key:      "key_test",
		},
	}
	h := NewPaymentHandler(svc)

	c, rec := newPaymentContext(http.MethodPost, "/api/v1/payment/create-order",
		`{"courseId":"course-1"}`)

	if err := h.CreateOrder(c); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	for _, want := range []string{`"id":"order_1"`, `"amount":435000`, `"currency":"INR"`, `"key":"key_test"`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("body %q missing %q", rec.Body.String(), want)
		}
	}
	if svc.lastCreate.CourseID != "course-1" {
		t.Errorf("courseId = %q, want course-1", svc.lastCreate.CourseID)
	}
}

func TestCreateOrderHandler_MissingCourseID(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{})

	c, _ := newPaymentContext(http.MethodPost, "/api/v1/payment/create-order", `{}`)

	err := h.CreateOrder(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400", err)
	}
}

func TestVerifyPaymentHandler(t *testing.T) {
	svc := &mockPaymentService{}
	h := NewPaymentHandler(svc)

	c, rec := newPaymentContext(http.MethodPost, "/api/v1/payment/verify",
		`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"sig","courseId":"course-1"}`)
	c.Set("user_id", "user-1")

	if err := h.VerifyPayment(c); err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("body %q missing success", rec.Body.String())
	}
	if svc.lastUserID != "user-1" {
		t.Errorf("userID = %q, want user-1", svc.lastUserID)
	}
	if svc.lastVerify.OrderID != "order_1" || svc.lastVerify.PaymentID != "pay_1" {
		t.Errorf("unexpected verify request: %+v", svc.lastVerify)
	}
}

func TestVerifyPaymentHandler_MissingCourseID(t *testing.T) {
	svc := &mockPaymentService{}
	h := NewPaymentHandler(svc)

	c, _ := newPaymentContext(http.MethodPost, "/api/v1/payment/verify",
		`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"sig"}`)
	c.Set("user_id", "user-1")

	err := h.VerifyPayment(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400", err)
	}
	if svc.lastVerify != nil {
		t.Error("service must not be called without a courseId")
	}
}

func TestVerifyPaymentHandler_MissingFields(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{})

	c, _ := newPaymentContext(http.MethodPost, "/api/v1/payment/verify",
		`{"razorpay_order_id":"order_1"}`)

	err := h.VerifyPayment(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400", err)
	}
}
