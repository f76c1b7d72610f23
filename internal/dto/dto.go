package dto

import "github.com/shopspring/decimal"

// -------- payment --------

type CreateOrderRequest struct {
	CourseID string `json:"courseId"`
	// Amount is optional and advisory: the charge is always derived from the
	// course's stored price. If the client sends an amount it must match, in
	// minor units of the listing currency.
	Amount int64 `json:"amount,omitempty"`
}

type CreateOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
	CourseID  string `json:"courseId"`
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// -------- auth --------

type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleSigninRequest struct {
	IDToken string `json:"idToken"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

// -------- courses --------

type CourseRequest struct {
	CourseID    string          `json:"courseId,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
}

type PurchaseResponse struct {
	ID        string `json:"id"`
	CourseID  string `json:"courseId"`
	PaymentID string `json:"paymentId"`
}

type PurchasesResponse struct {
	Purchases   []*PurchaseResponse `json:"purchases"`
	CoursesData []*CourseResponse   `json:"coursesData"`
}

type CourseResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	CreatorID   string          `json:"creatorId"`
}
