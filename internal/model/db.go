package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Password  string `gorm:"size:128;not null"` // bcrypt hash
	FirstName string `gorm:"size:64;not null"`
	LastName  string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Admin is an instructor account. Separate table and signing secret from
// regular users, matching the two-audience auth scheme.
type Admin struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Password  string `gorm:"size:128;not null"`
	FirstName string `gorm:"size:64;not null"`
	LastName  string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Course struct {
	ID          string          `gorm:"primaryKey;size:36;not null"`
	Title       string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"` // major units, USD
	ImageURL    string          `gorm:"size:512"`
	CreatorID   string          `gorm:"size:36;index;not null"` // FK → admin.id
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Purchase is recorded once per verified payment. The composite unique index
// is what makes concurrent verifications of the same payment collapse to a
// single row; handlers may run in independent processes, so the constraint
// lives in the database, not in process memory.
type Purchase struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	UserID    string `gorm:"size:36;uniqueIndex:uniq_user_course_payment;index;not null"`
	CourseID  string `gorm:"size:36;uniqueIndex:uniq_user_course_payment;not null"`
	PaymentID string `gorm:"size:64;uniqueIndex:uniq_user_course_payment;not null"`
	OrderID   string `gorm:"size:64;index"`
	CreatedAt time.Time
}
