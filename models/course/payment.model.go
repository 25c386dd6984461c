package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment status values.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment records a checkout attempt against the payment gateway. A
// completed payment is what creates the paid Enrollment.
type Payment struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	CourseID       uint           `json:"course_id" gorm:"index;not null"`
	OrderID        string         `json:"order_id" gorm:"uniqueIndex;size:100"` // gateway order id
	PaymentRef     string         `json:"payment_ref" gorm:"size:100"`          // gateway payment id, set by webhook
	Amount         int64          `json:"amount" gorm:"not null"`
	Currency       string         `json:"currency" gorm:"size:10;default:'INR'"`
	Status         string         `json:"status" gorm:"default:'pending'"`
	GatewayPayload datatypes.JSON `json:"-"` // raw webhook body, kept for dispute handling
	IsDeleted      bool           `gorm:"default:false"`
}
