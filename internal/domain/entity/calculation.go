package entity

import "time"

// Calculation kinds
const (
	KindCapacity     = "capacity"
	KindBreakEven    = "break_even"
	KindInitialPrice = "initial_price"
	KindBeforeAfter  = "before_after"
	KindROI          = "roi"
	KindVelocity     = "velocity"
)

// Calculation history entry
type Calculation struct {
	ID        string
	UserID    int64
	Location  string
	Kind      string
	Summary   string
	Value     float64
	Defined   bool
	Timestamp time.Time
}
