// Package events publishes bill notifications for downstream consumers.
package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/fabric_billing/internal/models"
)

const TypeBillCreated = "bill_created"

type BillLine struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type BillCreated struct {
	EventID       string          `json:"event_id"`
	Type          string          `json:"type"`
	BillID        uint            `json:"bill_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Lines         []BillLine      `json:"lines"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewBillCreated(bill *models.Bill) BillCreated {
	lines := make([]BillLine, 0, len(bill.Items))
	for _, it := range bill.Items {
		lines = append(lines, BillLine{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return BillCreated{
		EventID:       uuid.NewString(),
		Type:          TypeBillCreated,
		BillID:        bill.ID,
		CustomerName:  bill.CustomerName,
		CustomerPhone: bill.CustomerPhone,
		PaymentMethod: bill.PaymentMethod,
		TotalAmount:   bill.TotalAmount,
		Lines:         lines,
		CreatedAt:     bill.CreatedAt,
	}
}

// Key partitions events by bill id.
func (e BillCreated) Key() string {
	return strconv.FormatUint(uint64(e.BillID), 10)
}
