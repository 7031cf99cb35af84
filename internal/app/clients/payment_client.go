package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amrelfalogy/smarted/internal/app/models"
	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/pkg/helpers"
	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

const paymentsPath = "/api/payments"

// PaymentClient reads payments. Status changes happen on the backend.
type PaymentClient struct {
	base   *BaseClient
	logger zerolog.Logger
}

// NewPaymentClient creates a PaymentClient
func NewPaymentClient(base *BaseClient) *PaymentClient {
	return &PaymentClient{base: base, logger: logger.ForResource("payments")}
}

// List returns payments matching f
func (c *PaymentClient) List(ctx context.Context, f dto.PaymentFilters) ([]models.Payment, dto.PaginationInfo, error) {
	o := op{resource: "payments", operation: "list"}
	q := listQuery(f.ListParams).
		String("status", string(f.Status)).
		String("studentId", f.StudentID).
		String("subjectId", f.SubjectID).
		String("lessonId", f.LessonID).
		String("dateFrom", f.DateFrom).
		String("dateTo", f.DateTo)

	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, helpers.WithQuery(paymentsPath, q), nil)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	page, err := decodeWith(c.logger, o, raw, unwrapPaymentPage)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return page.Payments, page.Pagination, nil
}

// Get returns one payment
func (c *PaymentClient) Get(ctx context.Context, id string) (*models.Payment, error) {
	o := op{resource: "payments", operation: "get", id: id}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, paymentsPath+escapeID(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapPayment)
}

// Stats returns payment counters and revenue
func (c *PaymentClient) Stats(ctx context.Context) (*models.PaymentStats, error) {
	o := op{resource: "payments", operation: "stats"}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, paymentsPath+"/stats", nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, func(raw json.RawMessage) (*models.PaymentStats, error) {
		var stats models.PaymentStats
		err := json.Unmarshal(raw, &stats)
		return &stats, err
	})
}

// PaymentPage is the payments list envelope
type PaymentPage struct {
	Payments   []models.Payment   `json:"payments"`
	Pagination dto.PaginationInfo `json:"pagination"`
}

func unwrapPaymentPage(raw json.RawMessage) (PaymentPage, error) {
	var page PaymentPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return page, err
	}
	if page.Payments == nil {
		return page, fmt.Errorf("missing payments array")
	}
	return page, nil
}

func unwrapPayment(raw json.RawMessage) (*models.Payment, error) {
	if hasKey(raw, "payment") {
		var env struct {
			Payment models.Payment `json:"payment"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.Payment, nil
	}
	var payment models.Payment
	if err := json.Unmarshal(raw, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
