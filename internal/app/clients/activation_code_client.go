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

const activationCodesPath = "/api/activation-codes"

// ActivationCodeClient talks to the activation code endpoints
type ActivationCodeClient struct {
	base   *BaseClient
	logger zerolog.Logger
}

// NewActivationCodeClient creates an ActivationCodeClient
func NewActivationCodeClient(base *BaseClient) *ActivationCodeClient {
	return &ActivationCodeClient{base: base, logger: logger.ForResource("activation-codes")}
}

// List returns codes matching f
func (c *ActivationCodeClient) List(ctx context.Context, f dto.ActivationCodeFilters) ([]models.ActivationCode, dto.PaginationInfo, error) {
	o := op{resource: "activation-codes", operation: "list"}
	q := listQuery(f.ListParams).
		String("subjectId", f.SubjectID).
		String("lessonId", f.LessonID).
		Bool("isActive", f.IsActive)

	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, helpers.WithQuery(activationCodesPath, q), nil)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	page, err := decodeWith(c.logger, o, raw, unwrapActivationCodePage)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return page.Codes, page.Pagination, nil
}

// Create mints a code for exactly one of subject or lesson
func (c *ActivationCodeClient) Create(ctx context.Context, req dto.CreateActivationCodeRequest) (*models.ActivationCode, error) {
	o := op{resource: "activation-codes", operation: "create"}
	if err := validatePayload(c.logger, o, req); err != nil {
		return nil, err
	}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodPost, activationCodesPath, req)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapActivationCode)
}

// Delete deletes a code
func (c *ActivationCodeClient) Delete(ctx context.Context, id string) error {
	o := op{resource: "activation-codes", operation: "delete", id: id}
	_, err := c.base.doJSON(ctx, c.logger, o, http.MethodDelete, activationCodesPath+escapeID(id), nil)
	return err
}

// ActivationCodePage is the activation codes list envelope
type ActivationCodePage struct {
	Codes      []models.ActivationCode `json:"codes"`
	Pagination dto.PaginationInfo      `json:"pagination"`
}

func unwrapActivationCodePage(raw json.RawMessage) (ActivationCodePage, error) {
	var page ActivationCodePage
	if err := json.Unmarshal(raw, &page); err != nil {
		return page, err
	}
	if page.Codes == nil {
		return page, fmt.Errorf("missing codes array")
	}
	return page, nil
}

func unwrapActivationCode(raw json.RawMessage) (*models.ActivationCode, error) {
	if hasKey(raw, "code") && !hasKey(raw, "id") {
		var env struct {
			Code models.ActivationCode `json:"code"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.Code, nil
	}
	var code models.ActivationCode
	if err := json.Unmarshal(raw, &code); err != nil {
		return nil, err
	}
	return &code, nil
}
