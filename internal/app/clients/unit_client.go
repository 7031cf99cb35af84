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

const unitsPath = "/api/content/units"

// UnitClient talks to the unit endpoints
type UnitClient struct {
	base   *BaseClient
	logger zerolog.Logger
}

// NewUnitClient creates a UnitClient
func NewUnitClient(base *BaseClient) *UnitClient {
	return &UnitClient{base: base, logger: logger.ForResource("units")}
}

// listQuery renders the filters every list endpoint understands
func listQuery(p dto.ListParams) *helpers.Query {
	return helpers.NewQuery().
		Int("page", p.Page).
		Int("limit", p.Limit).
		String("search", p.Search).
		String("sortBy", p.SortBy).
		String("sortOrder", string(p.SortOrder))
}

// List returns units matching f. The endpoint answers with a bare array or
// with {units: [...]} and no pagination block; see helpers.PaginationForArray.
func (c *UnitClient) List(ctx context.Context, f dto.UnitFilters) ([]models.Unit, dto.PaginationInfo, error) {
	o := op{resource: "units", operation: "list"}
	q := listQuery(f.ListParams).
		String("subjectId", f.SubjectID).
		Bool("isActive", f.IsActive)

	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, helpers.WithQuery(unitsPath, q), nil)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	units, err := decodeWith(c.logger, o, raw, unwrapUnitList)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return units, helpers.PaginationForArray(len(units), f.Page, f.Limit), nil
}

// ListBySubject returns all units of a subject sorted by their order field
func (c *UnitClient) ListBySubject(ctx context.Context, subjectID string) ([]models.Unit, error) {
	units, _, err := c.List(ctx, dto.UnitFilters{SubjectID: subjectID})
	if err != nil {
		return nil, err
	}
	models.SortUnitsByOrder(units)
	return units, nil
}

// Get returns one unit. A backend 404 matches apperrors.ErrNotFound.
func (c *UnitClient) Get(ctx context.Context, id string) (*models.Unit, error) {
	o := op{resource: "units", operation: "get", id: id}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, unitsPath+escapeID(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapUnit)
}

// Create creates a unit
func (c *UnitClient) Create(ctx context.Context, req dto.CreateUnitRequest) (*models.Unit, error) {
	o := op{resource: "units", operation: "create"}
	if err := validatePayload(c.logger, o, req); err != nil {
		return nil, err
	}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodPost, unitsPath, req)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapUnit)
}

// Update sends only the fields set on req
func (c *UnitClient) Update(ctx context.Context, id string, req dto.UpdateUnitRequest) (*models.Unit, error) {
	o := op{resource: "units", operation: "update", id: id}
	if err := validatePayload(c.logger, o, req); err != nil {
		return nil, err
	}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodPut, unitsPath+escapeID(id), req)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapUnit)
}

// Delete deletes a unit
func (c *UnitClient) Delete(ctx context.Context, id string) error {
	o := op{resource: "units", operation: "delete", id: id}
	_, err := c.base.doJSON(ctx, c.logger, o, http.MethodDelete, unitsPath+escapeID(id), nil)
	return err
}

func unwrapUnitList(raw json.RawMessage) ([]models.Unit, error) {
	var units []models.Unit
	if isJSONArray(raw) {
		err := json.Unmarshal(raw, &units)
		return units, err
	}
	var env struct {
		Units []models.Unit `json:"units"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.Units == nil {
		return nil, fmt.Errorf("missing units array")
	}
	return env.Units, nil
}

func unwrapUnit(raw json.RawMessage) (*models.Unit, error) {
	if hasKey(raw, "unit") {
		var env struct {
			Unit models.Unit `json:"unit"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.Unit, nil
	}
	var unit models.Unit
	if err := json.Unmarshal(raw, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}
