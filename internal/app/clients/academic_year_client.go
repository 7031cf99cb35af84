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

const academicYearsPath = "/api/academic/academic-years"

// AcademicYearClient talks to the academic year endpoints
type AcademicYearClient struct {
	base   *BaseClient
	logger zerolog.Logger
}

// NewAcademicYearClient creates an AcademicYearClient
func NewAcademicYearClient(base *BaseClient) *AcademicYearClient {
	return &AcademicYearClient{base: base, logger: logger.ForResource("academic-years")}
}

// GetAll returns the years matching f. The backend wraps them as
// {academicYears, pagination}; only the array is kept.
func (c *AcademicYearClient) GetAll(ctx context.Context, f dto.AcademicYearFilters) ([]models.AcademicYear, error) {
	o := op{resource: "academic-years", operation: "list"}
	q := listQuery(f.ListParams).Bool("isActive", f.IsActive)

	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, helpers.WithQuery(academicYearsPath, q), nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapAcademicYearList)
}

// GetActive returns the years flagged active
func (c *AcademicYearClient) GetActive(ctx context.Context) ([]models.AcademicYear, error) {
	o := op{resource: "academic-years", operation: "active"}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, academicYearsPath+"/active", nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapAcademicYearList)
}

// GetCurrent returns the single year flagged current
func (c *AcademicYearClient) GetCurrent(ctx context.Context) (*models.AcademicYear, error) {
	o := op{resource: "academic-years", operation: "current"}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, academicYearsPath+"/current", nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapAcademicYear)
}

// Get returns one year
func (c *AcademicYearClient) Get(ctx context.Context, id string) (*models.AcademicYear, error) {
	o := op{resource: "academic-years", operation: "get", id: id}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, academicYearsPath+escapeID(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapAcademicYear)
}

// GetStudentYears returns the grade levels of one year sorted by order
func (c *AcademicYearClient) GetStudentYears(ctx context.Context, yearID string) ([]models.StudentYear, error) {
	o := op{resource: "academic-years", operation: "student-years", id: yearID}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, academicYearsPath+escapeID(yearID)+"/student-years", nil)
	if err != nil {
		return nil, err
	}
	years, err := decodeWith(c.logger, o, raw, unwrapStudentYears)
	if err != nil {
		return nil, err
	}
	models.SortStudentYearsByOrder(years)
	return years, nil
}

func unwrapAcademicYearList(raw json.RawMessage) ([]models.AcademicYear, error) {
	var years []models.AcademicYear
	if isJSONArray(raw) {
		err := json.Unmarshal(raw, &years)
		return years, err
	}
	var env struct {
		AcademicYears []models.AcademicYear `json:"academicYears"`
		Pagination    *dto.PaginationInfo   `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.AcademicYears == nil {
		return nil, fmt.Errorf("missing academicYears array")
	}
	return env.AcademicYears, nil
}

func unwrapAcademicYear(raw json.RawMessage) (*models.AcademicYear, error) {
	if hasKey(raw, "academicYear") {
		var env struct {
			AcademicYear models.AcademicYear `json:"academicYear"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.AcademicYear, nil
	}
	var year models.AcademicYear
	if err := json.Unmarshal(raw, &year); err != nil {
		return nil, err
	}
	return &year, nil
}

func unwrapStudentYears(raw json.RawMessage) ([]models.StudentYear, error) {
	var years []models.StudentYear
	if isJSONArray(raw) {
		err := json.Unmarshal(raw, &years)
		return years, err
	}
	var env struct {
		StudentYears []models.StudentYear `json:"studentYears"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.StudentYears == nil {
		return nil, fmt.Errorf("missing studentYears array")
	}
	return env.StudentYears, nil
}
