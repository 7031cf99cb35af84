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

const lessonsPath = "/api/content/lessons"

// LessonClient talks to the lesson endpoints
type LessonClient struct {
	base   *BaseClient
	logger zerolog.Logger
}

// NewLessonClient creates a LessonClient
func NewLessonClient(base *BaseClient) *LessonClient {
	return &LessonClient{base: base, logger: logger.ForResource("lessons")}
}

// List returns lessons matching f with the backend's pagination block
func (c *LessonClient) List(ctx context.Context, f dto.LessonFilters) ([]models.Lesson, dto.PaginationInfo, error) {
	o := op{resource: "lessons", operation: "list"}
	q := listQuery(f.ListParams).
		String("lectureId", f.LectureID).
		String("type", string(f.Type)).
		Bool("isFree", f.IsFree)

	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, helpers.WithQuery(lessonsPath, q), nil)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	page, err := decodeWith(c.logger, o, raw, unwrapLessonPage)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	if page.pagination == nil {
		p := helpers.PaginationForArray(len(page.lessons), f.Page, f.Limit)
		page.pagination = &p
	}
	return page.lessons, *page.pagination, nil
}

// ListByLecture returns the lessons of one lecture sorted by their order field
func (c *LessonClient) ListByLecture(ctx context.Context, lectureID string) ([]models.Lesson, error) {
	lessons, _, err := c.List(ctx, dto.LessonFilters{LectureID: lectureID})
	if err != nil {
		return nil, err
	}
	models.SortLessonsByOrder(lessons)
	return lessons, nil
}

// Get returns one lesson. A backend 404 matches apperrors.ErrNotFound.
func (c *LessonClient) Get(ctx context.Context, id string) (*models.Lesson, error) {
	o := op{resource: "lessons", operation: "get", id: id}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodGet, lessonsPath+escapeID(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapLesson)
}

// Create creates a lesson
func (c *LessonClient) Create(ctx context.Context, req dto.CreateLessonRequest) (*models.Lesson, error) {
	o := op{resource: "lessons", operation: "create"}
	if err := validatePayload(c.logger, o, req); err != nil {
		return nil, err
	}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodPost, lessonsPath, req)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapLesson)
}

// Update sends only the fields set on req
func (c *LessonClient) Update(ctx context.Context, id string, req dto.UpdateLessonRequest) (*models.Lesson, error) {
	o := op{resource: "lessons", operation: "update", id: id}
	if err := validatePayload(c.logger, o, req); err != nil {
		return nil, err
	}
	raw, err := c.base.doJSON(ctx, c.logger, o, http.MethodPut, lessonsPath+escapeID(id), req)
	if err != nil {
		return nil, err
	}
	return decodeWith(c.logger, o, raw, unwrapLesson)
}

// Delete deletes a lesson
func (c *LessonClient) Delete(ctx context.Context, id string) error {
	o := op{resource: "lessons", operation: "delete", id: id}
	_, err := c.base.doJSON(ctx, c.logger, o, http.MethodDelete, lessonsPath+escapeID(id), nil)
	return err
}

type lessonPage struct {
	lessons    []models.Lesson
	pagination *dto.PaginationInfo
}

// unwrapLessonPage accepts {lessons, pagination} or a bare array.
func unwrapLessonPage(raw json.RawMessage) (lessonPage, error) {
	if isJSONArray(raw) {
		var lessons []models.Lesson
		err := json.Unmarshal(raw, &lessons)
		return lessonPage{lessons: lessons}, err
	}
	var env struct {
		Lessons    []models.Lesson     `json:"lessons"`
		Pagination *dto.PaginationInfo `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return lessonPage{}, err
	}
	if env.Lessons == nil {
		return lessonPage{}, fmt.Errorf("missing lessons array")
	}
	return lessonPage{lessons: env.Lessons, pagination: env.Pagination}, nil
}

func unwrapLesson(raw json.RawMessage) (*models.Lesson, error) {
	if hasKey(raw, "lesson") {
		var env struct {
			Lesson models.Lesson `json:"lesson"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		return &env.Lesson, nil
	}
	var lesson models.Lesson
	if err := json.Unmarshal(raw, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}
