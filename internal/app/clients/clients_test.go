package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
	"github.com/amrelfalogy/smarted/internal/app/models/dto/enums"
	"github.com/amrelfalogy/smarted/internal/pkg/apperrors"
	"github.com/amrelfalogy/smarted/internal/pkg/credstore"
)

func newTestClients(t *testing.T, handler http.HandlerFunc) (*Clients, *credstore.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := credstore.NewMemoryStore()
	return New(Options{BaseURL: srv.URL + "/", HTTPClient: srv.Client(), Tokens: store}), store
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestUnitListOmitsUnsetFilters(t *testing.T) {
	var gotQuery, gotPath string
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `[{"id":"u2","order":2},{"id":"u1","order":1}]`)
	})

	units, page, err := c.Units.List(context.Background(), dto.UnitFilters{
		ListParams: dto.ListParams{Page: 2},
		SubjectID:  "s1",
		IsActive:   dto.Ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/content/units", gotPath)
	assert.Equal(t, "isActive=false&page=2&subjectId=s1", gotQuery)
	assert.Len(t, units, 2)
	assert.Equal(t, dto.PaginationInfo{Page: 2}, page)

	_, _, err = c.Units.List(context.Background(), dto.UnitFilters{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestBareArrayKeepsRequestedPage(t *testing.T) {
	var query string
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		switch r.URL.Path {
		case "/api/content/units":
			writeJSON(w, http.StatusOK, `[{"id":"u21"},{"id":"u22"}]`)
		case "/api/content/lessons":
			writeJSON(w, http.StatusOK, `[{"id":"l41"}]`)
		}
	})
	ctx := context.Background()

	units, page, err := c.Units.List(ctx, dto.UnitFilters{ListParams: dto.ListParams{Page: 3, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=3", query)
	assert.Len(t, units, 2)
	assert.Equal(t, dto.PaginationInfo{Page: 3, Limit: 10}, page)
	assert.False(t, page.TotalsKnown())
	assert.False(t, page.HasNext())

	_, page, err = c.Lessons.List(ctx, dto.LessonFilters{ListParams: dto.ListParams{Page: 5, Limit: 20}})
	require.NoError(t, err)
	assert.Equal(t, dto.PaginationInfo{Page: 5, Limit: 20}, page)

	_, page, err = c.Units.List(ctx, dto.UnitFilters{})
	require.NoError(t, err)
	assert.Equal(t, dto.PaginationInfo{Page: 1, TotalPages: 1, TotalItems: 2, Limit: 2}, page)
}

func TestUnitListAcceptsEnvelopeAndSortsBySubject(t *testing.T) {
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"units":[{"id":"b","order":3},{"id":"a","order":1}]}`)
	})

	units, err := c.Units.ListBySubject(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "a", units[0].ID)
	assert.Equal(t, "b", units[1].ID)
}

func TestLessonUpdateSendsOnlySetFields(t *testing.T) {
	var body map[string]interface{}
	var method, path string
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, `{"lesson":{"id":"l1","title":"Vectors"}}`)
	})

	lesson, err := c.Lessons.Update(context.Background(), "l1", dto.UpdateLessonRequest{
		Title:  dto.Ptr("Vectors"),
		IsFree: dto.Ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/content/lessons/l1", path)
	assert.Equal(t, map[string]interface{}{"title": "Vectors", "isFree": false}, body)
	assert.Equal(t, "Vectors", lesson.Title)
}

func TestLessonListPagination(t *testing.T) {
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "lectureId=lec-1&limit=5&type=video", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `{"lessons":[{"id":"l1"}],"pagination":{"page":1,"totalPages":3,"totalItems":11,"limit":5}}`)
	})

	lessons, page, err := c.Lessons.List(context.Background(), dto.LessonFilters{
		ListParams: dto.ListParams{Limit: 5},
		LectureID:  "lec-1",
		Type:       enums.LessonVideo,
	})
	require.NoError(t, err)
	assert.Len(t, lessons, 1)
	assert.Equal(t, dto.PaginationInfo{Page: 1, TotalPages: 3, TotalItems: 11, Limit: 5}, page)
	assert.True(t, page.HasNext())
}

func TestGetMapsNotFound(t *testing.T) {
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"Unit not found"}`)
	})

	unit, err := c.Units.Get(context.Background(), "missing")
	assert.Nil(t, unit)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	var httpErr *apperrors.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "/api/content/units/missing", httpErr.URL)
	assert.JSONEq(t, `{"message":"Unit not found"}`, string(httpErr.Body))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c := New(Options{BaseURL: baseURL})
	err := c.Lessons.Delete(context.Background(), "l1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTransport))
	assert.False(t, errors.Is(err, apperrors.ErrHTTP))
}

func TestBearerTokenFromStore(t *testing.T) {
	var authHeader string
	c, store := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, `{"id":"u1","email":"a@b.eg"}`)
	})

	_, err := c.Users.Profile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authHeader)

	require.NoError(t, store.Set(credstore.AuthTokenKey, "tok-1"))
	_, err = c.Users.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", authHeader)
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	var calls int32
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusCreated, `{}`)
	})

	_, err := c.Units.Create(context.Background(), dto.CreateUnitRequest{Name: "Algebra"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Contains(t, err.Error(), "SubjectID is required")

	_, err = c.ActivationCodes.Create(context.Background(), dto.CreateActivationCodeRequest{
		SubjectID: dto.Ptr("s1"),
		LessonID:  dto.Ptr("l1"),
		MaxUses:   10,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestUnitCreateOmitsServerFields(t *testing.T) {
	var body map[string]interface{}
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, `{"id":"u9","subjectId":"s1","name":"Algebra","order":1}`)
	})

	unit, err := c.Units.Create(context.Background(), dto.CreateUnitRequest{SubjectID: "s1", Name: "Algebra", Order: 1})
	require.NoError(t, err)
	assert.Equal(t, "u9", unit.ID)
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "createdAt")
	assert.Equal(t, "s1", body["subjectId"])
}

func TestAcademicYearsUnwrapEnvelope(t *testing.T) {
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/academic/academic-years":
			writeJSON(w, http.StatusOK, `{"academicYears":[{"id":"y1"},{"id":"y2","isCurrent":true}],"pagination":{"page":1,"totalPages":1,"totalItems":2,"limit":10}}`)
		case "/api/academic/academic-years/current":
			writeJSON(w, http.StatusOK, `{"academicYear":{"id":"y2","isCurrent":true}}`)
		case "/api/academic/academic-years/y2/student-years":
			writeJSON(w, http.StatusOK, `[{"id":"g2","order":2},{"id":"g1","order":1}]`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	years, err := c.AcademicYears.GetAll(ctx, dto.AcademicYearFilters{})
	require.NoError(t, err)
	require.Len(t, years, 2)
	assert.Equal(t, "y1", years[0].ID)

	current, err := c.AcademicYears.GetCurrent(ctx)
	require.NoError(t, err)
	assert.True(t, current.IsCurrent)

	grades, err := c.AcademicYears.GetStudentYears(ctx, "y2")
	require.NoError(t, err)
	require.Len(t, grades, 2)
	assert.Equal(t, "g1", grades[0].ID)

	_, err = c.AcademicYears.GetActive(ctx)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUsersAndPaymentsPages(t *testing.T) {
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users":
			assert.Equal(t, "isVerified=true&role=teacher", r.URL.RawQuery)
			writeJSON(w, http.StatusOK, `{"users":[{"id":"t1","role":"teacher"}],"pagination":{"page":1,"totalPages":1,"totalItems":1,"limit":10}}`)
		case "/api/payments":
			assert.Equal(t, "status=pending", r.URL.RawQuery)
			writeJSON(w, http.StatusOK, `{"payments":[{"id":"p1","status":"pending","amount":150}],"pagination":{"page":1,"totalPages":1,"totalItems":1,"limit":10}}`)
		case "/api/users/stats/overview":
			writeJSON(w, http.StatusOK, `{"totalUsers":12,"usersByRole":{"student":10,"teacher":2}}`)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	users, page, err := c.Users.List(ctx, dto.UserFilters{Role: enums.RoleTeacher, IsVerified: dto.Ptr(true)})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, enums.RoleTeacher, users[0].Role)
	assert.Equal(t, 1, page.TotalItems)

	payments, _, err := c.Payments.List(ctx, dto.PaymentFilters{Status: enums.PaymentPending})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 150.0, payments[0].Amount)

	stats, err := c.Users.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalUsers)
	assert.Equal(t, 2, stats.UsersByRole[enums.RoleTeacher])
}

func TestUsersListRejectsMissingArray(t *testing.T) {
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[]}`)
	})

	_, _, err := c.Users.List(context.Background(), dto.UserFilters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing users array")
}

func TestActivationCodes(t *testing.T) {
	var deleted string
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, `{"codes":[{"id":"c1","code":"ABC123","maxUses":4,"currentUses":1}],"pagination":{"page":1,"totalPages":1,"totalItems":1,"limit":10}}`)
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, `{"code":{"id":"c2","code":"XYZ789","maxUses":10}}`)
		case http.MethodDelete:
			deleted = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	codes, _, err := c.ActivationCodes.List(ctx, dto.ActivationCodeFilters{})
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, 25, codes[0].UsagePercentage())

	created, err := c.ActivationCodes.Create(ctx, dto.CreateActivationCodeRequest{LessonID: dto.Ptr("l1"), MaxUses: 10})
	require.NoError(t, err)
	assert.Equal(t, "c2", created.ID)
	assert.Equal(t, "XYZ789", created.Code)

	require.NoError(t, c.ActivationCodes.Delete(ctx, "c2"))
	assert.Equal(t, "/api/activation-codes/c2", deleted)
}

func TestAnalytics(t *testing.T) {
	c, _ := newTestClients(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analytics/dashboard":
			writeJSON(w, http.StatusOK, `{"totalStudents":40,"pendingPayments":3,"totalRevenue":1200.5}`)
		case "/analytics/users":
			assert.Equal(t, "month", r.URL.Query().Get("period"))
			writeJSON(w, http.StatusOK, `{"registrations":[{"period":"2026-09","count":7}],"byRole":{"student":40}}`)
		}
	})
	ctx := context.Background()

	dash, err := c.Analytics.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40, dash.TotalStudents)
	assert.Equal(t, 1200.5, dash.TotalRevenue)

	ua, err := c.Analytics.Users(ctx, "month")
	require.NoError(t, err)
	require.Len(t, ua.Registrations, 1)
	assert.Equal(t, 7, ua.Registrations[0].Count)
}

func TestAuthLoginAndLogout(t *testing.T) {
	var logoutCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req dto.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "secret" {
				writeJSON(w, http.StatusUnauthorized, `{"message":"invalid credentials"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"token":"tok-9","user":{"id":"a1","role":"admin"}}`)
		case "/custom/logout":
			atomic.AddInt32(&logoutCalls, 1)
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, LogoutPath: "/custom/logout"})
	ctx := context.Background()

	resp, err := c.Auth.Login(ctx, "admin@smarted.eg", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-9", resp.Token)
	assert.Equal(t, enums.RoleAdmin, resp.User.Role)

	_, err = c.Auth.Login(ctx, "admin@smarted.eg", "wrong")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	require.NoError(t, c.Auth.Logout(ctx))
	assert.Equal(t, int32(1), atomic.LoadInt32(&logoutCalls))
}
