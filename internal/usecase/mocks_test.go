package usecase_test

import (
	"context"
	"errors"
	"testing"

	"preset-backend/internal/domain"
	"preset-backend/pkg/apperror"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserProfileRepo struct {
	mock.Mock
}

func (m *MockUserProfileRepo) GetByID(ctx context.Context, id string) (*domain.CandidateUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateUser), args.Error(1)
}

func (m *MockUserProfileRepo) GetByAuthUserID(ctx context.Context, authUserID string) (*domain.CandidateUser, error) {
	args := m.Called(ctx, authUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateUser), args.Error(1)
}

func (m *MockUserProfileRepo) FetchActiveCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.CandidateUser, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateUser), args.Error(1)
}

type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepo) GetRoleWithProject(ctx context.Context, roleID string) (*domain.RoleRequirement, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoleRequirement), args.Error(1)
}

func (m *MockProjectRepo) FetchPublishedPublic(ctx context.Context, limit int) ([]domain.Project, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

type MockGearRequestRepo struct {
	mock.Mock
}

func (m *MockGearRequestRepo) GetByID(ctx context.Context, id string) (*domain.GearRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GearRequest), args.Error(1)
}

func (m *MockGearRequestRepo) FetchByProject(ctx context.Context, projectID, status string) ([]domain.GearRequest, error) {
	args := m.Called(ctx, projectID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GearRequest), args.Error(1)
}

func (m *MockGearRequestRepo) CountByProject(ctx context.Context, projectID, status string) (int64, error) {
	args := m.Called(ctx, projectID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGearRequestRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepo) FetchActive(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

type MockGearOfferRepo struct {
	mock.Mock
}

func (m *MockGearOfferRepo) Create(ctx context.Context, offer *domain.GearOffer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockGearOfferRepo) FetchByProject(ctx context.Context, projectID string) ([]domain.GearOffer, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GearOffer), args.Error(1)
}

func (m *MockGearOfferRepo) ExistsPending(ctx context.Context, projectID, offererID string) (bool, error) {
	args := m.Called(ctx, projectID, offererID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGearOfferRepo) CountByProject(ctx context.Context, projectID, status string) (int64, error) {
	args := m.Called(ctx, projectID, status)
	return args.Get(0).(int64), args.Error(1)
}

var errStoreDown = errors.New("connection refused")

func appErrorCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }
func floatPtr(f float64) *float64 {
	return &f
}
