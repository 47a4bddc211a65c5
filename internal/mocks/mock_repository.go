package mocks

import (
	"context"
	"io"
	"time"

	"gigbud/internal/models"
	"gigbud/internal/services"

	"github.com/stretchr/testify/mock"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Patch(id uint, data map[string]interface{}) error {
	args := m.Called(id, data)
	return args.Error(0)
}

func (m *MockUserRepository) SetOTP(email, code string, expiresAt time.Time) error {
	args := m.Called(email, code, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ConsumeOTP(email, code string, now time.Time) (bool, error) {
	args := m.Called(email, code, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateLocation(id uint, lat, lng float64) error {
	args := m.Called(id, lat, lng)
	return args.Error(0)
}

// Shared MockTaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(task *models.Task) error {
	args := m.Called(task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(id uint) (*models.Task, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByOwner(ownerID uint) ([]models.Task, error) {
	args := m.Called(ownerID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAvailable() ([]models.Task, error) {
	args := m.Called()
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByAssignee(assigneeID uint, statuses []string) ([]models.Task, error) {
	args := m.Called(assigneeID, statuses)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) FindApplied(userID uint) ([]models.Task, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) FindSaved(userID uint) ([]models.Task, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) FindNearby(lat, lng, radiusKm float64) ([]models.Task, error) {
	args := m.Called(lat, lng, radiusKm)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskRepository) AddApplicant(taskID, userID uint, appliedAt time.Time) error {
	args := m.Called(taskID, userID, appliedAt)
	return args.Error(0)
}

func (m *MockTaskRepository) HasApplicant(taskID, userID uint) (bool, error) {
	args := m.Called(taskID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) AddSave(taskID, userID uint) error {
	args := m.Called(taskID, userID)
	return args.Error(0)
}

func (m *MockTaskRepository) Assign(taskID, applicantID uint) (bool, error) {
	args := m.Called(taskID, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) TransitionStatus(taskID uint, from, to string) (bool, error) {
	args := m.Called(taskID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Complete(taskID, completedBy uint, fromStatuses []string) (bool, error) {
	args := m.Called(taskID, completedBy, fromStatuses)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// Shared MockBlacklistRepository
type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) Add(token string, userID uint, expiresAt time.Time) error {
	args := m.Called(token, userID, expiresAt)
	return args.Error(0)
}

func (m *MockBlacklistRepository) IsBlacklisted(token string, now time.Time) (bool, error) {
	args := m.Called(token, now)
	return args.Bool(0), args.Error(1)
}

// Shared MockReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindBySubject(userID uint) ([]models.Review, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Review), args.Error(1)
}

// Shared MockLocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(location *models.Location) error {
	args := m.Called(location)
	return args.Error(0)
}

func (m *MockLocationRepository) SearchByPrefix(prefix string, limit int) ([]models.Location, error) {
	args := m.Called(prefix, limit)
	return args.Get(0).([]models.Location), args.Error(1)
}

func (m *MockLocationRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// Shared MockNotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByUser(userID uint) ([]models.Notification, error) {
	args := m.Called(userID)
	return args.Get(0).([]models.Notification), args.Error(1)
}

// MockMailer records outbound email.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(recipient, subject, message string) error {
	args := m.Called(recipient, subject, message)
	return args.Error(0)
}

// MockGoogleVerifier fakes the OAuth provider.
type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, idToken string) (*services.GoogleIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.GoogleIdentity), args.Error(1)
}

// MockObjectStore fakes attachment storage.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, size, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockNotificationPublisher records queued notifications.
type MockNotificationPublisher struct {
	mock.Mock
}

func (m *MockNotificationPublisher) Publish(msg services.NotificationMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}
