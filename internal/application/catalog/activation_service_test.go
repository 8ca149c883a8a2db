package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// MockActivationRepository is a mock implementation of ActivationRepository
type MockActivationRepository struct {
	mock.Mock
}

func (m *MockActivationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Activation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Activation), args.Error(1)
}

func (m *MockActivationRepository) FindByEntryID(ctx context.Context, entryID string) (*catalog.Activation, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Activation), args.Error(1)
}

func (m *MockActivationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Activation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Activation), args.Error(1)
}

func (m *MockActivationRepository) FindActive(ctx context.Context) ([]catalog.Activation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Activation), args.Error(1)
}

func (m *MockActivationRepository) Save(ctx context.Context, activation *catalog.Activation) error {
	args := m.Called(ctx, activation)
	return args.Error(0)
}

func (m *MockActivationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Verify interface compliance
var _ catalog.ActivationRepository = (*MockActivationRepository)(nil)

func hotelBookingActivation(t *testing.T, active bool) *catalog.Activation {
	t.Helper()
	entry, ok := catalog.FindEntryByTitle(catalog.DefaultEntries(), "Hotel Booking")
	require.True(t, ok)
	activation, err := catalog.NewActivation(entry)
	require.NoError(t, err)
	activation.SetActive(active)
	return activation
}

func TestActivationService_ListManaged_EmptyRecords(t *testing.T) {
	mockRepo := new(MockActivationRepository)
	service := NewActivationService(mockRepo)

	ctx := context.Background()
	mockRepo.On("FindAll", ctx, mock.Anything).Return([]catalog.Activation{}, nil)

	view, err := service.ListManaged(ctx)

	require.NoError(t, err)
	assert.Empty(t, view.Active)
	assert.Len(t, view.Available, len(catalog.DefaultEntries()))
	for _, v := range view.Available {
		assert.Nil(t, v.ActivationID)
		assert.False(t, v.IsActive)
	}
}

func TestActivationService_ListManaged_Partition(t *testing.T) {
	mockRepo := new(MockActivationRepository)
	service := NewActivationService(mockRepo)

	ctx := context.Background()
	hotel := hotelBookingActivation(t, true)
	mockRepo.On("FindAll", ctx, mock.Anything).Return([]catalog.Activation{*hotel}, nil)

	view, err := service.ListManaged(ctx)

	require.NoError(t, err)
	require.Len(t, view.Active, 1)
	assert.Equal(t, "hotel-booking", view.Active[0].EntryID)
	require.NotNil(t, view.Active[0].ActivationID)
	assert.Equal(t, hotel.ID, *view.Active[0].ActivationID)
	assert.Len(t, view.Available, len(catalog.DefaultEntries())-1)

	// every entry in exactly one set
	seen := make(map[string]int)
	for _, v := range view.Active {
		seen[v.EntryID]++
	}
	for _, v := range view.Available {
		seen[v.EntryID]++
	}
	for entryID, n := range seen {
		assert.Equal(t, 1, n, "entry %s appears once", entryID)
	}
}

func TestActivationService_Activate_CreatesRecordOnFirstUse(t *testing.T) {
	mockRepo := new(MockActivationRepository)
	service := NewActivationService(mockRepo)

	ctx := context.Background()
	mockRepo.On("FindByEntryID", ctx, "hotel-booking").Return(nil, shared.ErrNotFound)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Activation")).Return(nil)

	resp, err := service.Activate(ctx, "hotel-booking")

	require.NoError(t, err)
	assert.Equal(t, "hotel-booking", resp.EntryID)
	assert.Equal(t, "Hotel Booking", resp.Title)
	assert.True(t, resp.IsActive)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	// one save for the new record, one for the toggle
	mockRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestActivationService_Activate_UnknownEntry(t *testing.T) {
	mockRepo := new(MockActivationRepository)
	service := NewActivationService(mockRepo)

	ctx := context.Background()
	mockRepo.On("FindByEntryID", ctx, "car-wash").Return(nil, shared.ErrNotFound)

	resp, err := service.Activate(ctx, "car-wash")

	assert.Nil(t, resp)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestActivationService_Deactivate_ReusesRecord(t *testing.T) {
	mockRepo := new(MockActivationRepository)
	service := NewActivationService(mockRepo)

	ctx := context.Background()
	hotel := hotelBookingActivation(t, true)
	mockRepo.On("FindByEntryID", ctx, "hotel-booking").Return(hotel, nil)
	mockRepo.On("Save", ctx, hotel).Return(nil).Once()

	resp, err := service.Deactivate(ctx, "hotel-booking")

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Equal(t, hotel.ID, resp.ID)
	mockRepo.AssertExpectations(t)
}

func TestActivationService_Deactivate_AlreadyOffSkipsWrite(t *testing.T) {
	mockRepo := new(MockActivationRepository)
	service := NewActivationService(mockRepo)

	ctx := context.Background()
	hotel := hotelBookingActivation(t, false)
	mockRepo.On("FindByEntryID", ctx, "hotel-booking").Return(hotel, nil)

	resp, err := service.Deactivate(ctx, "hotel-booking")

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestActivationService_Toggle_ByRecordID(t *testing.T) {
	mockRepo := new(MockActivationRepository)
	service := NewActivationService(mockRepo)

	ctx := context.Background()
	hotel := hotelBookingActivation(t, false)
	mockRepo.On("FindByID", ctx, hotel.ID).Return(hotel, nil)
	mockRepo.On("Save", ctx, hotel).Return(nil).Once()

	resp, err := service.Toggle(ctx, hotel.ID)

	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	mockRepo.AssertExpectations(t)
}
