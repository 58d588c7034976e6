package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"autoecole/config"
	"autoecole/infras/otel/mocks"
	sessionMocks "autoecole/internal/domains/session/mocks"
	"autoecole/internal/domains/session/model"
	"autoecole/internal/domains/session/model/dto"
	"autoecole/internal/domains/session/service"
	userMocks "autoecole/internal/domains/user/mocks"
	userModel "autoecole/internal/domains/user/model"
	"autoecole/internal/notification"
	notificationMocks "autoecole/internal/notification/mocks"
	"autoecole/shared/cache"
	cacheMocks "autoecole/shared/cache/mocks"
	"autoecole/shared/failure"
	"autoecole/shared/timezone"
)

type sessionServiceMocks struct {
	repo     *sessionMocks.MockSession
	users    *userMocks.MockUser
	notifier *notificationMocks.MockNotifier
	cache    *cacheMocks.MockRedisCache
}

func newSessionService(ctrl *gomock.Controller) (service.Session, sessionServiceMocks) {
	m := sessionServiceMocks{
		repo:     sessionMocks.NewMockSession(ctrl),
		users:    userMocks.NewMockUser(ctrl),
		notifier: notificationMocks.NewMockNotifier(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache invalidation and saves run on background goroutines.
	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.users, m.notifier, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func TestSessionService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSessionService(ctrl)

	t.Run("inserts a scheduled session", func(t *testing.T) {
		m.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, session model.TrainingSession) error {
				assert.Equal(t, model.StatusScheduled, session.Status)
				assert.Equal(t, 8, session.MaxParticipants)

				return nil
			})

		err := svc.Create(context.Background(), dto.CreateSessionRequest{
			Title:           "Highway driving",
			Location:        "Lyon",
			StartDate:       "2026-09-10 09:00:00",
			EndDate:         "2026-09-10 12:00:00",
			MaxParticipants: 8,
		})

		assert.NoError(t, err)
	})

	t.Run("rejects an unparseable date", func(t *testing.T) {
		err := svc.Create(context.Background(), dto.CreateSessionRequest{
			Title:           "Highway driving",
			StartDate:       "10/09/2026",
			EndDate:         "2026-09-10 12:00:00",
			MaxParticipants: 8,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects an end before the start", func(t *testing.T) {
		err := svc.Create(context.Background(), dto.CreateSessionRequest{
			Title:           "Highway driving",
			StartDate:       "2026-09-10 12:00:00",
			EndDate:         "2026-09-10 09:00:00",
			MaxParticipants: 8,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestSessionService_Enroll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSessionService(ctrl)

	sessionID := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	userID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	t.Run("enrolls and notifies", func(t *testing.T) {
		m.users.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			Enroll(gomock.Any(), sessionID, userID).
			Return(nil)

		m.notifier.EXPECT().
			Notify(gomock.Any(), notification.EventSessionEnrolled, gomock.Any())

		assert.NoError(t, svc.Enroll(context.Background(), sessionID, userID))
	})

	t.Run("unknown user", func(t *testing.T) {
		m.users.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Enroll(context.Background(), sessionID, userID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("capacity failures pass through untouched", func(t *testing.T) {
		m.users.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		m.repo.EXPECT().
			Enroll(gomock.Any(), sessionID, userID).
			Return(failure.ErrCapacityExceeded)

		err := svc.Enroll(context.Background(), sessionID, userID)

		assert.ErrorIs(t, err, failure.ErrCapacityExceeded)
	})
}

func TestSessionService_Withdraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSessionService(ctrl)

	sessionID := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	userID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"

	t.Run("withdraws and notifies", func(t *testing.T) {
		m.repo.EXPECT().
			Withdraw(gomock.Any(), sessionID, userID).
			Return(nil)

		m.notifier.EXPECT().
			Notify(gomock.Any(), notification.EventSessionWithdrawn, gomock.Any())

		assert.NoError(t, svc.Withdraw(context.Background(), sessionID, userID))
	})

	t.Run("absent user passes through untouched", func(t *testing.T) {
		m.repo.EXPECT().
			Withdraw(gomock.Any(), sessionID, userID).
			Return(failure.ErrNotEnrolled)

		err := svc.Withdraw(context.Background(), sessionID, userID)

		assert.ErrorIs(t, err, failure.ErrNotEnrolled)
	})
}

func TestSessionService_GetParticipants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newSessionService(ctrl)

	sessionID := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	t.Run("merges roster with user records", func(t *testing.T) {
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TrainingSession{ID: sessionID, MaxParticipants: 8}, nil)

		m.repo.EXPECT().
			GetParticipants(gomock.Any(), sessionID).
			Return([]model.Participant{
				{SessionID: sessionID, UserID: "user-1", EnrolledAt: timezone.Now()},
				{SessionID: sessionID, UserID: "user-2", EnrolledAt: timezone.Now().Add(time.Minute)},
			}, nil)

		m.users.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]userModel.User{
				{ID: "user-1", FirstName: "Ana", LastName: "Moreau", Email: "ana@example.com"},
			}, nil)

		res, err := svc.GetParticipants(context.Background(), sessionID)

		assert.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, 6, res.Remaining)
		assert.Equal(t, "Ana Moreau", res.Participants[0].FullName)
		assert.Equal(t, "ana@example.com", res.Participants[0].Email)
		assert.Empty(t, res.Participants[1].FullName)
	})

	t.Run("unknown session", func(t *testing.T) {
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.TrainingSession{}, nil)

		_, err := svc.GetParticipants(context.Background(), sessionID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
