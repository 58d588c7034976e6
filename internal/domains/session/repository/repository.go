package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"autoecole/infras/otel"
	"autoecole/infras/postgres"
	"autoecole/internal/domains/session/model"
	"autoecole/shared"
	"autoecole/shared/constant"
	gDto "autoecole/shared/dto"
	"autoecole/shared/failure"
	"autoecole/shared/logger"
	gRepo "autoecole/shared/repository"
	"autoecole/shared/timezone"
)

const (
	participantExistsQuery = `SELECT EXISTS(SELECT 1 FROM session_participants WHERE session_id = $1 AND user_id = $2)`
	participantCountQuery  = `SELECT COUNT(*) FROM session_participants WHERE session_id = $1`
	participantDeleteQuery = `DELETE FROM session_participants WHERE session_id = $1 AND user_id = $2`
)

type Session interface {
	Insert(ctx context.Context, model model.TrainingSession) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TrainingSession, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TrainingSession, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Enroll(ctx context.Context, sessionID, userID string) error
	Withdraw(ctx context.Context, sessionID, userID string) error
	GetParticipants(ctx context.Context, sessionID string) ([]model.Participant, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.TrainingSession]
	participants gRepo.Repository[model.Participant]
	db           *postgres.Connection
	otel         otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Session {
	return &repositoryImpl{
		Repository:   gRepo.NewRepository[model.TrainingSession](model.EntityName, model.TableName, model.FieldID, db, otel),
		participants: gRepo.NewRepository[model.Participant](model.ParticipantEntityName, model.ParticipantTableName, model.ParticipantFieldSessionID, db, otel),
		db:           db,
		otel:         otel,
	}
}

// Enroll adds the user to the roster. The session row is locked for the whole
// sequence so the duplicate and capacity checks stay valid until the insert
// commits: under concurrent calls for the last seat exactly one wins.
func (repo *repositoryImpl) Enroll(ctx context.Context, sessionID, userID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Enroll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(sessionID, model.FieldID, model.TableName)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := sqltx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback session enroll")
			}
		}
	}()

	session, err := repo.GetForUpdateTx(ctx, sqltx, filter)
	if err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}

	if session.ID == constant.Empty {
		err = failure.NotFound("session not found")

		return err // nolint:wrapcheck
	}

	var enrolled bool
	if err = sqltx.GetContext(ctx, &enrolled, participantExistsQuery, sessionID, userID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check enrollment: %w", err)
	}

	if enrolled {
		err = failure.ErrAlreadyEnrolled

		return err // nolint:wrapcheck
	}

	var count int
	if err = sqltx.GetContext(ctx, &count, participantCountQuery, sessionID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to count participants: %w", err)
	}

	if count >= session.MaxParticipants {
		err = failure.ErrCapacityExceeded

		return err // nolint:wrapcheck
	}

	participant := model.Participant{
		SessionID:  sessionID,
		UserID:     userID,
		EnrolledAt: timezone.Now(),
	}

	if err = repo.participants.InsertTx(ctx, sqltx, participant); err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit session enroll: %w", err)
	}

	return nil
}

// Withdraw removes the user from the roster under the same session lock, so a
// concurrent enroll cannot read a roster count the withdraw is about to
// change. Removing an absent user is a distinct failure, not a no-op.
func (repo *repositoryImpl) Withdraw(ctx context.Context, sessionID, userID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Withdraw")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(sessionID, model.FieldID, model.TableName)

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := sqltx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to rollback session withdraw")
			}
		}
	}()

	session, err := repo.GetForUpdateTx(ctx, sqltx, filter)
	if err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}

	if session.ID == constant.Empty {
		err = failure.NotFound("session not found")

		return err // nolint:wrapcheck
	}

	result, err := sqltx.ExecContext(ctx, participantDeleteQuery, sessionID, userID)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to delete participant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		err = failure.ErrNotEnrolled

		return err // nolint:wrapcheck
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit session withdraw: %w", err)
	}

	return nil
}

// GetParticipants returns the roster in enrollment order.
func (repo *repositoryImpl) GetParticipants(ctx context.Context, sessionID string) (participants []model.Participant, err error) {
	params := gDto.QueryParams{
		SortBy:  model.ParticipantFieldEnrolledAt,
		SortDir: gDto.SortDirAsc,
	}

	participants, err = repo.participants.GetAll(ctx, params, shared.FilterByID(sessionID, model.ParticipantFieldSessionID, model.ParticipantTableName))
	if err != nil {
		return participants, fmt.Errorf("failed to get session participants: %w", err)
	}

	return participants, nil
}
