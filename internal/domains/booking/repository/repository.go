package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"huddle/infras/otel"
	"huddle/infras/postgres"
	"huddle/internal/domains/booking/model"
	"huddle/shared"
	"huddle/shared/constant"
	"huddle/shared/dto"
	"huddle/shared/failure"
	"huddle/shared/logger"
	"huddle/shared/repository"
	"huddle/shared/timezone"
)

var bookingQueries = struct {
	insert        string
	bookedRoomIDs string
	cancel        string
}{
	insert: `INSERT INTO bookings (room_id, start_time, end_time, status, owner_name, created_at, modified_at)
		VALUES (:room_id, :start_time, :end_time, :status, :owner_name, :created_at, :modified_at) RETURNING id`,
	bookedRoomIDs: `SELECT DISTINCT room_id FROM bookings`,
	cancel: `UPDATE bookings SET status = :status_cancelled, modified_at = :modified_at
		WHERE id = :id AND status = :status_confirmed`,
}

// OverlapFilter is the one predicate deciding whether a confirmed booking
// collides with the half-open window [start, end): a booking overlaps when
// it starts before the window ends and ends after the window starts.
// Back-to-back intervals sharing a boundary instant do not overlap.
// Availability checks and booking inserts both go through this filter so
// the two can never disagree.
func OverlapFilter(start, end time.Time) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    model.FieldStatus,
				Value:    constant.BookingStatusConfirmed,
				Operator: dto.FilterOperatorEq,
				Table:    model.TableName,
			},
			dto.Filter{
				Field:    model.FieldStartTime,
				ArgName:  "window_end",
				Value:    end,
				Operator: dto.FilterOperatorLess,
				Table:    model.TableName,
			},
			dto.Filter{
				Field:    model.FieldEndTime,
				ArgName:  "window_start",
				Value:    start,
				Operator: dto.FilterOperatorGreater,
				Table:    model.TableName,
			},
		},
	}
}

// RoomOverlapFilter narrows OverlapFilter to a single room.
func RoomOverlapFilter(roomID int64, start, end time.Time) dto.FilterGroup {
	filter := OverlapFilter(start, end)
	filter.Filters = append(filter.Filters, dto.Filter{
		Field:    model.FieldRoomID,
		Value:    roomID,
		Operator: dto.FilterOperatorEq,
		Table:    model.TableName,
	})

	return filter
}

type Booking interface {
	Insert(ctx context.Context, booking model.Booking) (model.Booking, error)
	GetByID(ctx context.Context, id int64) (model.Booking, error)
	FindConfirmedOverlapping(ctx context.Context, roomID int64, start, end time.Time) ([]model.Booking, error)
	FindBookedRoomIDs(ctx context.Context, start, end time.Time) ([]int64, error)
	ListConfirmedForRoom(ctx context.Context, roomID int64, dayStart, dayEnd time.Time) ([]model.Booking, error)
	CancelConfirmed(ctx context.Context, id int64) (bool, error)
}

type bookingImpl struct {
	repository.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otl otel.Otel) Booking {
	return &bookingImpl{
		Repository: repository.NewRepository[model.Booking](model.EntityName, model.TableName, model.PrimaryColumn, db, otl),
		db:         db,
		otel:       otl,
	}
}

func (repo *bookingImpl) Insert(ctx context.Context, booking model.Booking) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Insert")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, bookingQueries.insert)

	prepare, err := repo.db.Write.PrepareNamedContext(ctx, bookingQueries.insert)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &booking.ID, booking)
	if err != nil {
		// The exclusion constraint on (room_id, interval) is the
		// cross-process backstop for concurrent inserts.
		switch repository.PqErrorCode(err) {
		case constant.PqErrorCodeExclusionViolation:
			return booking, failure.Conflict("room is already booked for the requested time")
		case constant.PqErrorCodeFkViolation:
			return booking, failure.NotFound("room")
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return booking, nil
}

func (repo *bookingImpl) GetByID(ctx context.Context, id int64) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetByID")
	defer scope.End()

	return repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

func (repo *bookingImpl) FindConfirmedOverlapping(ctx context.Context, roomID int64, start, end time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindConfirmedOverlapping")
	defer scope.End()

	params := dto.QueryParams{SortBy: model.FieldStartTime, SortDir: dto.SortDirAsc}

	return repo.GetAll(ctx, params, RoomOverlapFilter(roomID, start, end)) //nolint:wrapcheck
}

func (repo *bookingImpl) FindBookedRoomIDs(ctx context.Context, start, end time.Time) ([]int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindBookedRoomIDs")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, OverlapFilter(start, end))
	query := bookingQueries.bookedRoomIDs + where

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var roomIDs []int64

	err = prepare.SelectContext(ctx, &roomIDs, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get booked room ids (%s): %w", model.EntityName, err)
	}

	return roomIDs, nil
}

func (repo *bookingImpl) ListConfirmedForRoom(ctx context.Context, roomID int64, dayStart, dayEnd time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListConfirmedForRoom")
	defer scope.End()

	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: dto.FilterOperatorEq,
				Table:    model.TableName,
			},
			dto.Filter{
				Field:    model.FieldStatus,
				Value:    constant.BookingStatusConfirmed,
				Operator: dto.FilterOperatorEq,
				Table:    model.TableName,
			},
			dto.Filter{
				Field:    model.FieldStartTime,
				ArgName:  "day_start",
				Value:    dayStart,
				Operator: dto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
			dto.Filter{
				Field:    model.FieldStartTime,
				ArgName:  "day_end",
				Value:    dayEnd,
				Operator: dto.FilterOperatorLess,
				Table:    model.TableName,
			},
		},
	}

	params := dto.QueryParams{SortBy: model.FieldStartTime, SortDir: dto.SortDirAsc}

	return repo.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *bookingImpl) CancelConfirmed(ctx context.Context, id int64) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CancelConfirmed")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, bookingQueries.cancel)

	args := map[string]any{
		"id":               id,
		"status_cancelled": constant.BookingStatusCancelled,
		"status_confirmed": constant.BookingStatusConfirmed,
		"modified_at":      timezone.Now(),
	}

	result, err := repo.db.Write.NamedExecContext(ctx, bookingQueries.cancel, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to cancel data (%s): %w", model.EntityName, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return rows > 0, nil
}
