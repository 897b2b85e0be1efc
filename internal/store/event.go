package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uprala/internal/utils"
	"uprala/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	eventTableName      = "uprala.events"
	eventImageTableName = "uprala.event_images"
)

var (
	eventColumns      = utils.StructTagValues(types.Event{})
	eventImageColumns = utils.StructTagValues(types.EventImage{})
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func eventsQuery(filter *types.EventFilter) sq.SelectBuilder {
	query := psql().Select(eventColumns...).From(eventTableName).
		OrderBy("event_date desc nulls last", "created_at desc")
	if filter != nil && strings.TrimSpace(filter.Query) != "" {
		query = query.Where(searchWhere(filter.Query, "title", "location", "description"))
	}
	return query
}

func (r *EventRepository) Events(ctx context.Context, filter *types.EventFilter) ([]*types.Event, error) {

	query, args, err := eventsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate events query: %w", err)
	}

	var events = make([]*types.Event, 0)
	err = pgxscan.Select(ctx, r.pool, &events, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	if err := attachImages(ctx, r.pool, events...); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) Event(ctx context.Context, eventID string) (*types.Event, error) {
	return eventByID(ctx, r.pool, eventID)
}

func eventByID(ctx context.Context, q querier, eventID string) (*types.Event, error) {
	query, args, err := psql().Select(eventColumns...).From(eventTableName).
		Where(sq.Eq{"id": eventID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event query: %w", err)
	}

	var event = new(types.Event)
	err = pgxscan.Get(ctx, q, event, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to fetch event", types.ErrEventNotFound)
	}

	if err := attachImages(ctx, q, event); err != nil {
		return nil, err
	}

	return event, nil
}

func attachImages(ctx context.Context, q querier, events ...*types.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]string, 0, len(events))
	byID := make(map[string]*types.Event, len(events))
	for _, e := range events {
		e.Images = make([]*types.EventImage, 0)
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	query, args, err := psql().Select(eventImageColumns...).From(eventImageTableName).
		Where(sq.Eq{"event_id": ids}).
		OrderBy("sort_order asc", "created_at asc").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate event images query: %w", err)
	}

	var images = make([]*types.EventImage, 0)
	err = pgxscan.Select(ctx, q, &images, query, args...)
	if err != nil {
		return fmt.Errorf("failed to fetch event images: %w", err)
	}

	for _, img := range images {
		if e, ok := byID[img.EventID]; ok {
			e.Images = append(e.Images, img)
		}
	}

	return nil
}

// buildEventImages turns inputs into rows for eventID. A missing order falls
// back to the input's position; a missing thumb reuses src.
func buildEventImages(eventID string, inputs []*types.EventImageInput, now time.Time) []*types.EventImage {
	images := make([]*types.EventImage, 0, len(inputs))
	for i, in := range inputs {
		if in == nil {
			continue
		}

		order := i
		if in.Order != nil {
			order = *in.Order
		}

		thumb := utils.TrimPtr(in.Thumb)
		if thumb == nil {
			thumb = utils.StringPtr(in.Src)
		}

		images = append(images, &types.EventImage{
			ID:        utils.NanoID(),
			EventID:   eventID,
			Src:       in.Src,
			Thumb:     thumb,
			Caption:   utils.TrimPtr(in.Caption),
			Order:     order,
			CreatedAt: now,
		})
	}
	return images
}

func insertImages(ctx context.Context, tx pgx.Tx, images []*types.EventImage) error {
	if len(images) == 0 {
		return nil
	}

	insert := psql().Insert(eventImageTableName).Columns(eventImageColumns...)
	for _, img := range images {
		insert = insert.Values(img.ID, img.EventID, img.Src, img.Thumb, img.Caption, img.Order, img.CreatedAt)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert event images query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert event images: %w", err)
	}

	return nil
}

func deleteImages(ctx context.Context, tx pgx.Tx, eventID string) ([]*types.EventImage, error) {
	query, args, err := psql().Delete(eventImageTableName).
		Where(sq.Eq{"event_id": eventID}).
		Suffix("RETURNING " + strings.Join(eventImageColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate delete event images query: %w", err)
	}

	var removed = make([]*types.EventImage, 0)
	if err := pgxscan.Select(ctx, tx, &removed, query, args...); err != nil {
		return nil, fmt.Errorf("failed to delete event images: %w", err)
	}

	return removed, nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, input *types.CreateEventInput) (*types.Event, error) {

	now := time.Now()
	event := &types.Event{
		ID:          utils.NanoID(),
		Title:       strings.TrimSpace(input.Title),
		Description: utils.TrimPtr(input.Description),
		Date:        input.Date,
		Location:    utils.TrimPtr(input.Location),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin create event transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query, args, err := psql().Insert(eventTableName).SetMap(utils.StructToMap(event)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert event query: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, translateError(err, "failed to insert event", nil)
	}

	event.Images = buildEventImages(event.ID, input.Images, now)
	if err := insertImages(ctx, tx, event.Images); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit create event: %w", err)
	}

	return event, nil
}

// UpdateEvent applies a patch and, when patch.Images is set, replaces the
// gallery. Images dropped from the gallery are returned so their files can be
// removed from storage.
func (r *EventRepository) UpdateEvent(ctx context.Context, eventID string, patch *types.EventPatch) (*types.Event, []*types.EventImage, error) {

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin update event transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	fields := utils.PatchToMap(patch)
	fields["updated_at"] = now

	query, args, err := psql().Update(eventTableName).
		SetMap(fields).
		Where(sq.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate update event query: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "failed to update event", nil)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil, types.ErrEventNotFound
	}

	var dropped []*types.EventImage
	if patch != nil && patch.Images != nil {
		removed, err := deleteImages(ctx, tx, eventID)
		if err != nil {
			return nil, nil, err
		}

		images := buildEventImages(eventID, patch.Images, now)
		if err := insertImages(ctx, tx, images); err != nil {
			return nil, nil, err
		}

		dropped = droppedImages(removed, images)
	}

	event, err := eventByID(ctx, tx, eventID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit update event: %w", err)
	}

	return event, dropped, nil
}

// droppedImages returns the removed rows whose src is not reused by kept.
func droppedImages(removed, kept []*types.EventImage) []*types.EventImage {
	inUse := make(map[string]struct{}, len(kept))
	for _, img := range kept {
		inUse[img.Src] = struct{}{}
	}

	out := make([]*types.EventImage, 0)
	for _, img := range removed {
		if _, ok := inUse[img.Src]; !ok {
			out = append(out, img)
		}
	}
	return out
}

// DeleteEvent removes an event and its images, returning the image rows.
func (r *EventRepository) DeleteEvent(ctx context.Context, eventID string) ([]*types.EventImage, error) {

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("failed to begin delete event transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	removed, err := deleteImages(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}

	query, args, err := psql().Delete(eventTableName).Where(sq.Eq{"id": eventID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate delete event query: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to delete event", nil)
	}
	if tag.RowsAffected() == 0 {
		return nil, types.ErrEventNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit delete event: %w", err)
	}

	return removed, nil
}
