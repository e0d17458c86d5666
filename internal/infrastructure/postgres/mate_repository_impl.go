package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/internal/domain/repository"
)

type MateRepository struct {
	pool *pgxpool.Pool
}

func NewMateRepository(pool *pgxpool.Pool) *MateRepository {
	return &MateRepository{pool: pool}
}

const mateSelect = `
	SELECT m.id, m.shop_id, m.name, m.breed_id, b.name, m.gender, m.color, m.age_months,
	       m.mate_cost, m.description,
	       m.is_approved, m.approved_at, m.rejected_at, COALESCE(m.rejection_reason, ''),
	       m.created_at, m.updated_at,
	       COALESCE(AVG(r.rating) FILTER (WHERE r.is_approved), 0),
	       COUNT(r.id) FILTER (WHERE r.is_approved)
	FROM mates m
	JOIN breeds b ON b.id = m.breed_id
	LEFT JOIN mate_reviews r ON r.mate_id = m.id`

const mateGroupBy = ` GROUP BY m.id, b.name`

func scanMate(row interface{ Scan(...any) error }) (*entity.Mate, error) {
	m := &entity.Mate{}
	if err := row.Scan(&m.ID, &m.ShopID, &m.Name, &m.BreedID, &m.BreedName, &m.Gender, &m.Color,
		&m.AgeMonths, &m.MateCost, &m.Description,
		&m.IsApproved, &m.ApprovedAt, &m.RejectedAt, &m.RejectionReason,
		&m.CreatedAt, &m.UpdatedAt, &m.Rating, &m.Reviews); err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *MateRepository) Create(ctx context.Context, m *entity.Mate, images []entity.ListingImage, videos []entity.ListingVideo) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO mates (shop_id, name, breed_id, gender, color, age_months, mate_cost, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, m.ShopID, m.Name, m.BreedID, m.Gender, m.Color, m.AgeMonths, m.MateCost, m.Description)
	if err := row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return translate(err)
	}

	for i := range images {
		img := &images[i]
		img.ListingID = m.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO mate_images (mate_id, url, alt_text, is_primary)
			VALUES ($1, $2, NULLIF($3, ''), $4)
			RETURNING id, uploaded_at
		`, m.ID, img.URL, img.AltText, img.IsPrimary).Scan(&img.ID, &img.UploadedAt); err != nil {
			return translate(err)
		}
	}
	for i := range videos {
		vid := &videos[i]
		vid.ListingID = m.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO mate_videos (mate_id, url, file_size)
			VALUES ($1, $2, $3)
			RETURNING id, uploaded_at
		`, m.ID, vid.URL, vid.FileSize).Scan(&vid.ID, &vid.UploadedAt); err != nil {
			return translate(err)
		}
	}

	m.Images = images
	m.Videos = videos
	return translate(tx.Commit(ctx))
}

func (r *MateRepository) GetByID(ctx context.Context, id string) (*entity.Mate, error) {
	m, err := scanMate(r.pool.QueryRow(ctx, mateSelect+`
		WHERE m.id = $1`+mateGroupBy, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadMedia(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MateRepository) GetApproved(ctx context.Context, id string) (*entity.Mate, error) {
	m, err := scanMate(r.pool.QueryRow(ctx, mateSelect+`
		WHERE m.id = $1 AND m.is_approved = TRUE`+mateGroupBy, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadMedia(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MateRepository) ListApproved(ctx context.Context) ([]entity.Mate, error) {
	rows, err := r.pool.Query(ctx, mateSelect+`
		WHERE m.is_approved = TRUE`+mateGroupBy+`
		ORDER BY m.created_at DESC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []entity.Mate
	var ids []string
	for rows.Next() {
		m, err := scanMate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	imgs, err := r.imagesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Images = imgs[out[i].ID]
	}
	return out, nil
}

func (r *MateRepository) imagesFor(ctx context.Context, ids []string) (map[string][]entity.ListingImage, error) {
	out := make(map[string][]entity.ListingImage, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, mate_id, url, COALESCE(alt_text, ''), is_primary, uploaded_at
		FROM mate_images
		WHERE mate_id = ANY($1)
		ORDER BY is_primary DESC, uploaded_at
	`, ids)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var img entity.ListingImage
		if err := rows.Scan(&img.ID, &img.ListingID, &img.URL, &img.AltText, &img.IsPrimary, &img.UploadedAt); err != nil {
			return nil, translate(err)
		}
		out[img.ListingID] = append(out[img.ListingID], img)
	}
	return out, translate(rows.Err())
}

func (r *MateRepository) loadMedia(ctx context.Context, m *entity.Mate) error {
	imgs, err := r.imagesFor(ctx, []string{m.ID})
	if err != nil {
		return err
	}
	m.Images = imgs[m.ID]

	rows, err := r.pool.Query(ctx, `
		SELECT id, mate_id, url, COALESCE(file_size, 0), uploaded_at
		FROM mate_videos
		WHERE mate_id = $1
		ORDER BY uploaded_at
	`, m.ID)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var v entity.ListingVideo
		if err := rows.Scan(&v.ID, &v.ListingID, &v.URL, &v.FileSize, &v.UploadedAt); err != nil {
			return translate(err)
		}
		m.Videos = append(m.Videos, v)
	}
	return translate(rows.Err())
}

func (r *MateRepository) SetPrimaryImage(ctx context.Context, mateID, imageID string) error {
	return setPrimaryImage(ctx, r.pool, "mate_images", "mate_id", mateID, imageID)
}

func (r *MateRepository) CountApproved(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mates WHERE is_approved = TRUE`).Scan(&n)
	return n, translate(err)
}

var _ repository.MateRepository = (*MateRepository)(nil)
