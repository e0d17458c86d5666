package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/internal/domain/repository"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// reviewTable maps a subject kind onto its table and fk column. The three
// review tables are structurally identical apart from the subject column.
func reviewTable(subject entity.ReviewSubject) (table, fkCol string, err error) {
	switch subject {
	case entity.ReviewOfProduct:
		return "product_reviews", "product_id", nil
	case entity.ReviewOfShop:
		return "shop_reviews", "shop_id", nil
	case entity.ReviewOfMate:
		return "mate_reviews", "mate_id", nil
	}
	return "", "", fmt.Errorf("unknown review subject %q", subject)
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	table, fkCol, err := reviewTable(rv.Subject)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO `+table+` (`+fkCol+`, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, rv.SubjectID, rv.UserID, rv.Rating, rv.Comment)
	return translate(row.Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt))
}

func (r *ReviewRepository) ListApproved(ctx context.Context, subject entity.ReviewSubject, subjectID string) ([]entity.Review, error) {
	table, fkCol, err := reviewTable(subject)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT rv.id, rv.`+fkCol+`, rv.user_id, u.first_name || ' ' || u.last_name,
		       rv.rating, rv.comment, rv.is_approved, rv.created_at, rv.updated_at
		FROM `+table+` rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.`+fkCol+` = $1 AND rv.is_approved = TRUE
		ORDER BY rv.created_at DESC
	`, subjectID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []entity.Review
	for rows.Next() {
		rv := entity.Review{Subject: subject}
		if err := rows.Scan(&rv.ID, &rv.SubjectID, &rv.UserID, &rv.UserName,
			&rv.Rating, &rv.Comment, &rv.IsApproved, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, rv)
	}
	return out, translate(rows.Err())
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)

type TaxonomyRepository struct {
	pool *pgxpool.Pool
}

func NewTaxonomyRepository(pool *pgxpool.Pool) *TaxonomyRepository {
	return &TaxonomyRepository{pool: pool}
}

func (r *TaxonomyRepository) ListActiveCategories(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, is_active, created_at
		FROM categories
		WHERE is_active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, c)
	}
	return out, translate(rows.Err())
}

func (r *TaxonomyRepository) ListActiveBreeds(ctx context.Context) ([]entity.Breed, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, is_active, created_at, updated_at
		FROM breeds
		WHERE is_active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []entity.Breed
	for rows.Next() {
		var b entity.Breed
		if err := rows.Scan(&b.ID, &b.Name, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, b)
	}
	return out, translate(rows.Err())
}

func (r *TaxonomyRepository) GetActiveBreed(ctx context.Context, id string) (*entity.Breed, error) {
	b := &entity.Breed{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, is_active, created_at, updated_at
		FROM breeds
		WHERE id = $1 AND is_active = TRUE
	`, id)
	if err := row.Scan(&b.ID, &b.Name, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return b, nil
}

func (r *TaxonomyRepository) FilterActiveCategoryIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text FROM categories WHERE id::text = ANY($1) AND is_active = TRUE
	`, ids)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translate(err)
		}
		out = append(out, id)
	}
	return out, translate(rows.Err())
}

var _ repository.TaxonomyRepository = (*TaxonomyRepository)(nil)
