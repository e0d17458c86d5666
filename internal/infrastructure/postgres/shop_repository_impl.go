package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/internal/domain/repository"
)

type ShopRepository struct {
	pool *pgxpool.Pool
}

func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{pool: pool}
}

const shopColumns = `id, seller_id, shop_name, description, COALESCE(profile_picture, ''),
	location, address, city, state, country, postal_code,
	COALESCE(facebook_page, ''), COALESCE(instagram_handle, ''), COALESCE(twitter_handle, ''),
	is_approved, approved_at, created_at, updated_at`

func scanShop(row interface{ Scan(...any) error }) (*entity.SellerShop, error) {
	s := &entity.SellerShop{}
	if err := row.Scan(&s.ID, &s.SellerID, &s.ShopName, &s.Description, &s.ProfilePicture,
		&s.Location, &s.Address, &s.City, &s.State, &s.Country, &s.PostalCode,
		&s.FacebookPage, &s.InstagramHandle, &s.TwitterHandle,
		&s.IsApproved, &s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return s, nil
}

func (r *ShopRepository) Create(ctx context.Context, s *entity.SellerShop) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO seller_shops
			(seller_id, shop_name, description, profile_picture, location, address,
			 city, state, country, postal_code, facebook_page, instagram_handle, twitter_handle)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''))
		RETURNING id, created_at, updated_at
	`, s.SellerID, s.ShopName, s.Description, s.ProfilePicture, s.Location, s.Address,
		s.City, s.State, s.Country, s.PostalCode, s.FacebookPage, s.InstagramHandle, s.TwitterHandle)

	return translate(row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*entity.SellerShop, error) {
	return scanShop(r.pool.QueryRow(ctx, `
		SELECT `+shopColumns+` FROM seller_shops WHERE id = $1
	`, id))
}

func (r *ShopRepository) GetBySellerID(ctx context.Context, sellerID string) (*entity.SellerShop, error) {
	return scanShop(r.pool.QueryRow(ctx, `
		SELECT `+shopColumns+` FROM seller_shops WHERE seller_id = $1
	`, sellerID))
}

const shopSummaryQuery = `
	SELECT s.id, s.seller_id, s.shop_name, s.description, COALESCE(s.profile_picture, ''),
	       s.location, s.address, s.city, s.state, s.country, s.postal_code,
	       COALESCE(s.facebook_page, ''), COALESCE(s.instagram_handle, ''), COALESCE(s.twitter_handle, ''),
	       s.is_approved, s.approved_at, s.created_at, s.updated_at,
	       COALESCE(AVG(r.rating) FILTER (WHERE r.is_approved), 0),
	       COUNT(r.id) FILTER (WHERE r.is_approved)
	FROM seller_shops s
	LEFT JOIN shop_reviews r ON r.shop_id = s.id
	WHERE s.is_approved = TRUE`

func scanShopSummary(row interface{ Scan(...any) error }) (*repository.ShopSummary, error) {
	s := &repository.ShopSummary{}
	if err := row.Scan(&s.ID, &s.SellerID, &s.ShopName, &s.Description, &s.ProfilePicture,
		&s.Location, &s.Address, &s.City, &s.State, &s.Country, &s.PostalCode,
		&s.FacebookPage, &s.InstagramHandle, &s.TwitterHandle,
		&s.IsApproved, &s.ApprovedAt, &s.CreatedAt, &s.UpdatedAt,
		&s.Rating, &s.Reviews); err != nil {
		return nil, translate(err)
	}
	return s, nil
}

func (r *ShopRepository) GetApproved(ctx context.Context, id string) (*repository.ShopSummary, error) {
	return scanShopSummary(r.pool.QueryRow(ctx, shopSummaryQuery+`
		AND s.id = $1
		GROUP BY s.id
	`, id))
}

func (r *ShopRepository) ListApproved(ctx context.Context) ([]repository.ShopSummary, error) {
	rows, err := r.pool.Query(ctx, shopSummaryQuery+`
		GROUP BY s.id
		ORDER BY s.created_at DESC
	`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []repository.ShopSummary
	for rows.Next() {
		s, err := scanShopSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, translate(rows.Err())
}

// Update never touches is_approved or approved_at; shop edits do not reset
// the approval state.
func (r *ShopRepository) Update(ctx context.Context, s *entity.SellerShop) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE seller_shops
		SET shop_name = $1, description = $2, profile_picture = NULLIF($3, ''),
		    location = $4, address = $5, city = $6, state = $7, country = $8, postal_code = $9,
		    facebook_page = NULLIF($10, ''), instagram_handle = NULLIF($11, ''), twitter_handle = NULLIF($12, ''),
		    updated_at = now()
		WHERE id = $13
	`, s.ShopName, s.Description, s.ProfilePicture, s.Location, s.Address,
		s.City, s.State, s.Country, s.PostalCode,
		s.FacebookPage, s.InstagramHandle, s.TwitterHandle, s.ID)
	if err != nil {
		return translate(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ShopRepository = (*ShopRepository)(nil)
