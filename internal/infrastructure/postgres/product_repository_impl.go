package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mewzone/mewzone/internal/domain/entity"
	"github.com/mewzone/mewzone/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productSelect = `
	SELECT p.id, p.shop_id, p.name, p.breed_id, b.name, p.gender, p.color, p.eye_color, p.fur_type,
	       p.date_of_birth, p.location, p.ready_to_go, p.available_for_pickup, p.available_for_delivery,
	       COALESCE(p.additional_notes, ''), p.price, p.discount_percentage, p.description,
	       p.is_approved, p.approved_at, p.rejected_at, COALESCE(p.rejection_reason, ''),
	       p.created_at, p.updated_at,
	       COALESCE(AVG(r.rating) FILTER (WHERE r.is_approved), 0),
	       COUNT(r.id) FILTER (WHERE r.is_approved)
	FROM products p
	JOIN breeds b ON b.id = p.breed_id
	LEFT JOIN product_reviews r ON r.product_id = p.id`

const productGroupBy = ` GROUP BY p.id, b.name`

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	p := &entity.Product{}
	if err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.BreedID, &p.BreedName, &p.Gender, &p.Color,
		&p.EyeColor, &p.FurType, &p.DateOfBirth, &p.Location, &p.ReadyToGo,
		&p.AvailableForPickup, &p.AvailableForDelivery, &p.AdditionalNotes,
		&p.Price, &p.DiscountPercentage, &p.Description,
		&p.IsApproved, &p.ApprovedAt, &p.RejectedAt, &p.RejectionReason,
		&p.CreatedAt, &p.UpdatedAt, &p.Rating, &p.Reviews); err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product, images []entity.ListingImage, videos []entity.ListingVideo, categoryIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return translate(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO products
			(shop_id, name, breed_id, gender, color, eye_color, fur_type, date_of_birth,
			 location, ready_to_go, available_for_pickup, available_for_delivery,
			 additional_notes, price, discount_percentage, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16)
		RETURNING id, created_at, updated_at
	`, p.ShopID, p.Name, p.BreedID, p.Gender, p.Color, p.EyeColor, p.FurType, p.DateOfBirth,
		p.Location, p.ReadyToGo, p.AvailableForPickup, p.AvailableForDelivery,
		p.AdditionalNotes, p.Price, p.DiscountPercentage, p.Description)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return translate(err)
	}

	for i := range images {
		img := &images[i]
		img.ListingID = p.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO product_images (product_id, url, alt_text, is_primary)
			VALUES ($1, $2, NULLIF($3, ''), $4)
			RETURNING id, uploaded_at
		`, p.ID, img.URL, img.AltText, img.IsPrimary).Scan(&img.ID, &img.UploadedAt); err != nil {
			return translate(err)
		}
	}
	for i := range videos {
		vid := &videos[i]
		vid.ListingID = p.ID
		if err := tx.QueryRow(ctx, `
			INSERT INTO product_videos (product_id, url, file_size)
			VALUES ($1, $2, $3)
			RETURNING id, uploaded_at
		`, p.ID, vid.URL, vid.FileSize).Scan(&vid.ID, &vid.UploadedAt); err != nil {
			return translate(err)
		}
	}
	for _, cid := range categoryIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO product_categories (product_id, category_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, p.ID, cid); err != nil {
			return translate(err)
		}
	}

	p.Images = images
	p.Videos = videos
	return translate(tx.Commit(ctx))
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, productSelect+`
		WHERE p.id = $1`+productGroupBy, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadMedia(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) GetApproved(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, productSelect+`
		WHERE p.id = $1 AND p.is_approved = TRUE`+productGroupBy, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadMedia(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) loadMedia(ctx context.Context, p *entity.Product) error {
	imgs, err := r.imagesFor(ctx, []string{p.ID})
	if err != nil {
		return err
	}
	p.Images = imgs[p.ID]

	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, url, COALESCE(file_size, 0), uploaded_at
		FROM product_videos
		WHERE product_id = $1
		ORDER BY uploaded_at
	`, p.ID)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()
	for rows.Next() {
		var v entity.ListingVideo
		if err := rows.Scan(&v.ID, &v.ListingID, &v.URL, &v.FileSize, &v.UploadedAt); err != nil {
			return translate(err)
		}
		p.Videos = append(p.Videos, v)
	}
	return translate(rows.Err())
}

// imagesFor fetches images for a batch of product ids, primary first.
func (r *ProductRepository) imagesFor(ctx context.Context, ids []string) (map[string][]entity.ListingImage, error) {
	out := make(map[string][]entity.ListingImage, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, url, COALESCE(alt_text, ''), is_primary, uploaded_at
		FROM product_images
		WHERE product_id = ANY($1)
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

func (r *ProductRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []entity.Product
	var ids []string
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
		ids = append(ids, p.ID)
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

func (r *ProductRepository) ListApproved(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	conds := []string{"p.is_approved = TRUE"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Name != "" {
		conds = append(conds, "p.name ILIKE "+arg("%"+f.Name+"%"))
	}
	if len(f.Breeds) > 0 {
		// Entries may be ids or names; either matches.
		ph := arg(f.Breeds)
		conds = append(conds, "(b.name = ANY("+ph+") OR p.breed_id::text = ANY("+ph+"))")
	}
	if f.MinPrice != nil {
		conds = append(conds, "p.price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "p.price <= "+arg(*f.MaxPrice))
	}
	if len(f.Genders) > 0 {
		genders := make([]string, 0, len(f.Genders))
		for _, g := range f.Genders {
			genders = append(genders, string(g))
		}
		conds = append(conds, "p.gender = ANY("+arg(genders)+")")
	}
	if len(f.Colors) > 0 {
		conds = append(conds, "p.color = ANY("+arg(f.Colors)+")")
	}

	sql := productSelect + "\n\tWHERE " + strings.Join(conds, " AND ") + productGroupBy +
		"\n\tORDER BY p.created_at DESC"
	if f.Limit > 0 {
		sql += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		sql += " OFFSET " + arg(f.Offset)
	}
	return r.queryProducts(ctx, sql, args...)
}

// BestSellers: rating desc, then review count desc, then recency desc.
// Unrated products aggregate to 0 and sort last.
func (r *ProductRepository) BestSellers(ctx context.Context, limit int) ([]entity.Product, error) {
	sql := productSelect + `
	WHERE p.is_approved = TRUE` + productGroupBy + `
	ORDER BY COALESCE(AVG(r.rating) FILTER (WHERE r.is_approved), 0) DESC,
	         COUNT(r.id) FILTER (WHERE r.is_approved) DESC,
	         p.created_at DESC
	LIMIT $1`
	return r.queryProducts(ctx, sql, limit)
}

func (r *ProductRepository) ListApprovedByShop(ctx context.Context, shopID string) ([]entity.Product, error) {
	sql := productSelect + `
	WHERE p.is_approved = TRUE AND p.shop_id = $1` + productGroupBy + `
	ORDER BY p.created_at DESC`
	return r.queryProducts(ctx, sql, shopID)
}

func (r *ProductRepository) Facets(ctx context.Context) (*repository.ProductFacets, error) {
	facets := &repository.ProductFacets{}

	collect := func(sql string, dst *[]repository.FacetCount) error {
		rows, err := r.pool.Query(ctx, sql)
		if err != nil {
			return translate(err)
		}
		defer rows.Close()
		for rows.Next() {
			var fc repository.FacetCount
			if err := rows.Scan(&fc.Key, &fc.Label, &fc.Count); err != nil {
				return translate(err)
			}
			*dst = append(*dst, fc)
		}
		return translate(rows.Err())
	}

	if err := collect(`
		SELECT color, color, COUNT(*) FROM products
		WHERE is_approved = TRUE GROUP BY color ORDER BY color
	`, &facets.Colors); err != nil {
		return nil, err
	}
	if err := collect(`
		SELECT b.id::text, b.name, COUNT(*) FROM products p
		JOIN breeds b ON b.id = p.breed_id
		WHERE p.is_approved = TRUE GROUP BY b.id, b.name ORDER BY b.name
	`, &facets.Breeds); err != nil {
		return nil, err
	}
	if err := collect(`
		SELECT gender, gender, COUNT(*) FROM products
		WHERE is_approved = TRUE GROUP BY gender ORDER BY gender
	`, &facets.Genders); err != nil {
		return nil, err
	}
	return facets, nil
}

// SetPrimaryImage clears the previous primary and marks imageID inside one
// transaction so a concurrent request cannot leave two primaries.
func (r *ProductRepository) SetPrimaryImage(ctx context.Context, productID, imageID string) error {
	return setPrimaryImage(ctx, r.pool, "product_images", "product_id", productID, imageID)
}

func (r *ProductRepository) CountApproved(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_approved = TRUE`).Scan(&n)
	return n, translate(err)
}

// setPrimaryImage is shared by product and mate repositories; the image must
// belong to the listing or the whole operation fails with ErrNotFound.
func setPrimaryImage(ctx context.Context, pool *pgxpool.Pool, table, fkCol, listingID, imageID string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return translate(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var owner string
	err = tx.QueryRow(ctx,
		`SELECT `+fkCol+` FROM `+table+` WHERE id = $1 FOR UPDATE`, imageID).Scan(&owner)
	if err != nil {
		return translate(err)
	}
	if owner != listingID {
		return repository.ErrNotFound
	}
	if _, err := tx.Exec(ctx,
		`UPDATE `+table+` SET is_primary = FALSE WHERE `+fkCol+` = $1 AND is_primary = TRUE`, listingID); err != nil {
		return translate(err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE `+table+` SET is_primary = TRUE WHERE id = $1`, imageID); err != nil {
		return translate(err)
	}
	return translate(tx.Commit(ctx))
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
