package application

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/mewzone/mewzone/internal/domain/entity"
	repo "github.com/mewzone/mewzone/internal/domain/repository"
)

// Hand-written stubs for the repository and store interfaces. Each test
// seeds only the maps it needs.

type stubUsers struct {
	byEmail  map[string]*entity.User
	byID     map[string]*entity.User
	created  []*entity.User
	verified []string
	pwByID   map[string]string
	nextID   int
}

func newStubUsers() *stubUsers {
	return &stubUsers{
		byEmail: map[string]*entity.User{},
		byID:    map[string]*entity.User{},
		pwByID:  map[string]string{},
	}
}

func (s *stubUsers) add(u *entity.User) *entity.User {
	s.byEmail[u.Email] = u
	s.byID[u.ID] = u
	return u
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	if _, dup := s.byEmail[u.Email]; dup {
		return repo.ErrDuplicate
	}
	s.nextID++
	u.ID = "user-" + strconv.Itoa(s.nextID)
	u.CreatedAt = time.Now()
	s.created = append(s.created, u)
	s.add(u)
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) SetVerified(_ context.Context, id string) error {
	u, ok := s.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsVerified = true
	s.verified = append(s.verified, id)
	return nil
}

func (s *stubUsers) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := s.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Password = hash
	s.pwByID[id] = hash
	return nil
}

type stubOTPs struct {
	created []*entity.OTPVerification
	now     func() time.Time
}

func newStubOTPs() *stubOTPs {
	return &stubOTPs{now: time.Now}
}

func (s *stubOTPs) Create(_ context.Context, v *entity.OTPVerification) error {
	v.ID = "otp-" + strconv.Itoa(len(s.created)+1)
	v.CreatedAt = s.now()
	s.created = append(s.created, v)
	return nil
}

func (s *stubOTPs) Consume(_ context.Context, code string, vt entity.VerificationType) (*entity.OTPVerification, error) {
	// newest-first, matching the SQL implementation
	for i := len(s.created) - 1; i >= 0; i-- {
		v := s.created[i]
		if v.OTPCode == code && v.VerificationType == vt && !v.IsUsed && v.ExpiresAt.After(s.now()) {
			v.IsUsed = true
			return v, nil
		}
	}
	return nil, repo.ErrNotFound
}

type stubShops struct {
	bySeller map[string]*entity.SellerShop
	byID     map[string]*entity.SellerShop
	approved map[string]*repo.ShopSummary
	updated  []*entity.SellerShop
}

func newStubShops() *stubShops {
	return &stubShops{
		bySeller: map[string]*entity.SellerShop{},
		byID:     map[string]*entity.SellerShop{},
		approved: map[string]*repo.ShopSummary{},
	}
}

func (s *stubShops) add(shop *entity.SellerShop) *entity.SellerShop {
	s.bySeller[shop.SellerID] = shop
	s.byID[shop.ID] = shop
	if shop.IsApproved {
		s.approved[shop.ID] = &repo.ShopSummary{SellerShop: *shop}
	}
	return shop
}

func (s *stubShops) Create(_ context.Context, shop *entity.SellerShop) error {
	if _, dup := s.bySeller[shop.SellerID]; dup {
		return repo.ErrDuplicate
	}
	shop.ID = "shop-" + strconv.Itoa(len(s.byID)+1)
	s.add(shop)
	return nil
}

func (s *stubShops) GetByID(_ context.Context, id string) (*entity.SellerShop, error) {
	shop, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return shop, nil
}

func (s *stubShops) GetBySellerID(_ context.Context, sellerID string) (*entity.SellerShop, error) {
	shop, ok := s.bySeller[sellerID]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return shop, nil
}

func (s *stubShops) GetApproved(_ context.Context, id string) (*repo.ShopSummary, error) {
	sum, ok := s.approved[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return sum, nil
}

func (s *stubShops) ListApproved(_ context.Context) ([]repo.ShopSummary, error) {
	out := make([]repo.ShopSummary, 0, len(s.approved))
	for _, sum := range s.approved {
		out = append(out, *sum)
	}
	return out, nil
}

func (s *stubShops) Update(_ context.Context, shop *entity.SellerShop) error {
	s.updated = append(s.updated, shop)
	return nil
}

type stubProducts struct {
	byID        map[string]*entity.Product
	approved    map[string]*entity.Product
	created     []*entity.Product
	lastImages  []entity.ListingImage
	lastVideos  []entity.ListingVideo
	lastCats    []string
	listCalls   []repo.ProductFilter
	listResult  []entity.Product
	bestResult  []entity.Product
	primarySet  [][2]string
	primaryErr  error
	facetResult *repo.ProductFacets
}

func newStubProducts() *stubProducts {
	return &stubProducts{
		byID:        map[string]*entity.Product{},
		approved:    map[string]*entity.Product{},
		facetResult: &repo.ProductFacets{},
	}
}

func (s *stubProducts) add(p *entity.Product) *entity.Product {
	s.byID[p.ID] = p
	if p.IsApproved {
		s.approved[p.ID] = p
	}
	return p
}

func (s *stubProducts) Create(_ context.Context, p *entity.Product, images []entity.ListingImage, videos []entity.ListingVideo, categoryIDs []string) error {
	p.ID = "product-" + strconv.Itoa(len(s.byID)+1)
	p.Images = images
	p.Videos = videos
	s.created = append(s.created, p)
	s.lastImages = images
	s.lastVideos = videos
	s.lastCats = categoryIDs
	s.add(p)
	return nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (s *stubProducts) GetApproved(_ context.Context, id string) (*entity.Product, error) {
	p, ok := s.approved[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return p, nil
}

func (s *stubProducts) ListApproved(_ context.Context, f repo.ProductFilter) ([]entity.Product, error) {
	s.listCalls = append(s.listCalls, f)
	return s.listResult, nil
}

func (s *stubProducts) BestSellers(_ context.Context, limit int) ([]entity.Product, error) {
	if limit < len(s.bestResult) {
		return s.bestResult[:limit], nil
	}
	return s.bestResult, nil
}

func (s *stubProducts) ListApprovedByShop(_ context.Context, shopID string) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range s.approved {
		if p.ShopID == shopID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProducts) Facets(_ context.Context) (*repo.ProductFacets, error) {
	return s.facetResult, nil
}

func (s *stubProducts) SetPrimaryImage(_ context.Context, productID, imageID string) error {
	if s.primaryErr != nil {
		return s.primaryErr
	}
	s.primarySet = append(s.primarySet, [2]string{productID, imageID})
	return nil
}

func (s *stubProducts) CountApproved(_ context.Context) (int, error) {
	return len(s.approved), nil
}

type stubMates struct {
	byID       map[string]*entity.Mate
	approved   map[string]*entity.Mate
	created    []*entity.Mate
	primarySet [][2]string
}

func newStubMates() *stubMates {
	return &stubMates{byID: map[string]*entity.Mate{}, approved: map[string]*entity.Mate{}}
}

func (s *stubMates) add(m *entity.Mate) *entity.Mate {
	s.byID[m.ID] = m
	if m.IsApproved {
		s.approved[m.ID] = m
	}
	return m
}

func (s *stubMates) Create(_ context.Context, m *entity.Mate, images []entity.ListingImage, videos []entity.ListingVideo) error {
	m.ID = "mate-" + strconv.Itoa(len(s.byID)+1)
	m.Images = images
	m.Videos = videos
	s.created = append(s.created, m)
	s.add(m)
	return nil
}

func (s *stubMates) GetByID(_ context.Context, id string) (*entity.Mate, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return m, nil
}

func (s *stubMates) GetApproved(_ context.Context, id string) (*entity.Mate, error) {
	m, ok := s.approved[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return m, nil
}

func (s *stubMates) ListApproved(_ context.Context) ([]entity.Mate, error) {
	var out []entity.Mate
	for _, m := range s.approved {
		out = append(out, *m)
	}
	return out, nil
}

func (s *stubMates) SetPrimaryImage(_ context.Context, mateID, imageID string) error {
	s.primarySet = append(s.primarySet, [2]string{mateID, imageID})
	return nil
}

func (s *stubMates) CountApproved(_ context.Context) (int, error) {
	return len(s.approved), nil
}

type stubReviews struct {
	created  []*entity.Review
	approved map[string][]entity.Review // subject+":"+subjectID
	dupKeys  map[string]bool            // subject+":"+subjectID+":"+userID
}

func newStubReviews() *stubReviews {
	return &stubReviews{approved: map[string][]entity.Review{}, dupKeys: map[string]bool{}}
}

func (s *stubReviews) Create(_ context.Context, r *entity.Review) error {
	key := string(r.Subject) + ":" + r.SubjectID + ":" + r.UserID
	if s.dupKeys[key] {
		return repo.ErrDuplicate
	}
	s.dupKeys[key] = true
	r.ID = "review-" + strconv.Itoa(len(s.created)+1)
	s.created = append(s.created, r)
	return nil
}

func (s *stubReviews) ListApproved(_ context.Context, subject entity.ReviewSubject, subjectID string) ([]entity.Review, error) {
	return s.approved[string(subject)+":"+subjectID], nil
}

type stubTaxonomy struct {
	breeds     map[string]*entity.Breed
	categories map[string]bool
}

func newStubTaxonomy() *stubTaxonomy {
	return &stubTaxonomy{breeds: map[string]*entity.Breed{}, categories: map[string]bool{}}
}

func (s *stubTaxonomy) ListActiveCategories(_ context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for id := range s.categories {
		out = append(out, entity.Category{ID: id})
	}
	return out, nil
}

func (s *stubTaxonomy) ListActiveBreeds(_ context.Context) ([]entity.Breed, error) {
	var out []entity.Breed
	for _, b := range s.breeds {
		out = append(out, *b)
	}
	return out, nil
}

func (s *stubTaxonomy) GetActiveBreed(_ context.Context, id string) (*entity.Breed, error) {
	b, ok := s.breeds[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return b, nil
}

func (s *stubTaxonomy) FilterActiveCategoryIDs(_ context.Context, ids []string) ([]string, error) {
	var out []string
	for _, id := range ids {
		if s.categories[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

type approvalCall struct {
	entity  string
	id      string
	adminID string
	approve bool
	reason  string
}

type stubApprovals struct {
	calls []approvalCall
	err   error
	logs  []entity.AdminApprovalLog
}

func (s *stubApprovals) SetShopApproval(_ context.Context, shopID, adminID string, approve bool, reason string) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, approvalCall{"SHOP", shopID, adminID, approve, reason})
	return nil
}

func (s *stubApprovals) SetProductApproval(_ context.Context, productID, adminID string, approve bool, reason string) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, approvalCall{"PRODUCT", productID, adminID, approve, reason})
	return nil
}

func (s *stubApprovals) SetMateApproval(_ context.Context, mateID, adminID string, approve bool, reason string) error {
	if s.err != nil {
		return s.err
	}
	s.calls = append(s.calls, approvalCall{"MATE", mateID, adminID, approve, reason})
	return nil
}

func (s *stubApprovals) Logs(_ context.Context, limit int) ([]entity.AdminApprovalLog, error) {
	if limit < len(s.logs) {
		return s.logs[:limit], nil
	}
	return s.logs, nil
}

// stubRegStore is an in-memory RegistrationStore.
type stubRegStore struct {
	markers map[string]string
}

func newStubRegStore() *stubRegStore {
	return &stubRegStore{markers: map[string]string{}}
}

func (s *stubRegStore) SetPendingRegistration(_ context.Context, sessionID, email string, _ time.Duration) error {
	s.markers[sessionID] = email
	return nil
}

func (s *stubRegStore) PendingRegistration(_ context.Context, sessionID string) (string, error) {
	return s.markers[sessionID], nil
}

func (s *stubRegStore) ClearPendingRegistration(_ context.Context, sessionID string) error {
	delete(s.markers, sessionID)
	return nil
}

// stubCartStore is an in-memory CartStore.
type stubCartStore struct {
	carts map[string]map[string]int64
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: map[string]map[string]int64{}}
}

func (s *stubCartStore) AddToCart(_ context.Context, cartID, listingID string, qty int64) error {
	if s.carts[cartID] == nil {
		s.carts[cartID] = map[string]int64{}
	}
	s.carts[cartID][listingID] += qty
	return nil
}

func (s *stubCartStore) CartItems(_ context.Context, cartID string) (map[string]int64, error) {
	return s.carts[cartID], nil
}

func (s *stubCartStore) ClearCart(_ context.Context, cartID string) error {
	delete(s.carts, cartID)
	return nil
}

// stubPublisher records published email jobs; fails when failWith is set.
type stubPublisher struct {
	jobs     []map[string]any
	failWith error
}

func (s *stubPublisher) PublishJSON(_ context.Context, body any) error {
	if s.failWith != nil {
		return s.failWith
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	s.jobs = append(s.jobs, m)
	return nil
}

// stubUploader returns deterministic URLs; fails on names in failNames.
type stubUploader struct {
	uploads   []string
	failAlway bool
}

func (s *stubUploader) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if s.failAlway {
		return "", io.ErrUnexpectedEOF
	}
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	s.uploads = append(s.uploads, objectPath)
	return "https://storage.test/" + objectPath, nil
}

func fileOf(name, ct string, size int64) FileUpload {
	return FileUpload{Name: name, ContentType: ct, Size: size, Reader: bytes.NewReader([]byte("x"))}
}
