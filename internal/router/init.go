package router

import (
	"github.com/mewzone/mewzone/internal/application"
	"github.com/mewzone/mewzone/internal/container"
	pginfra "github.com/mewzone/mewzone/internal/infrastructure/postgres"
	"github.com/mewzone/mewzone/internal/infrastructure/session"
	handlers "github.com/mewzone/mewzone/internal/interface/http"
	"github.com/mewzone/mewzone/internal/router/modules"
	"github.com/mewzone/mewzone/pkg/helpers"
)

// InitModules builds every service from the container singletons and
// registers the feature modules with the registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	otps := pginfra.NewOTPRepository(pool)
	shops := pginfra.NewShopRepository(pool)
	products := pginfra.NewProductRepository(pool)
	mates := pginfra.NewMateRepository(pool)
	reviews := pginfra.NewReviewRepository(pool)
	taxonomy := pginfra.NewTaxonomyRepository(pool)
	approvals := pginfra.NewApprovalRepository(pool)

	sessions := session.New(rdb)
	uploader := &application.GCSUploader{Client: container.GetGCS(), Bucket: cfg.GCSBucket}
	indexer := &application.ProductIndexer{ES: container.GetES(), Index: cfg.ESProductsIndex, Logger: logger}
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	var pub application.EmailEnqueuer
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := &application.AuthService{
		Users:       users,
		OTPs:        otps,
		Shops:       shops,
		Reg:         sessions,
		JWT:         jwt,
		Redis:       rdb,
		Pub:         pub,
		Logger:      logger,
		OTPTTL:      cfg.OTPTTL,
		RegTTL:      cfg.RegSessionTTL,
		MailEnabled: cfg.MailSendEnabled,
	}
	shopSvc := &application.ShopService{
		Shops:    shops,
		Users:    users,
		Products: products,
		Reviews:  reviews,
		Files:    uploader,
		Logger:   logger,
	}
	listingSvc := &application.ListingService{
		Shops:         shops,
		Products:      products,
		Mates:         mates,
		Taxonomy:      taxonomy,
		Files:         uploader,
		Logger:        logger,
		MaxVideoBytes: cfg.MaxVideoBytes,
	}
	catalogSvc := &application.CatalogService{
		Products: products,
		Mates:    mates,
		Reviews:  reviews,
		Taxonomy: taxonomy,
		Search:   indexer,
		Cache:    rdb,
		Logger:   logger,
	}
	reviewSvc := &application.ReviewService{
		Reviews:  reviews,
		Products: products,
		Shops:    shops,
		Mates:    mates,
		Logger:   logger,
	}
	cartSvc := &application.CartService{
		Store:    sessions,
		Products: products,
		Logger:   logger,
	}
	approvalSvc := &application.ApprovalService{
		Approvals: approvals,
		Products:  products,
		Search:    indexer,
		Cache:     rdb,
		Logger:    logger,
	}

	authH := handlers.NewAuthHandler(authSvc, logger, cookies, cfg.RegSessionTTL)
	shopH := handlers.NewShopHandler(shopSvc, logger)
	listingH := handlers.NewListingHandler(listingSvc, logger)
	catalogH := handlers.NewCatalogHandler(catalogSvc, logger)
	reviewH := handlers.NewReviewHandler(reviewSvc, logger)
	cartH := handlers.NewCartHandler(cartSvc, logger, cookies)
	adminH := handlers.NewAdminHandler(approvalSvc, logger)

	r.Add(modules.NewAuthModule(authH, jwt))
	r.Add(modules.NewCatalogModule(catalogH, shopH))
	r.Add(modules.NewSellerModule(shopH, listingH, jwt))
	r.Add(modules.NewCartModule(cartH, reviewH, jwt))
	r.Add(modules.NewAdminModule(adminH, jwt))
}
