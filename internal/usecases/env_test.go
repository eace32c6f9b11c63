package usecases_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"seller-panel.backend/internal/domain/entities"
	"seller-panel.backend/internal/domain/repositories"
	infrarepo "seller-panel.backend/internal/infrastructure/repositories"
	"seller-panel.backend/internal/usecases"
	"seller-panel.backend/pkg/crypto"
	"seller-panel.backend/pkg/jwt"
)

// recordingNotifier remembers the last code sent to each address
type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
	err   error
}

func (n *recordingNotifier) SendOtp(_ context.Context, to, _, code string, _ int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.codes == nil {
		n.codes = map[string]string{}
	}
	n.codes[to] = code
	return n.err
}

func (n *recordingNotifier) last(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[email]
}

// memoryStore keeps uploads in memory and returns deterministic URLs
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memoryStore) Put(_ context.Context, folder, fileName, _ string, _ int64, content io.Reader) (string, error) {
	raw, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	url := "https://cdn.test/" + folder + "/" + fileName
	s.objects[url] = raw
	return url, nil
}

func (s *memoryStore) Remove(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[url]; !ok {
		return errors.New("no such object: " + url)
	}
	delete(s.objects, url)
	return nil
}

func (s *memoryStore) has(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[url]
	return ok
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type testEnv struct {
	db         *gorm.DB
	sellers    *infrarepo.SellerRepository
	categories *infrarepo.CategoryRepository
	products   *infrarepo.ProductRepository
	variants   *infrarepo.VariantRepository
	notifier   *recordingNotifier
	store      *memoryStore
	tokens     *jwt.JWTService

	identity   *usecases.IdentityUsecase
	onboarding *usecases.OnboardingUsecase
	catalog    *usecases.CatalogUsecase
	category   *usecases.CategoryUsecase
	access     *usecases.AccessControl
}

type envOption func(*envConfig)

type envConfig struct {
	requireAdminApproval bool
	variantRepo          func(repositories.VariantRepository) repositories.VariantRepository
}

func withAdminApproval() envOption {
	return func(c *envConfig) { c.requireAdminApproval = true }
}

// failingVariantRepo fails the n-th Create call
type failingVariantRepo struct {
	repositories.VariantRepository
	failOn int
	calls  int
}

func (r *failingVariantRepo) Create(ctx context.Context, variant *entities.Variant) error {
	r.calls++
	if r.calls == r.failOn {
		return errors.New("disk full")
	}
	return r.VariantRepository.Create(ctx, variant)
}

func withFailingVariantCreate(n int) envOption {
	return func(c *envConfig) {
		c.variantRepo = func(inner repositories.VariantRepository) repositories.VariantRepository {
			return &failingVariantRepo{VariantRepository: inner, failOn: n}
		}
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	cfg := envConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, infrarepo.AutoMigrate(db))

	env := &testEnv{
		db:         db,
		sellers:    infrarepo.NewSellerRepository(db),
		categories: infrarepo.NewCategoryRepository(db),
		products:   infrarepo.NewProductRepository(db),
		variants:   infrarepo.NewVariantRepository(db),
		notifier:   &recordingNotifier{},
		store:      &memoryStore{},
		tokens:     jwt.NewJWTService("test-secret", time.Hour),
	}

	var variantRepo repositories.VariantRepository = env.variants
	if cfg.variantRepo != nil {
		variantRepo = cfg.variantRepo(env.variants)
	}

	hasher := crypto.NewHasher(bcrypt.MinCost)
	uow := infrarepo.NewUnitOfWork(db)
	env.identity = usecases.NewIdentityUsecase(env.sellers, env.categories, env.products, env.variants, hasher, env.tokens, env.notifier, nil, 10*time.Minute)
	env.onboarding = usecases.NewOnboardingUsecase(env.sellers, env.store, env.tokens, cfg.requireAdminApproval)
	env.catalog = usecases.NewCatalogUsecase(uow, env.categories, env.products, variantRepo, env.store)
	env.category = usecases.NewCategoryUsecase(uow, env.categories, env.products)
	env.access = usecases.NewAccessControl(env.sellers, env.tokens)
	return env
}

// registerAndVerify runs registration and email verification and returns the resolved actor
func (e *testEnv) registerAndVerify(t *testing.T, email string) entities.Actor {
	t.Helper()
	ctx := context.Background()
	_, err := e.identity.StartRegistration(ctx, &entities.RegisterSellerInput{
		FullName:     "Asha Rao",
		Email:        email,
		MobileNumber: "9876543210",
		Password:     "secret123",
	})
	require.NoError(t, err)

	auth, err := e.identity.VerifyEmail(ctx, &entities.VerifyOtpInput{Email: email, Otp: e.notifier.last(email)})
	require.NoError(t, err)
	actor, err := e.access.Resolve(ctx, auth.Token)
	require.NoError(t, err)
	return actor
}

// onboard drives a seller all the way through the wizard
func (e *testEnv) onboard(t *testing.T, email string) entities.Actor {
	t.Helper()
	ctx := context.Background()
	actor := e.registerAndVerify(t, email)

	_, err := e.onboarding.SubmitBusinessInfo(ctx, actor, validBusinessInfo())
	require.NoError(t, err)
	_, err = e.onboarding.SubmitBankDetails(ctx, actor, validBankDetails(), upload("cancelledCheque", "cheque.png"))
	require.NoError(t, err)
	_, err = e.onboarding.SubmitDocuments(ctx, actor, []entities.Upload{*upload(entities.DocFieldPANCard, "pan.pdf")}, nil)
	require.NoError(t, err)
	result, err := e.onboarding.SubmitStoreDetails(ctx, actor, validStoreDetails(), nil)
	require.NoError(t, err)

	actor.Status = result.Seller.Status
	return actor
}

// seedCategory creates a category for an active actor
func (e *testEnv) seedCategory(t *testing.T, actor entities.Actor, name string) *entities.Category {
	t.Helper()
	category, err := e.category.CreateCategory(context.Background(), actor, &entities.CreateCategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func upload(field, name string) *entities.Upload {
	body := []byte("file:" + name)
	return &entities.Upload{
		FieldName:   field,
		FileName:    name,
		ContentType: "application/octet-stream",
		Size:        int64(len(body)),
		Content:     bytes.NewReader(body),
	}
}

func validBusinessInfo() *entities.BusinessInfo {
	return &entities.BusinessInfo{
		BusinessName: "Rao Foods",
		LegalName:    "Rao Foods Pvt Ltd",
		BusinessType: entities.BusinessTypePrivateLtd,
		PANNumber:    "abcde1234f",
	}
}

func validBankDetails() *entities.BankDetailsInput {
	return &entities.BankDetailsInput{
		AccountHolderName: "Asha Rao",
		BankName:          "State Bank",
		AccountNumber:     "001122334455",
		IFSCCode:          "sbin0000123",
	}
}

func validStoreDetails() *entities.StoreDetailsInput {
	return &entities.StoreDetailsInput{
		StoreName: "Rao Fresh",
		StoreAddress: &entities.Address{
			AddressLine1: "12 Market Road",
			City:         "Pune",
			State:        "MH",
			Pincode:      "411001",
		},
		StoreType: entities.StoreTypeDarkStore,
	}
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func variantInput(name, sku string, mrp, price float64, stock int) entities.VariantInput {
	return entities.VariantInput{
		Name:         name,
		SKU:          sku,
		MRP:          floatPtr(mrp),
		SellingPrice: floatPtr(price),
		Stock:        intPtr(stock),
	}
}

func productInput(categoryID uuid.UUID, variants ...entities.VariantInput) *entities.CreateProductInput {
	return &entities.CreateProductInput{
		CategoryID:     categoryID,
		Title:          "Basmati Rice",
		Brand:          "Rao",
		Description:    "Aged long grain rice",
		ExistingImages: []string{"https://cdn.test/rice.png"},
		Variants:       variants,
	}
}
