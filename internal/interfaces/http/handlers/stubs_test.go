package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"seller-panel.backend/internal/domain/entities"
	"seller-panel.backend/internal/interfaces/http/middleware"
	"seller-panel.backend/pkg/logger"
)

func init() {
	logger.Init("test")
	gin.SetMode(gin.TestMode)
}

var activeActor = entities.Actor{SellerID: uuid.New(), Status: entities.SellerStatusActive}

// withActor stands in for the auth middleware
func withActor(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ActorKey, actor)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type filePart struct {
	field, name, content string
}

func doMultipart(t *testing.T, r http.Handler, method, path string, fields map[string]string, files ...filePart) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func readUploads(t *testing.T, uploads []entities.Upload) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, u := range uploads {
		raw, err := io.ReadAll(u.Content)
		require.NoError(t, err)
		out[u.FieldName+"/"+u.FileName] = string(raw)
	}
	return out
}

type identityStub struct {
	registerFn   func(context.Context, *entities.RegisterSellerInput) (*entities.Seller, error)
	verifyFn     func(context.Context, *entities.VerifyOtpInput) (*entities.AuthResponse, error)
	passwordFn   func(context.Context, *entities.PasswordLoginInput) (*entities.AuthResponse, error)
	otpRequestFn func(context.Context, *entities.OtpRequestInput) error
	otpVerifyFn  func(context.Context, *entities.VerifyOtpInput) (*entities.AuthResponse, error)
	profileFn    func(context.Context, entities.Actor) (*entities.Seller, error)
	checkFn      func(context.Context, entities.Actor) (*entities.AuthCheck, error)
	dashboardFn  func(context.Context, entities.Actor) (*entities.DashboardMetrics, error)
}

func (s identityStub) StartRegistration(ctx context.Context, in *entities.RegisterSellerInput) (*entities.Seller, error) {
	return s.registerFn(ctx, in)
}
func (s identityStub) VerifyEmail(ctx context.Context, in *entities.VerifyOtpInput) (*entities.AuthResponse, error) {
	return s.verifyFn(ctx, in)
}
func (s identityStub) LoginWithPassword(ctx context.Context, in *entities.PasswordLoginInput) (*entities.AuthResponse, error) {
	return s.passwordFn(ctx, in)
}
func (s identityStub) RequestLoginOtp(ctx context.Context, in *entities.OtpRequestInput) error {
	return s.otpRequestFn(ctx, in)
}
func (s identityStub) VerifyLoginOtp(ctx context.Context, in *entities.VerifyOtpInput) (*entities.AuthResponse, error) {
	return s.otpVerifyFn(ctx, in)
}
func (s identityStub) GetProfile(ctx context.Context, a entities.Actor) (*entities.Seller, error) {
	return s.profileFn(ctx, a)
}
func (s identityStub) CheckAuth(ctx context.Context, a entities.Actor) (*entities.AuthCheck, error) {
	return s.checkFn(ctx, a)
}
func (s identityStub) DashboardMetrics(ctx context.Context, a entities.Actor) (*entities.DashboardMetrics, error) {
	return s.dashboardFn(ctx, a)
}

type onboardingStub struct {
	personalFn func(context.Context, entities.Actor, *entities.PersonalDetailsInput) (*entities.Seller, error)
	businessFn func(context.Context, entities.Actor, *entities.BusinessInfo) (*entities.OnboardingResult, error)
	bankFn     func(context.Context, entities.Actor, *entities.BankDetailsInput, *entities.Upload) (*entities.OnboardingResult, error)
	docsFn     func(context.Context, entities.Actor, []entities.Upload, []entities.DocumentUpload) (*entities.OnboardingResult, error)
	storeFn    func(context.Context, entities.Actor, *entities.StoreDetailsInput, []entities.Upload) (*entities.OnboardingResult, error)
}

func (s onboardingStub) UpdatePersonalDetails(ctx context.Context, a entities.Actor, in *entities.PersonalDetailsInput) (*entities.Seller, error) {
	return s.personalFn(ctx, a, in)
}
func (s onboardingStub) SubmitBusinessInfo(ctx context.Context, a entities.Actor, in *entities.BusinessInfo) (*entities.OnboardingResult, error) {
	return s.businessFn(ctx, a, in)
}
func (s onboardingStub) SubmitBankDetails(ctx context.Context, a entities.Actor, in *entities.BankDetailsInput, cheque *entities.Upload) (*entities.OnboardingResult, error) {
	return s.bankFn(ctx, a, in, cheque)
}
func (s onboardingStub) SubmitDocuments(ctx context.Context, a entities.Actor, files []entities.Upload, retained []entities.DocumentUpload) (*entities.OnboardingResult, error) {
	return s.docsFn(ctx, a, files, retained)
}
func (s onboardingStub) SubmitStoreDetails(ctx context.Context, a entities.Actor, in *entities.StoreDetailsInput, photos []entities.Upload) (*entities.OnboardingResult, error) {
	return s.storeFn(ctx, a, in, photos)
}

type categoryStub struct {
	createFn func(context.Context, entities.Actor, *entities.CreateCategoryInput) (*entities.Category, error)
	listFn   func(context.Context, entities.Actor) ([]*entities.Category, error)
	getFn    func(context.Context, entities.Actor, uuid.UUID) (*entities.Category, error)
	updateFn func(context.Context, entities.Actor, uuid.UUID, *entities.UpdateCategoryInput) (*entities.Category, error)
	deleteFn func(context.Context, entities.Actor, uuid.UUID) error
}

func (s categoryStub) CreateCategory(ctx context.Context, a entities.Actor, in *entities.CreateCategoryInput) (*entities.Category, error) {
	return s.createFn(ctx, a, in)
}
func (s categoryStub) ListCategories(ctx context.Context, a entities.Actor) ([]*entities.Category, error) {
	return s.listFn(ctx, a)
}
func (s categoryStub) GetCategory(ctx context.Context, a entities.Actor, id uuid.UUID) (*entities.Category, error) {
	return s.getFn(ctx, a, id)
}
func (s categoryStub) UpdateCategory(ctx context.Context, a entities.Actor, id uuid.UUID, in *entities.UpdateCategoryInput) (*entities.Category, error) {
	return s.updateFn(ctx, a, id, in)
}
func (s categoryStub) DeleteCategory(ctx context.Context, a entities.Actor, id uuid.UUID) error {
	return s.deleteFn(ctx, a, id)
}

type catalogStub struct {
	createFn        func(context.Context, entities.Actor, *entities.CreateProductInput, []entities.Upload) (*entities.Product, error)
	updateFn        func(context.Context, entities.Actor, uuid.UUID, *entities.UpdateProductInput, []entities.Upload) (*entities.Product, error)
	deleteFn        func(context.Context, entities.Actor, uuid.UUID) error
	listFn          func(context.Context, entities.Actor, int, int) ([]*entities.Product, int64, error)
	getFn           func(context.Context, entities.Actor, uuid.UUID) (*entities.Product, error)
	addVariantFn    func(context.Context, entities.Actor, uuid.UUID, *entities.VariantInput) (*entities.Variant, error)
	updateVariantFn func(context.Context, entities.Actor, uuid.UUID, *entities.UpdateVariantInput) (*entities.Variant, error)
	deleteVariantFn func(context.Context, entities.Actor, uuid.UUID) error
}

func (s catalogStub) CreateProduct(ctx context.Context, a entities.Actor, in *entities.CreateProductInput, images []entities.Upload) (*entities.Product, error) {
	return s.createFn(ctx, a, in, images)
}
func (s catalogStub) UpdateProduct(ctx context.Context, a entities.Actor, id uuid.UUID, in *entities.UpdateProductInput, images []entities.Upload) (*entities.Product, error) {
	return s.updateFn(ctx, a, id, in, images)
}
func (s catalogStub) DeleteProduct(ctx context.Context, a entities.Actor, id uuid.UUID) error {
	return s.deleteFn(ctx, a, id)
}
func (s catalogStub) ListProducts(ctx context.Context, a entities.Actor, page, limit int) ([]*entities.Product, int64, error) {
	return s.listFn(ctx, a, page, limit)
}
func (s catalogStub) GetProduct(ctx context.Context, a entities.Actor, id uuid.UUID) (*entities.Product, error) {
	return s.getFn(ctx, a, id)
}
func (s catalogStub) AddVariant(ctx context.Context, a entities.Actor, productID uuid.UUID, in *entities.VariantInput) (*entities.Variant, error) {
	return s.addVariantFn(ctx, a, productID, in)
}
func (s catalogStub) UpdateVariant(ctx context.Context, a entities.Actor, id uuid.UUID, in *entities.UpdateVariantInput) (*entities.Variant, error) {
	return s.updateVariantFn(ctx, a, id, in)
}
func (s catalogStub) DeleteVariant(ctx context.Context, a entities.Actor, id uuid.UUID) error {
	return s.deleteVariantFn(ctx, a, id)
}
