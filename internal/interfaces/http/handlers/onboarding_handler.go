package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"seller-panel.backend/internal/domain/entities"
	"seller-panel.backend/internal/interfaces/http/response"
)

const (
	chequeField      = "cancelledCheque"
	storePhotosField = "storePhotos"
)

// OnboardingService writes the seller profile sections
type OnboardingService interface {
	UpdatePersonalDetails(ctx context.Context, actor entities.Actor, input *entities.PersonalDetailsInput) (*entities.Seller, error)
	SubmitBusinessInfo(ctx context.Context, actor entities.Actor, info *entities.BusinessInfo) (*entities.OnboardingResult, error)
	SubmitBankDetails(ctx context.Context, actor entities.Actor, input *entities.BankDetailsInput, cheque *entities.Upload) (*entities.OnboardingResult, error)
	SubmitDocuments(ctx context.Context, actor entities.Actor, files []entities.Upload, retained []entities.DocumentUpload) (*entities.OnboardingResult, error)
	SubmitStoreDetails(ctx context.Context, actor entities.Actor, input *entities.StoreDetailsInput, photos []entities.Upload) (*entities.OnboardingResult, error)
}

// OnboardingHandler serves the registration wizard and the profile editor
type OnboardingHandler struct {
	onboarding OnboardingService
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboarding OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

// UpdatePersonalDetails edits the contact fields
// PUT /api/v1/profile/personal
func (h *OnboardingHandler) UpdatePersonalDetails(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input entities.PersonalDetailsInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	seller, err := h.onboarding.UpdatePersonalDetails(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"seller": seller})
}

// SubmitBusinessInfo stores the business section
// PUT /api/v1/auth/business-info, PUT /api/v1/profile/business
func (h *OnboardingHandler) SubmitBusinessInfo(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var info entities.BusinessInfo
	if err := bindJSON(c, &info); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.onboarding.SubmitBusinessInfo(c.Request.Context(), actor, &info)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// SubmitBankDetails stores the bank section with its cancelled cheque
// PUT /api/v1/auth/bank-details, PUT /api/v1/profile/bank
func (h *OnboardingHandler) SubmitBankDetails(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var (
		input  entities.BankDetailsInput
		cheque *entities.Upload
	)
	if isMultipart(c) {
		form, err := multipartForm(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		input = entities.BankDetailsInput{
			AccountHolderName:  formString(form, "accountHolderName"),
			BankName:           formString(form, "bankName"),
			BranchName:         formString(form, "branchName"),
			AccountNumber:      formString(form, "accountNumber"),
			IFSCCode:           formString(form, "ifscCode"),
			CancelledChequeURL: formString(form, "cancelledChequeUrl"),
		}

		uploads, closeAll, err := openUploads(form, []string{chequeField})
		defer closeAll()
		if err != nil {
			response.Error(c, err)
			return
		}
		if len(uploads) > 0 {
			cheque = &uploads[0]
		}
	} else if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.onboarding.SubmitBankDetails(c.Request.Context(), actor, &input, cheque)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

type documentsBody struct {
	Documents []entities.DocumentUpload `json:"documents"`
}

// SubmitDocuments stores compliance documents
// PUT /api/v1/auth/documents, PUT /api/v1/profile/documents
func (h *OnboardingHandler) SubmitDocuments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var (
		body  documentsBody
		files []entities.Upload
	)
	if isMultipart(c) {
		form, err := multipartForm(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		if _, err := formJSON(form, "documents", &body.Documents); err != nil {
			response.Error(c, err)
			return
		}

		uploads, closeAll, err := openUploads(form, nil)
		defer closeAll()
		if err != nil {
			response.Error(c, err)
			return
		}
		files = uploads
	} else if err := bindJSON(c, &body); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.onboarding.SubmitDocuments(c.Request.Context(), actor, files, body.Documents)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// SubmitStoreDetails stores the store section and completes onboarding
// PUT /api/v1/auth/store-details, PUT /api/v1/profile/store-details
func (h *OnboardingHandler) SubmitStoreDetails(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var (
		input  entities.StoreDetailsInput
		photos []entities.Upload
	)
	if isMultipart(c) {
		form, err := multipartForm(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		if err := storeDetailsFromForm(form, &input); err != nil {
			response.Error(c, err)
			return
		}

		uploads, closeAll, err := openUploads(form, []string{storePhotosField})
		defer closeAll()
		if err != nil {
			response.Error(c, err)
			return
		}
		photos = uploads
	} else if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.onboarding.SubmitStoreDetails(c.Request.Context(), actor, &input, photos)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
