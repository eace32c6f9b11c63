package usecases

import (
	"context"
	"strings"

	"github.com/volatiletech/null/v8"
	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/domain/repositories"
)

const maxStorePhotos = 5

// pipelineRank orders the onboarding statuses; statuses outside it cannot write sections
var pipelineRank = map[entities.SellerStatus]int{
	entities.SellerStatusPendingEmailVerification: 0,
	entities.SellerStatusPendingBusinessInfo:      1,
	entities.SellerStatusPendingBankDetails:       2,
	entities.SellerStatusPendingDocuments:         3,
	entities.SellerStatusPendingStoreDetails:      4,
	entities.SellerStatusPendingAdminApproval:     5,
	entities.SellerStatusActive:                   6,
}

// OnboardingUsecase gates and advances the seller status as profile sections are written
type OnboardingUsecase struct {
	sellerRepo           repositories.SellerRepository
	store                ObjectStore
	tokens               TokenIssuer
	requireAdminApproval bool
}

// NewOnboardingUsecase creates a new onboarding usecase
func NewOnboardingUsecase(
	sellerRepo repositories.SellerRepository,
	store ObjectStore,
	tokens TokenIssuer,
	requireAdminApproval bool,
) *OnboardingUsecase {
	return &OnboardingUsecase{
		sellerRepo:           sellerRepo,
		store:                store,
		tokens:               tokens,
		requireAdminApproval: requireAdminApproval,
	}
}

// gate loads the seller and decides whether a write for the step at required may proceed.
// advance is true only when the seller sits exactly at required.
func (u *OnboardingUsecase) gate(ctx context.Context, actor entities.Actor, required entities.SellerStatus) (*entities.Seller, bool, error) {
	seller, err := u.sellerRepo.GetByID(ctx, actor.SellerID)
	if err != nil {
		return nil, false, repoError(ctx, "get seller", err, "seller not found")
	}

	rank, ok := pipelineRank[seller.Status]
	if !ok {
		return nil, false, domainerrors.InvalidState("profile cannot be changed while the account is " + string(seller.Status))
	}
	if rank < pipelineRank[required] {
		return nil, false, domainerrors.InvalidState("complete the earlier onboarding steps first; current status: " + string(seller.Status))
	}
	return seller, seller.Status == required, nil
}

func (u *OnboardingUsecase) save(ctx context.Context, seller *entities.Seller, section repositories.SellerSection, advance bool, next entities.SellerStatus) (*entities.OnboardingResult, error) {
	var transition *repositories.StatusTransition
	if advance {
		transition = &repositories.StatusTransition{From: seller.Status, To: next}
	}
	if err := u.sellerRepo.SaveSection(ctx, seller, section, transition); err != nil {
		return nil, repoError(ctx, "save "+string(section), err, "seller not found")
	}
	if transition != nil {
		recordTransition(ctx, seller, *transition)
	}
	return &entities.OnboardingResult{Seller: seller, Advanced: advance}, nil
}

// saveWithUploads is save that removes the files stored for this request when the write fails
func (u *OnboardingUsecase) saveWithUploads(ctx context.Context, seller *entities.Seller, section repositories.SellerSection, advance bool, next entities.SellerStatus, uploaded []string) (*entities.OnboardingResult, error) {
	result, err := u.save(ctx, seller, section, advance, next)
	if err != nil {
		discardUploads(ctx, u.store, uploaded)
		return nil, err
	}
	return result, nil
}

// UpdatePersonalDetails changes contact fields; blank values keep the stored ones
func (u *OnboardingUsecase) UpdatePersonalDetails(ctx context.Context, actor entities.Actor, input *entities.PersonalDetailsInput) (*entities.Seller, error) {
	seller, _, err := u.gate(ctx, actor, entities.SellerStatusPendingBusinessInfo)
	if err != nil {
		return nil, err
	}

	if v := trimmed(input.FullName); v != "" {
		seller.FullName = v
	}
	if v := trimmed(input.MobileNumber); v != "" {
		seller.MobileNumber = v
	}
	if v := trimmed(input.AlternateContact); v != "" {
		seller.AlternateContact = null.StringFrom(v)
	}

	if err := u.sellerRepo.UpdateContact(ctx, seller.ID, seller.FullName, seller.MobileNumber, seller.AlternateContact); err != nil {
		return nil, repoError(ctx, "update contact", err, "seller not found")
	}
	return seller, nil
}

// SubmitBusinessInfo writes the business section
func (u *OnboardingUsecase) SubmitBusinessInfo(ctx context.Context, actor entities.Actor, info *entities.BusinessInfo) (*entities.OnboardingResult, error) {
	info.BusinessName = strings.TrimSpace(info.BusinessName)
	info.LegalName = strings.TrimSpace(info.LegalName)
	info.PANNumber = strings.ToUpper(strings.TrimSpace(info.PANNumber))
	info.GSTNumber = strings.ToUpper(strings.TrimSpace(info.GSTNumber))
	switch {
	case info.BusinessName == "":
		return nil, domainerrors.Validation("businessName is required")
	case info.LegalName == "":
		return nil, domainerrors.Validation("legalName is required")
	case !info.BusinessType.Valid():
		return nil, domainerrors.Validation("businessType must be one of Proprietorship, Private Ltd, LLP, Partnership, Individual")
	case info.PANNumber == "":
		return nil, domainerrors.Validation("panNumber is required")
	}

	seller, advance, err := u.gate(ctx, actor, entities.SellerStatusPendingBusinessInfo)
	if err != nil {
		return nil, err
	}
	seller.BusinessInfo = info
	return u.save(ctx, seller, repositories.SectionBusinessInfo, advance, entities.SellerStatusPendingBankDetails)
}

// SubmitBankDetails writes the bank section; the cheque comes from cheque, the payload URL or the stored one
func (u *OnboardingUsecase) SubmitBankDetails(ctx context.Context, actor entities.Actor, input *entities.BankDetailsInput, cheque *entities.Upload) (*entities.OnboardingResult, error) {
	details := &entities.BankDetails{
		AccountHolderName:  strings.TrimSpace(input.AccountHolderName),
		BankName:           strings.TrimSpace(input.BankName),
		BranchName:         strings.TrimSpace(input.BranchName),
		AccountNumber:      strings.TrimSpace(input.AccountNumber),
		IFSCCode:           strings.ToUpper(strings.TrimSpace(input.IFSCCode)),
		CancelledChequeURL: strings.TrimSpace(input.CancelledChequeURL),
		VerificationStatus: entities.VerificationPending,
	}
	switch {
	case details.AccountHolderName == "":
		return nil, domainerrors.Validation("accountHolderName is required")
	case details.BankName == "":
		return nil, domainerrors.Validation("bankName is required")
	case details.AccountNumber == "":
		return nil, domainerrors.Validation("accountNumber is required")
	case details.IFSCCode == "":
		return nil, domainerrors.Validation("ifscCode is required")
	}

	seller, advance, err := u.gate(ctx, actor, entities.SellerStatusPendingBankDetails)
	if err != nil {
		return nil, err
	}

	var uploaded []string
	if cheque != nil {
		if err := validateUploads([]entities.Upload{*cheque}, documentExtensions); err != nil {
			return nil, err
		}
		uploaded, err = putAll(ctx, u.store, sellerDocsFolder+seller.ID.String(), []entities.Upload{*cheque})
		if err != nil {
			return nil, err
		}
		details.CancelledChequeURL = uploaded[0]
	}
	if details.CancelledChequeURL == "" && seller.BankDetails != nil {
		details.CancelledChequeURL = seller.BankDetails.CancelledChequeURL
	}
	if details.CancelledChequeURL == "" {
		return nil, domainerrors.Validation("cancelled cheque image is required")
	}

	if prev := seller.BankDetails; prev != nil && sameBankDetails(prev, details) {
		details.VerificationStatus = prev.VerificationStatus
	}
	seller.BankDetails = details
	return u.saveWithUploads(ctx, seller, repositories.SectionBankDetails, advance, entities.SellerStatusPendingDocuments, uploaded)
}

func sameBankDetails(a, b *entities.BankDetails) bool {
	return a.AccountHolderName == b.AccountHolderName &&
		a.BankName == b.BankName &&
		a.BranchName == b.BranchName &&
		a.AccountNumber == b.AccountNumber &&
		a.IFSCCode == b.IFSCCode &&
		a.CancelledChequeURL == b.CancelledChequeURL
}

// SubmitDocuments replaces the document list with the retained entries plus the uploaded files
func (u *OnboardingUsecase) SubmitDocuments(ctx context.Context, actor entities.Actor, files []entities.Upload, retained []entities.DocumentUpload) (*entities.OnboardingResult, error) {
	if len(files) == 0 && len(retained) == 0 {
		return nil, domainerrors.Validation("at least one document file is required")
	}
	for _, doc := range retained {
		if strings.TrimSpace(doc.DocType) == "" || strings.TrimSpace(doc.FileURL) == "" {
			return nil, domainerrors.Validation("each document needs a docType and a fileUrl")
		}
	}

	seller, advance, err := u.gate(ctx, actor, entities.SellerStatusPendingDocuments)
	if err != nil {
		return nil, err
	}
	if err := validateUploads(files, documentExtensions); err != nil {
		return nil, err
	}

	known := make(map[string]entities.VerificationStatus, len(seller.Documents))
	for _, doc := range seller.Documents {
		known[doc.FileURL] = doc.VerificationStatus
	}

	documents := make([]entities.DocumentUpload, 0, len(retained)+len(files))
	for _, doc := range retained {
		status, ok := known[doc.FileURL]
		if !ok {
			status = entities.VerificationPending
		}
		documents = append(documents, entities.DocumentUpload{
			DocType:            strings.TrimSpace(doc.DocType),
			FileURL:            strings.TrimSpace(doc.FileURL),
			FileName:           doc.FileName,
			VerificationStatus: status,
		})
	}

	urls, err := putAll(ctx, u.store, sellerDocsFolder+seller.ID.String(), files)
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		documents = append(documents, entities.DocumentUpload{
			DocType:            entities.DocTypeForField(f.FieldName),
			FileURL:            urls[i],
			FileName:           f.FileName,
			VerificationStatus: entities.VerificationPending,
		})
	}

	seller.Documents = documents
	return u.saveWithUploads(ctx, seller, repositories.SectionDocuments, advance, entities.SellerStatusPendingStoreDetails, urls)
}

// SubmitStoreDetails writes the store section and returns a fresh token
func (u *OnboardingUsecase) SubmitStoreDetails(ctx context.Context, actor entities.Actor, input *entities.StoreDetailsInput, photos []entities.Upload) (*entities.OnboardingResult, error) {
	details := &entities.StoreDetails{
		StoreName:               strings.TrimSpace(input.StoreName),
		StoreAddress:            input.StoreAddress,
		StoreType:               input.StoreType,
		StoreTimings:            entities.StoreTimings{Open: "09:00", Close: "21:00"},
		FSSAILicenceNumber:      strings.TrimSpace(input.FSSAILicenceNumber),
		StoreContactNumber:      strings.TrimSpace(input.StoreContactNumber),
		CoveredDeliveryPincodes: nonEmptyStrings(input.CoveredDeliveryPincodes),
	}
	if t := input.StoreTimings; t != nil {
		if v := strings.TrimSpace(t.Open); v != "" {
			details.StoreTimings.Open = v
		}
		if v := strings.TrimSpace(t.Close); v != "" {
			details.StoreTimings.Close = v
		}
	}
	switch {
	case details.StoreName == "":
		return nil, domainerrors.Validation("storeName is required")
	case details.StoreAddress == nil:
		return nil, domainerrors.Validation("storeAddress is required")
	case !details.StoreType.Valid():
		return nil, domainerrors.Validation("storeType must be one of Warehouse, Retail, Dark Store")
	case len(photos) > maxStorePhotos:
		return nil, domainerrors.Validationf("at most %d store photos can be uploaded", maxStorePhotos)
	}

	seller, advance, err := u.gate(ctx, actor, entities.SellerStatusPendingStoreDetails)
	if err != nil {
		return nil, err
	}
	if err := validateUploads(photos, imageExtensions); err != nil {
		return nil, err
	}
	urls, err := putAll(ctx, u.store, sellerDocsFolder+seller.ID.String(), photos)
	if err != nil {
		return nil, err
	}
	details.StorePhotos = append(nonEmptyStrings(input.ExistingPhotos), urls...)

	next := entities.SellerStatusActive
	if u.requireAdminApproval {
		next = entities.SellerStatusPendingAdminApproval
	}
	seller.StoreDetails = details
	result, err := u.saveWithUploads(ctx, seller, repositories.SectionStoreDetails, advance, next, urls)
	if err != nil {
		return nil, err
	}

	token, err := u.tokens.Issue(seller.ID, string(seller.Status))
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	result.Token = token
	return result, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// nonEmptyStrings trims values, drops blanks and never returns nil
func nonEmptyStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
