package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SellerStatus represents the onboarding status of a seller
type SellerStatus string

const (
	SellerStatusPendingEmailVerification SellerStatus = "pending-email-verification"
	SellerStatusPendingBusinessInfo      SellerStatus = "pending-business-info"
	SellerStatusPendingBankDetails       SellerStatus = "pending-bank-details"
	SellerStatusPendingDocuments         SellerStatus = "pending-documents"
	SellerStatusPendingStoreDetails      SellerStatus = "pending-store-details"
	SellerStatusPendingAdminApproval     SellerStatus = "pending-admin-approval"
	SellerStatusActive                   SellerStatus = "active"
	SellerStatusSuspended                SellerStatus = "suspended"
	SellerStatusRejected                 SellerStatus = "rejected"
)

// BusinessType represents the legal form of a seller business
type BusinessType string

const (
	BusinessTypeProprietorship BusinessType = "Proprietorship"
	BusinessTypePrivateLtd     BusinessType = "Private Ltd"
	BusinessTypeLLP            BusinessType = "LLP"
	BusinessTypePartnership    BusinessType = "Partnership"
	BusinessTypeIndividual     BusinessType = "Individual"
)

// Valid reports whether t is a known business type
func (t BusinessType) Valid() bool {
	switch t {
	case BusinessTypeProprietorship, BusinessTypePrivateLtd, BusinessTypeLLP, BusinessTypePartnership, BusinessTypeIndividual:
		return true
	}
	return false
}

// StoreType represents the kind of fulfilment location
type StoreType string

const (
	StoreTypeWarehouse StoreType = "Warehouse"
	StoreTypeRetail    StoreType = "Retail"
	StoreTypeDarkStore StoreType = "Dark Store"
)

// Valid reports whether t is a known store type
func (t StoreType) Valid() bool {
	switch t {
	case StoreTypeWarehouse, StoreTypeRetail, StoreTypeDarkStore:
		return true
	}
	return false
}

// VerificationStatus is the review state of bank details and documents
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Address is a postal address
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// BusinessInfo is the second onboarding section
type BusinessInfo struct {
	BusinessName    string       `json:"businessName"`
	LegalName       string       `json:"legalName"`
	BusinessType    BusinessType `json:"businessType"`
	GSTNumber       string       `json:"gstNumber,omitempty"`
	PANNumber       string       `json:"panNumber"`
	BusinessAddress *Address     `json:"businessAddress,omitempty"`
	BusinessContact string       `json:"businessContact,omitempty"`
	BusinessEmail   string       `json:"businessEmail,omitempty"`
}

// BankDetails is the third onboarding section
type BankDetails struct {
	AccountHolderName  string             `json:"accountHolderName"`
	BankName           string             `json:"bankName"`
	BranchName         string             `json:"branchName,omitempty"`
	AccountNumber      string             `json:"accountNumber"`
	IFSCCode           string             `json:"ifscCode"`
	CancelledChequeURL string             `json:"cancelledChequeUrl"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
}

// DocumentUpload is one compliance document attached to a seller
type DocumentUpload struct {
	DocType            string             `json:"docType"`
	FileURL            string             `json:"fileUrl"`
	FileName           string             `json:"fileName,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
}

// StoreTimings holds daily opening hours in HH:MM
type StoreTimings struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// StoreDetails is the last onboarding section
type StoreDetails struct {
	StoreName               string       `json:"storeName"`
	StoreAddress            *Address     `json:"storeAddress,omitempty"`
	StoreType               StoreType    `json:"storeType"`
	StoreTimings            StoreTimings `json:"storeTimings"`
	FSSAILicenceNumber      string       `json:"fssaiLicenceNumber,omitempty"`
	StoreContactNumber      string       `json:"storeContactNumber,omitempty"`
	CoveredDeliveryPincodes []string     `json:"coveredDeliveryPincodes"`
	StorePhotos             []string     `json:"storePhotos"`
}

// Seller represents a seller account and its onboarding sections
type Seller struct {
	ID               uuid.UUID        `json:"id"`
	FullName         string           `json:"fullName"`
	Email            string           `json:"email"`
	MobileNumber     string           `json:"mobileNumber"`
	AlternateContact null.String      `json:"alternateContact"`
	PasswordHash     string           `json:"-"`
	EmailVerified    bool             `json:"emailVerified"`
	OtpHash          null.String      `json:"-"`
	OtpExpiry        null.Time        `json:"-"`
	Status           SellerStatus     `json:"status"`
	BusinessInfo     *BusinessInfo    `json:"businessInfo,omitempty"`
	BankDetails      *BankDetails     `json:"bankDetails,omitempty"`
	Documents        []DocumentUpload `json:"documents"`
	StoreDetails     *StoreDetails    `json:"storeDetails,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Actor is the authenticated seller resolved for a single request
type Actor struct {
	SellerID uuid.UUID    `json:"sellerId"`
	Status   SellerStatus `json:"status"`
}

// IsActive reports whether the actor may manage the catalog
func (a Actor) IsActive() bool {
	return a.Status == SellerStatusActive
}

// Document field names accepted on upload
const (
	DocFieldGSTCertificate        = "gstCertificate"
	DocFieldPANCard               = "panCard"
	DocFieldFSSAILicence          = "fssaiLicence"
	DocFieldAddressProof          = "addressProof"
	DocFieldAdditionalCertificate = "additionalCertificate"
)

// DocumentFields lists the upload fields that carry compliance documents
var DocumentFields = []string{
	DocFieldGSTCertificate,
	DocFieldPANCard,
	DocFieldFSSAILicence,
	DocFieldAddressProof,
	DocFieldAdditionalCertificate,
}

// DocTypeForField maps an upload field name to its document type label
func DocTypeForField(field string) string {
	switch field {
	case DocFieldGSTCertificate:
		return "GST Certificate"
	case DocFieldPANCard:
		return "PAN Card"
	case DocFieldFSSAILicence:
		return "FSSAI Licence"
	case DocFieldAddressProof:
		return "Address Proof"
	case DocFieldAdditionalCertificate:
		return "Additional Certificate"
	default:
		return "Other"
	}
}

// RegisterSellerInput represents input for starting a registration
type RegisterSellerInput struct {
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber" binding:"required"`
	Password     string `json:"password" binding:"required,min=6"`
}

// VerifyOtpInput represents an email plus one-time code
type VerifyOtpInput struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

// PasswordLoginInput represents input for password login
type PasswordLoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OtpRequestInput represents a request for a login code
type OtpRequestInput struct {
	Email string `json:"email" binding:"required,email"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token  string  `json:"token"`
	Seller *Seller `json:"seller"`
}

// AuthCheck is the lightweight session check returned to clients
type AuthCheck struct {
	SellerID      uuid.UUID    `json:"sellerId"`
	Status        SellerStatus `json:"status"`
	EmailVerified bool         `json:"emailVerified"`
}

// PersonalDetailsInput updates the contact fields of a seller
type PersonalDetailsInput struct {
	FullName         *string `json:"fullName"`
	MobileNumber     *string `json:"mobileNumber"`
	AlternateContact *string `json:"alternateContact"`
}

// BankDetailsInput carries the bank section payload
type BankDetailsInput struct {
	AccountHolderName  string `json:"accountHolderName" form:"accountHolderName"`
	BankName           string `json:"bankName" form:"bankName"`
	BranchName         string `json:"branchName" form:"branchName"`
	AccountNumber      string `json:"accountNumber" form:"accountNumber"`
	IFSCCode           string `json:"ifscCode" form:"ifscCode"`
	CancelledChequeURL string `json:"cancelledChequeUrl" form:"cancelledChequeUrl"`
}

// StoreDetailsInput carries the store section payload
type StoreDetailsInput struct {
	StoreName               string        `json:"storeName"`
	StoreAddress            *Address      `json:"storeAddress"`
	StoreType               StoreType     `json:"storeType"`
	StoreTimings            *StoreTimings `json:"storeTimings"`
	FSSAILicenceNumber      string        `json:"fssaiLicenceNumber"`
	StoreContactNumber      string        `json:"storeContactNumber"`
	CoveredDeliveryPincodes []string      `json:"coveredDeliveryPincodes"`
	ExistingPhotos          []string      `json:"existingPhotos"`
}

// OnboardingResult is returned after a section write
type OnboardingResult struct {
	Seller   *Seller `json:"seller"`
	Advanced bool    `json:"advanced"`
	Token    string  `json:"token,omitempty"`
}

// DashboardMetrics summarises a seller catalog
type DashboardMetrics struct {
	ProductCount    int64 `json:"productCount"`
	CategoryCount   int64 `json:"categoryCount"`
	TotalStock      int64 `json:"totalStock"`
	OutOfStockItems int64 `json:"outOfStockItems"`
}
