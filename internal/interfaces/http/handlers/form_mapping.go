package handlers

import (
	"mime/multipart"

	"seller-panel.backend/internal/domain/entities"
)

func storeDetailsFromForm(form *multipart.Form, input *entities.StoreDetailsInput) error {
	input.StoreName = formString(form, "storeName")
	input.StoreType = entities.StoreType(formString(form, "storeType"))
	input.FSSAILicenceNumber = formString(form, "fssaiLicenceNumber")
	input.StoreContactNumber = formString(form, "storeContactNumber")

	if _, err := formJSON(form, "storeAddress", &input.StoreAddress); err != nil {
		return err
	}
	if _, err := formJSON(form, "storeTimings", &input.StoreTimings); err != nil {
		return err
	}
	if _, err := formJSON(form, "existingPhotos", &input.ExistingPhotos); err != nil {
		return err
	}
	pincodes, _, err := formTags(form, "coveredDeliveryPincodes")
	if err != nil {
		return err
	}
	input.CoveredDeliveryPincodes = pincodes
	return nil
}

func createProductFromForm(form *multipart.Form, input *entities.CreateProductInput) error {
	categoryID, err := formUUID(form, "categoryId")
	if err != nil {
		return err
	}
	if categoryID != nil {
		input.CategoryID = *categoryID
	}
	input.Title = formString(form, "title")
	input.Brand = formString(form, "brand")
	input.Description = formString(form, "description")
	input.ShortDescription = formString(form, "shortDescription")
	input.HSNCode = formString(form, "hsnCode")
	input.Status = entities.ProductStatus(formString(form, "status"))

	if input.TaxPercentage, err = formFloat(form, "taxPercentage"); err != nil {
		return err
	}
	if input.Tags, _, err = formTags(form, "tags"); err != nil {
		return err
	}
	if _, err := formJSON(form, "existingImages", &input.ExistingImages); err != nil {
		return err
	}
	if _, err := formJSON(form, "attributes", &input.Attributes); err != nil {
		return err
	}
	if _, err := formJSON(form, "shippingDetails", &input.ShippingDetails); err != nil {
		return err
	}
	if _, err := formJSON(form, "variants", &input.Variants); err != nil {
		return err
	}
	return nil
}

// updateProductFromForm sets only the fields present in form
func updateProductFromForm(form *multipart.Form, input *entities.UpdateProductInput) error {
	var err error
	if input.CategoryID, err = formUUID(form, "categoryId"); err != nil {
		return err
	}
	input.Title = formStringPtr(form, "title")
	input.Brand = formStringPtr(form, "brand")
	input.Description = formStringPtr(form, "description")
	input.ShortDescription = formStringPtr(form, "shortDescription")
	input.HSNCode = formStringPtr(form, "hsnCode")
	if status := formStringPtr(form, "status"); status != nil {
		s := entities.ProductStatus(*status)
		input.Status = &s
	}

	if input.TaxPercentage, err = formFloat(form, "taxPercentage"); err != nil {
		return err
	}
	if input.Tags, _, err = formTags(form, "tags"); err != nil {
		return err
	}
	if _, err := formJSON(form, "existingImages", &input.ExistingImages); err != nil {
		return err
	}
	if _, err := formJSON(form, "attributes", &input.Attributes); err != nil {
		return err
	}
	if _, err := formJSON(form, "shippingDetails", &input.ShippingDetails); err != nil {
		return err
	}
	return nil
}
