package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kisan-be/internal/product"
	"kisan-be/internal/validation"
)

var productValidator = validation.New()

func (h *Handler) listProducts(c *gin.Context) {
	category, ok := c.GetQuery("category")
	if !ok {
		category = product.AllCategories
	}
	catalog, err := h.products.Catalog(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", catalog)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	detail, err := h.products.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", detail)
}

func (h *Handler) listVendorProducts(c *gin.Context) {
	products, err := h.products.ListByVendor(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", products)
}

func (h *Handler) createProduct(c *gin.Context) {
	var in product.NewProductInput
	if err := validation.BindAndValidate(c, &in, productValidator); err != nil {
		respondError(c, err)
		return
	}
	p, err := h.products.Create(c.Request.Context(), callerFrom(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "product created", p)
}

func (h *Handler) addProductImage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var in product.NewImageInput
	if err := validation.BindAndValidate(c, &in, productValidator); err != nil {
		respondError(c, err)
		return
	}
	img, err := h.products.AddImage(c.Request.Context(), callerFrom(c).ID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "image added", img)
}
