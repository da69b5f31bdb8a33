package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kisan-be/internal/apperror"
	"kisan-be/internal/order"
)

func (h *Handler) getPrefill(c *gin.Context) {
	prefill, err := h.users.GetPrefill(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", prefill)
}

func (h *Handler) placeOrder(c *gin.Context) {
	var in order.CheckoutInput
	if !bind(c, &in) {
		return
	}

	key := c.GetHeader(IdempotencyKeyHeader)
	receipt, replayed, err := h.orders.PlaceOrder(c.Request.Context(), callerFrom(c).Email, in, key)
	if err != nil {
		respondError(c, err)
		return
	}

	if replayed {
		respond(c, http.StatusOK, "order already placed", receipt)
		return
	}
	c.Header("Location", "/orders/"+strconv.FormatUint(uint64(receipt.OrderID), 10))
	respond(c, http.StatusCreated, "order placed", receipt)
}

func (h *Handler) listMyOrders(c *gin.Context) {
	orders, err := h.orders.ListPurchaserOrders(c.Request.Context(), callerFrom(c).Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", orders)
}

func (h *Handler) listVendorOrders(c *gin.Context) {
	orders, err := h.orders.ListVendorOrders(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", orders)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req statusRequest
	if !bind(c, &req) {
		return
	}
	target, err := order.ParseTarget(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	o, err := h.orders.AdvanceStatus(c.Request.Context(), callerFrom(c).ID, id, target)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "status updated", o)
}

func (h *Handler) adminOrders(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		respondError(c, err)
		return
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", orders)
}

func listOptions(c *gin.Context) (order.ListOptions, error) {
	var opts order.ListOptions
	fields := map[string]string{}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["limit"] = "must be a number"
		}
		opts.Limit = n
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fields["page"] = "must be a number"
		}
		opts.Page = n
	}
	if v := c.Query("status"); v != "" {
		st, err := order.ParseStatus(v)
		if err != nil {
			fields["status"] = err.Error()
		}
		opts.Status = &st
	}

	if len(fields) > 0 {
		return opts, apperror.Validation("invalid query", fields)
	}
	return opts, nil
}
