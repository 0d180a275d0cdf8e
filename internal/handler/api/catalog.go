package api

import (
	"errors"
	"net/http"

	reqdto "salepoint/internal/handler/dto/request"
	resdto "salepoint/internal/handler/dto/response"
	"salepoint/internal/handler/httperr"
	"salepoint/internal/infra"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// @Summary Create product
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateProductRequest true "Product"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.CreateProduct(c.Request.Context(), commands.CreateProductRequest{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		h.abortCatalogErr(c, err, "Create product failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update product
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.UpdateProductRequest true "Product"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateProductRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	err = h.cmds.UpdateProduct(c.Request.Context(), id, commands.UpdateProductRequest{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		h.abortCatalogErr(c, err, "Update product failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete product
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err = h.cmds.DeleteProduct(c.Request.Context(), id); err != nil {
		h.abortCatalogErr(c, err, "Delete product failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Adjust stock
// @Description Apply a signed delta to a product's stock; the stock can never go below zero
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.AdjustStockRequest true "Adjustment"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /products/{id}/stock [patch]
func (h *CatalogHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.AdjustStockRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err = h.cmds.AdjustStock(c.Request.Context(), id, req.Delta); err != nil {
		if errors.Is(err, commands.ErrStockUnderflow) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Stock would go below zero", nil)
			return
		}
		h.abortCatalogErr(c, err, "Adjust stock failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get product
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} httperr.Response
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetProduct(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load product", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ProductResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.q.ListProducts(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list products", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductViews(views))
}

// @Summary Create service
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateServiceRequest true "Service"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req reqdto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.CreateService(c.Request.Context(), commands.CreateServiceRequest{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.abortCatalogErr(c, err, "Create service failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Update service
// @Tags catalog
// @Accept json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body reqdto.UpdateServiceRequest true "Service"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [put]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateServiceRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	err = h.cmds.UpdateService(c.Request.Context(), id, commands.UpdateServiceRequest{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.abortCatalogErr(c, err, "Update service failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete service
// @Tags catalog
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err = h.cmds.DeleteService(c.Request.Context(), id); err != nil {
		h.abortCatalogErr(c, err, "Delete service failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get service
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} resdto.ServiceResponse
// @Failure 404 {object} httperr.Response
// @Router /services/{id} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetService(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load service", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceView(view))
}

// @Summary List services
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ServiceResponse
// @Router /services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	views, err := h.q.ListServices(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list services", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceViews(views))
}

func (h *CatalogHandler) abortCatalogErr(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrProductNotFound), errors.Is(err, commands.ErrServiceNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, commands.ErrDuplicateItem):
		httperr.AbortWithError(c, http.StatusConflict, err, "Catalog item already exists", nil)
	case errors.Is(err, commands.ErrStoreUnavailable):
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	default:
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
	}
}
