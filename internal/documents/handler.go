package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtb0903/manage-docs/internal/shared/server/middleware"
	"github.com/mtb0903/manage-docs/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the protected document routes.
func (h *Handler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/", h.index)
	rg.GET("/index", h.index)
	rg.GET("/add_doc", h.addDocForm)
	rg.POST("/add_doc", h.addDoc)
	rg.GET("/run_ocr", h.runOCRForm)
	rg.POST("/run_ocr", h.runOCR)
	rg.GET("/list_docs", h.listDocs)
	rg.GET("/docs/:id/attributes", h.getAttributes)
	rg.POST("/docs/:id/attributes", h.setAttribute)
}

func (h *Handler) index(c *gin.Context) {
	respond.OK(c, gin.H{
		"username": middleware.UsernameFromContext(c),
	})
}

func (h *Handler) addDocForm(c *gin.Context) {
	respond.OK(c, gin.H{
		"action": "/add_doc",
		"method": http.MethodPost,
		"fields": []string{"file"},
	})
}

func (h *Handler) addDoc(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file request", nil)
		return
	}
	if fileHeader.Filename == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file selected", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), ownerID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFileName):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No file selected", nil)
		case errors.Is(err, ErrNotPDF):
			respond.Error(c, http.StatusBadRequest, "validation_error", "File must be a pdf", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload document", nil)
		}
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

func (h *Handler) runOCRForm(c *gin.Context) {
	respond.OK(c, gin.H{
		"action": "/run_ocr",
		"method": http.MethodPost,
		"fields": []string{"doc_id"},
	})
}

func (h *Handler) runOCR(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	text, err := h.Svc.RunOCR(c.Request.Context(), ownerID, c.PostForm("doc_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidID):
			respond.Error(c, http.StatusBadRequest, "invalid_id", "Please enter a valid document id", nil)
		case errors.Is(err, ErrNotFound):
			// Same message whether the id is missing or owned by someone else.
			respond.Error(c, http.StatusNotFound, "not_found", "Document id does not exist", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "OCR analysis failed", nil)
		}
		return
	}

	respond.OK(c, gin.H{"extracted_text": text})
}

func (h *Handler) listDocs(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) getAttributes(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	docID, err := ParseDocID(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_id", "Please enter a valid document id", nil)
		return
	}

	attrs, err := h.Svc.Attributes(c.Request.Context(), ownerID, docID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Document id does not exist", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch attributes", nil)
		return
	}

	respond.OK(c, attrs)
}

type setAttributeRequest struct {
	Key   string `form:"key" json:"key"`
	Value string `form:"value" json:"value"`
}

func (h *Handler) setAttribute(c *gin.Context) {
	ownerID := middleware.UserIDFromContext(c)

	docID, err := ParseDocID(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_id", "Please enter a valid document id", nil)
		return
	}

	var req setAttributeRequest
	if err := c.ShouldBind(&req); err != nil || req.Key == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "key is required", nil)
		return
	}

	if err := h.Svc.SetAttribute(c.Request.Context(), ownerID, docID, req.Key, req.Value); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document id does not exist", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "key is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to set attribute", nil)
		}
		return
	}

	respond.OK(c, gin.H{"key": req.Key, "value": req.Value})
}
