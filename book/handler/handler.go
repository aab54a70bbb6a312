package handler

import (
	"net/http"
	"strconv"

	"github.com/YOHANNES7766/AmenApp/book/repo/model"
	"github.com/YOHANNES7766/AmenApp/book/service"
	"github.com/YOHANNES7766/AmenApp/common"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	service *service.BookService
}

func NewBookHandler(s *service.BookService) *BookHandler {
	return &BookHandler{service: s}
}

func (h *BookHandler) Upload(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		Author      string `json:"author"`
		Description string `json:"description"`
		CoverPath   string `json:"cover_path"`
		PDFPath     string `json:"pdf_path"`
		EPUBPath    string `json:"epub_path"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": err.Error()})
		return
	}

	book := &model.Book{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		CoverPath:   input.CoverPath,
		PDFPath:     input.PDFPath,
		EPUBPath:    input.EPUBPath,
	}
	created, err := h.service.Upload(c.Request.Context(), common.CurrentUserID(c), book)
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "upload book ok", "detail": created})
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "list books ok", "detail": books})
}

func (h *BookHandler) Get(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": "invalid book id"})
		return
	}

	book, err := h.service.Get(c.Request.Context(), bookID)
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "get book ok", "detail": book})
}

func (h *BookHandler) Approve(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": "invalid book id"})
		return
	}
	if err := h.service.Approve(c.Request.Context(), bookID); err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "approve book ok"})
}

func (h *BookHandler) AddComment(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": "invalid book id"})
		return
	}

	var input struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": err.Error()})
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), common.CurrentUserID(c), bookID, input.Body)
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "add comment ok", "detail": comment})
}

func (h *BookHandler) ListComments(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 1, "error": "invalid book id"})
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), bookID)
	if err != nil {
		common.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "list comments ok", "detail": comments})
}
