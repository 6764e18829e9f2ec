package controller

import (
	"campus-assistant-be/internal/dto"
	"campus-assistant-be/internal/pkg/serverutils"
	"campus-assistant-be/internal/service"
	"campus-assistant-be/pkg/vectorindex"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Import(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	documentService service.IDocumentService
	indexManager    *vectorindex.Manager
}

func NewKnowledgeController(
	documentService service.IDocumentService,
	indexManager *vectorindex.Manager,
) IKnowledgeController {
	return &knowledgeController{
		documentService: documentService,
		indexManager:    indexManager,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)
	h.Post("documents", c.Import)
	h.Post("reindex", c.Reindex)
}

func (c *knowledgeController) Import(ctx *fiber.Ctx) error {
	var req dto.ImportDocumentsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Import(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import documents", res))
}

// Reindex forces a synchronous rebuild of the vector index. The event-driven
// path already rebuilds after every change; this endpoint covers manual
// recovery after a provider outage left entries without embeddings.
func (c *knowledgeController) Reindex(ctx *fiber.Ctx) error {
	snapshot, err := c.indexManager.Rebuild(ctx.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "index rebuild failed")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rebuild index", fiber.Map{
		"documents": snapshot.Len(),
		"dimension": snapshot.Dimension(),
		"skipped":   snapshot.Skipped(),
	}))
}
