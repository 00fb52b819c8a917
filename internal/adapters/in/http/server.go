// Package http exposes the order approval workflow over REST. Handlers
// translate JSON bodies into commands and queries and map domain errors onto
// HTTP statuses; no business rules live here.
package http

import (
	"net/http"

	"distribution/internal/core/application/usecases/commands"
	"distribution/internal/core/application/usecases/queries"
	"distribution/internal/core/domain/model/kernel"
	"distribution/internal/core/domain/model/order"
	"distribution/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	leaderApproveHandler commands.LeaderApproveCommandHandler
	leaderRejectHandler  commands.LeaderRejectCommandHandler
	adminApproveHandler  commands.AdminApproveCommandHandler
	adminRejectHandler   commands.AdminRejectCommandHandler
	bulkApproveHandler   commands.BulkApproveCommandHandler

	// Query handlers
	getOrderHandler           queries.GetOrderQueryHandler
	getOrdersByStageHandler   queries.GetOrdersByStageQueryHandler
	getApprovalHistoryHandler queries.GetApprovalHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	leaderApproveHandler commands.LeaderApproveCommandHandler,
	leaderRejectHandler commands.LeaderRejectCommandHandler,
	adminApproveHandler commands.AdminApproveCommandHandler,
	adminRejectHandler commands.AdminRejectCommandHandler,
	bulkApproveHandler commands.BulkApproveCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByStageHandler queries.GetOrdersByStageQueryHandler,
	getApprovalHistoryHandler queries.GetApprovalHistoryQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		leaderApproveHandler:      leaderApproveHandler,
		leaderRejectHandler:       leaderRejectHandler,
		adminApproveHandler:       adminApproveHandler,
		adminRejectHandler:        adminRejectHandler,
		bulkApproveHandler:        bulkApproveHandler,
		getOrderHandler:           getOrderHandler,
		getOrdersByStageHandler:   getOrdersByStageHandler,
		getApprovalHistoryHandler: getApprovalHistoryHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrdersByStage)
	api.POST("/orders/bulk-approve", s.BulkApprove)
	api.GET("/orders/:orderID", s.GetOrder)
	api.GET("/orders/:orderID/history", s.GetApprovalHistory)
	api.POST("/orders/:orderID/leader-approve", s.LeaderApprove)
	api.POST("/orders/:orderID/leader-reject", s.LeaderReject)
	api.POST("/orders/:orderID/admin-approve", s.AdminApprove)
	api.POST("/orders/:orderID/admin-reject", s.AdminReject)
}

// CreateOrder handles POST /api/v1/orders - registers a new sales order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsRequiredErrorWithCause("agentID", err))
	}

	clientID, err := kernel.UUIDFromString(request.ClientID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsRequiredErrorWithCause("clientID", err))
	}

	items := make([]commands.LineItemInput, 0, len(request.Items))
	for _, item := range request.Items {
		variantID, itemErr := kernel.UUIDFromString(item.VariantID)
		if itemErr != nil {
			return respondError(ctx, errs.NewValueIsRequiredErrorWithCause("variantID", itemErr))
		}

		items = append(items, commands.LineItemInput{
			VariantID: variantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		agentID,
		clientID,
		items,
		order.Totals{
			Subtotal: request.Totals.Subtotal,
			Tax:      request.Totals.Tax,
			Discount: request.Totals.Discount,
			Total:    request.Totals.Total,
		},
		order.PaymentInfo{
			Method:   request.Payment.Method,
			ProofRef: request.Payment.ProofRef,
		},
		request.SignatureRef,
		request.Notes,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	number, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID: orderID.String(),
		Number:  number,
	})
}

// LeaderApprove handles POST /api/v1/orders/:orderID/leader-approve.
func (s *Server) LeaderApprove(ctx echo.Context) error {
	orderID, actorID, _, err := s.bindTransition(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewLeaderApproveCommand(orderID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.leaderApproveHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LeaderReject handles POST /api/v1/orders/:orderID/leader-reject.
func (s *Server) LeaderReject(ctx echo.Context) error {
	orderID, actorID, reason, err := s.bindTransition(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewLeaderRejectCommand(orderID, actorID, reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.leaderRejectHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdminApprove handles POST /api/v1/orders/:orderID/admin-approve.
func (s *Server) AdminApprove(ctx echo.Context) error {
	orderID, actorID, _, err := s.bindTransition(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdminApproveCommand(orderID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.adminApproveHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdminReject handles POST /api/v1/orders/:orderID/admin-reject.
func (s *Server) AdminReject(ctx echo.Context) error {
	orderID, actorID, reason, err := s.bindTransition(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdminRejectCommand(orderID, actorID, reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.adminRejectHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BulkApprove handles POST /api/v1/orders/bulk-approve - advances every
// eligible order of one agent in a single sweep.
func (s *Server) BulkApprove(ctx echo.Context) error {
	var request BulkApproveRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	agentID, err := kernel.UUIDFromString(request.AgentID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsRequiredErrorWithCause("agentID", err))
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsRequiredErrorWithCause("actorID", err))
	}

	target, err := order.StageFromString(request.TargetStage)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewBulkApproveCommand(agentID, actorID, target)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.bulkApproveHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := BulkApproveResponse{
		Succeeded: make([]string, 0, len(result.Succeeded)),
		Failed:    make([]BulkFailureResponse, 0, len(result.Failed)),
	}
	for _, id := range result.Succeeded {
		response.Succeeded = append(response.Succeeded, id.String())
	}
	for _, failure := range result.Failed {
		response.Failed = append(response.Failed, BulkFailureResponse{
			OrderID: failure.OrderID.String(),
			Error:   failure.Err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderID - retrieves one order read
// model, optionally expanded with its approval history.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsRequiredErrorWithCause("orderID", err))
	}

	includeHistory := ctx.QueryParam("include_history") == "true"

	query, err := queries.NewGetOrderQuery(orderID, includeHistory)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrdersByStage handles GET /api/v1/orders?stage=...&agent_id=... -
// lists the queue of orders sitting in one stage.
func (s *Server) GetOrdersByStage(ctx echo.Context) error {
	stage, err := order.StageFromString(ctx.QueryParam("stage"))
	if err != nil {
		return respondError(ctx, err)
	}

	var agentID *kernel.UUID
	if raw := ctx.QueryParam("agent_id"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("agentID", idErr))
		}
		agentID = &id
	}

	query, err := queries.NewGetOrdersByStageQuery(stage, agentID)
	if err != nil {
		return respondError(ctx, err)
	}

	queue, err := s.getOrdersByStageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queue)
}

// GetApprovalHistory handles GET /api/v1/orders/:orderID/history - returns
// the full approval trail of one order.
func (s *Server) GetApprovalHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsRequiredErrorWithCause("orderID", err))
	}

	query, err := queries.NewGetApprovalHistoryQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	trail, err := s.getApprovalHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trail)
}

// bindTransition extracts the order ID path parameter and the common
// transition body shared by the four single-order transition endpoints.
func (s *Server) bindTransition(ctx echo.Context) (kernel.UUID, kernel.UUID, string, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	var request RejectRequest
	if err := ctx.Bind(&request); err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, "", errs.NewValueIsRequiredErrorWithCause("actorID", err)
	}

	return orderID, actorID, request.Reason, nil
}
